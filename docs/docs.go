// Package docs registers the OpenAPI document served at /swagger/*. Keep it
// in step with the swag annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/blogs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "List blogs",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.blogResponse"}}
                    }
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Create a blog",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Key that makes retries return the first result",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Blog details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.createBlogRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.blogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/blogs/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Like statistics over all blogs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.statsResponse"}}
                }
            }
        },
        "/api/blogs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Get a blog",
                "parameters": [
                    {"type": "string", "description": "Blog id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.blogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Update the likes of a blog",
                "parameters": [
                    {"type": "string", "description": "Blog id", "name": "id", "in": "path", "required": true},
                    {
                        "description": "New like count",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.updateBlogRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.blogResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["blogs"],
                "summary": "Delete a blog",
                "parameters": [
                    {"type": "string", "description": "Blog id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/api/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.userResponse"}}
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "User registration details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.registerRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.blogResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "string"},
                "likes": {"type": "integer"},
                "title": {"type": "string"},
                "url": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.creatorResponse"}
            }
        },
        "handler.createBlogRequest": {
            "type": "object",
            "required": ["title", "url"],
            "properties": {
                "author": {"type": "string"},
                "likes": {"type": "integer", "minimum": 0},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "handler.creatorResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.favoriteResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "likes": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "token": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.ownedBlogResponse": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "string"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handler.statsResponse": {
            "type": "object",
            "properties": {
                "favorite": {"$ref": "#/definitions/handler.favoriteResponse"},
                "total_likes": {"type": "integer"}
            }
        },
        "handler.updateBlogRequest": {
            "type": "object",
            "required": ["likes"],
            "properties": {
                "likes": {"type": "integer", "minimum": 0}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "blogs": {"type": "array", "items": {"$ref": "#/definitions/handler.ownedBlogResponse"}},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"bearer\" followed by a space and the token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Blog List API",
	Description:      "Users, sessions and owner-gated blog management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
