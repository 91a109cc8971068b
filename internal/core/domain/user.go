package domain

import "time"

// MinCredentialLength is the minimum length of both username and password.
const MinCredentialLength = 3

// User models a registered blog author.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRef is the public projection of a user embedded in blog listings.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

// Ref returns the public projection of u.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username, Name: u.Name}
}
