package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloglist/blog-api/internal/core/domain"
)

const collectionBlogs = "blogs"

// BlogRepository implements ports.BlogRepository using MongoDB.
// Reads join the creator from the users collection.
type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection(collectionBlogs)}
}

type mongoBlog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Author    string             `bson:"author,omitempty"`
	URL       string             `bson:"url"`
	Likes     int                `bson:"likes"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"created_at"`

	// populated by the $lookup stage only
	Creator []mongoUser `bson:"creator,omitempty"`
}

func (mb *mongoBlog) toDomain() *domain.Blog {
	b := &domain.Blog{
		ID:        mb.ID.Hex(),
		Title:     mb.Title,
		Author:    mb.Author,
		URL:       mb.URL,
		Likes:     mb.Likes,
		CreatorID: mb.User.Hex(),
		CreatedAt: mb.CreatedAt.UTC(),
	}
	if len(mb.Creator) > 0 {
		ref := mb.Creator[0].toDomain().Ref()
		b.Creator = &ref
	}
	return b
}

// Create inserts a new blog document.
func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) (*domain.Blog, error) {
	creator, err := primitive.ObjectIDFromHex(blog.CreatorID)
	if err != nil {
		return nil, domain.ErrMalformedID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBlog{
		Title:     blog.Title,
		Author:    blog.Author,
		URL:       blog.URL,
		Likes:     blog.Likes,
		User:      creator,
		CreatedAt: blog.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert blog: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMalformedID
	}

	blogs, err := r.find(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, domain.ErrBlogNotFound
	}
	return blogs[0], nil
}

func (r *BlogRepository) FindByCreator(ctx context.Context, userID string) ([]*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrMalformedID
	}
	return r.find(ctx, bson.M{"user": oid})
}

func (r *BlogRepository) List(ctx context.Context) ([]*domain.Blog, error) {
	return r.find(ctx, bson.M{})
}

// UpdateLikes sets the like count and returns the updated blog.
func (r *BlogRepository) UpdateLikes(ctx context.Context, id string, likes int) (*domain.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMalformedID
	}

	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(updateCtx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"likes": likes}})
	if err != nil {
		return nil, fmt.Errorf("update likes: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrBlogNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMalformedID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

// find runs filter through a pipeline that joins each blog's creator.
func (r *BlogRepository) find(ctx context.Context, filter bson.M) ([]*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "creator"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBlog
	if err := cur.All(ctx, &docs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []*domain.Blog{}, nil
		}
		return nil, fmt.Errorf("find blogs: %w", err)
	}

	out := make([]*domain.Blog, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// EnsureIndexes creates the index backing FindByCreator.
func (r *BlogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}})
	return err
}
