package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teddy12-design/my-blog/internal/models"
)

const postsCollection = "posts"

// PostUpdate carries the fields written by an update. Title and Body are
// always written; each image reference is written only when non-nil, so an
// edit without a replacement file never clears an existing image.
type PostUpdate struct {
	Title  string
	Body   string
	Image  *string
	Image2 *string
}

// PostStore persists blog posts.
type PostStore interface {
	FindAll(ctx context.Context) ([]models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update PostUpdate) (*models.Post, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type MongoPostStore struct {
	db *mongo.Database
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{db: db}
}

// FindAll returns every post in creation order.
func (s *MongoPostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cur, err := s.db.Collection(postsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MongoPostStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.db.Collection(postsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err := s.db.Collection(postsCollection).InsertOne(ctx, post)
	return err
}

func (s *MongoPostStore) UpdateByID(ctx context.Context, id primitive.ObjectID, update PostUpdate) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err := s.db.Collection(postsCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateDoc(update)}, opts).
		Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection(postsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// updateDoc builds the $set document for an update. Image fields are included
// only when a replacement reference is present.
func updateDoc(update PostUpdate) bson.M {
	doc := bson.M{
		"title":      update.Title,
		"body":       update.Body,
		"updated_at": time.Now().UTC(),
	}
	if update.Image != nil {
		doc["image"] = *update.Image
	}
	if update.Image2 != nil {
		doc["image2"] = *update.Image2
	}
	return doc
}
