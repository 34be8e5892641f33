package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/teddy12-design/my-blog/internal/models"
	"github.com/teddy12-design/my-blog/internal/store"
)

// PostInput carries the fields of the add/edit post forms. The two image
// slots are fixed and independently optional; a nil header means no file was
// submitted for that slot.
type PostInput struct {
	Title  string
	Body   string
	Image  *multipart.FileHeader
	Image2 *multipart.FileHeader
}

// ListCache caches the dashboard post list.
type ListCache interface {
	Get(ctx context.Context) ([]models.Post, bool)
	Set(ctx context.Context, posts []models.Post)
	Invalidate(ctx context.Context)
}

// PostService orchestrates post CRUD, coordinating uploads with the media
// host and records with the post store.
type PostService struct {
	posts    store.PostStore
	uploader Uploader  // nil when no media host is configured
	cache    ListCache // nil disables caching
	log      *zap.SugaredLogger
}

func NewPostService(posts store.PostStore, uploader Uploader, cache ListCache, log *zap.SugaredLogger) *PostService {
	return &PostService{posts: posts, uploader: uploader, cache: cache, log: log}
}

// List returns all posts in creation order, served from the cache when warm.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	if s.cache != nil {
		if posts, ok := s.cache.Get(ctx); ok {
			return posts, nil
		}
	}

	posts, err := s.posts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, posts)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// Create uploads any submitted images and persists a new post as a single
// complete record.
func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	image, err := s.uploadIfPresent(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	image2, err := s.uploadIfPresent(ctx, in.Image2)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:  in.Title,
		Body:   in.Body,
		Image:  image,
		Image2: image2,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.invalidateCache(ctx)
	s.log.Infow("post created", "id", post.ID.Hex(), "title", post.Title)
	return post, nil
}

// Update overwrites title and body unconditionally and each image slot only
// when a replacement file was submitted, so an edit form that resubmits no
// file never clears an existing image. UpdatedAt is always refreshed.
func (s *PostService) Update(ctx context.Context, id primitive.ObjectID, in PostInput) (*models.Post, error) {
	image, err := s.uploadIfPresent(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	image2, err := s.uploadIfPresent(ctx, in.Image2)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.UpdateByID(ctx, id, store.PostUpdate{
		Title:  in.Title,
		Body:   in.Body,
		Image:  image,
		Image2: image2,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.log.Infow("post updated", "id", id.Hex())
	return post, nil
}

// Delete removes the post record. Uploaded media is deliberately left on the
// media host.
func (s *PostService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.posts.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.log.Infow("post deleted", "id", id.Hex())
	return nil
}

func (s *PostService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *PostService) uploadIfPresent(ctx context.Context, fileHeader *multipart.FileHeader) (*string, error) {
	if fileHeader == nil {
		return nil, nil
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("file upload service not available")
	}

	url, err := s.uploader.UploadImage(ctx, fileHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image %q: %w", fileHeader.Filename, err)
	}
	return &url, nil
}
