package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/teddy12-design/my-blog/internal/models"
)

const (
	postListCacheKey = "cache:posts:dashboard"
	postListCacheTTL = 5 * time.Minute
)

// PostListCache is a read-through Redis cache for the dashboard post list.
// A nil *PostListCache is valid and disables caching.
type PostListCache struct {
	client *redis.Client
}

func NewPostListCache(client *redis.Client) *PostListCache {
	if client == nil {
		return nil
	}
	return &PostListCache{client: client}
}

// Get returns the cached post list and whether the cache was warm.
func (c *PostListCache) Get(ctx context.Context) ([]models.Post, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.client.Get(ctx, postListCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var posts []models.Post
	if err := json.Unmarshal(b, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

// Set stores the post list. Failures are ignored; the cache is best-effort.
func (c *PostListCache) Set(ctx context.Context, posts []models.Post) {
	if c == nil {
		return
	}
	b, err := json.Marshal(posts)
	if err != nil {
		return
	}
	c.client.Set(ctx, postListCacheKey, b, postListCacheTTL)
}

// Invalidate drops the cached list. Called after every post mutation.
func (c *PostListCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	c.client.Del(ctx, postListCacheKey)
}
