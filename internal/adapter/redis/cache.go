// Package redis implements the read-through cache for word lookups and
// listings. Cache misses and connectivity failures are soft: callers fall
// back to the database, so every method swallows redis.Nil into a plain
// "not cached" signal.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vocabguru/backend/internal/config"
	"github.com/vocabguru/backend/internal/domain"
)

// key layout:
//
//	word:id:<uuid>        single record by id
//	word:text:<word>      single record by normalized text
//	words:list:<hash>     one listing page
const (
	keyWordByID   = "word:id:%s"
	keyWordByText = "word:text:%s"
	keyList       = "words:list:%s"
)

// Cache is a TTL-bounded JSON cache in front of the word repository.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a cache from RedisConfig. The client is pinged so a
// misconfigured address fails at startup rather than on first lookup.
func NewCache(ctx context.Context, cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{client: client, ttl: cfg.TTL}, nil
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// GetWordByID returns the cached record or (nil, nil) on a miss.
func (c *Cache) GetWordByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return c.getWord(ctx, fmt.Sprintf(keyWordByID, id))
}

// GetWordByText returns the cached record or (nil, nil) on a miss.
func (c *Cache) GetWordByText(ctx context.Context, text string) (*domain.Word, error) {
	return c.getWord(ctx, fmt.Sprintf(keyWordByText, text))
}

func (c *Cache) getWord(ctx context.Context, key string) (*domain.Word, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	var w domain.Word
	if err := json.Unmarshal(payload, &w); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}
	return &w, nil
}

// SetWord caches a record under both its id and its text key.
func (c *Cache) SetWord(ctx context.Context, w *domain.Word) error {
	if w == nil {
		return nil
	}

	payload, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("cache marshal word %q: %w", w.Word, err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, fmt.Sprintf(keyWordByID, w.ID), payload, c.ttl)
	pipe.Set(ctx, fmt.Sprintf(keyWordByText, w.Word), payload, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set word %q: %w", w.Word, err)
	}
	return nil
}

// InvalidateWord drops both keys for a record. Listing pages are not
// enumerated; they expire on their own TTL.
func (c *Cache) InvalidateWord(ctx context.Context, w *domain.Word) error {
	if w == nil {
		return nil
	}
	keys := []string{
		fmt.Sprintf(keyWordByID, w.ID),
		fmt.Sprintf(keyWordByText, w.Word),
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate word %q: %w", w.Word, err)
	}
	return nil
}

// GetList returns a cached listing page or (nil, nil) on a miss. The page
// carries its own has-more flag so it is served exactly as computed.
func (c *Cache) GetList(ctx context.Context, pageKey string) (*domain.WordPage, error) {
	payload, err := c.client.Get(ctx, fmt.Sprintf(keyList, pageKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get list %s: %w", pageKey, err)
	}

	var page domain.WordPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, nil
	}
	return &page, nil
}

// SetList caches one listing page.
func (c *Cache) SetList(ctx context.Context, pageKey string, page *domain.WordPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("cache marshal list %s: %w", pageKey, err)
	}
	if err := c.client.Set(ctx, fmt.Sprintf(keyList, pageKey), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set list %s: %w", pageKey, err)
	}
	return nil
}
