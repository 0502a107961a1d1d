// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package posts

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/papyr/internal/platform/constants"
)

// cacheTTL bounds staleness for single-post reads. Writes invalidate eagerly,
// so the TTL only matters for out-of-band database changes.
const cacheTTL = 10 * time.Minute

// CachedRepository decorates a [Repository] with a Redis read-through cache
// for single-post lookups. Listing is intentionally uncached: search and
// pagination produce too many distinct key shapes to invalidate reliably.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	logger *slog.Logger
}

func NewCachedRepository(inner Repository, client *redis.Client, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

func (repository *CachedRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Post, int, error) {
	return repository.inner.List(context, filter, limit, offset)
}

// Get serves from Redis when possible. Cache failures degrade to a plain
// database read, never to a request failure.
func (repository *CachedRepository) Get(context context.Context, id string) (*Post, error) {
	key := constants.RedisPrefixPost + id

	cached, err := repository.client.Get(context, key).Bytes()
	if err == nil {
		post := &Post{}
		if err := json.Unmarshal(cached, post); err == nil {
			return post, nil
		}
		// Corrupt entry: drop it and fall through to the database.
		_ = repository.client.Del(context, key).Err()
	}

	post, err := repository.inner.Get(context, id)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(post); err == nil {
		if err := repository.client.Set(context, key, encoded, cacheTTL).Err(); err != nil {
			repository.logger.Warn("post_cache_set_failed", slog.String("post_id", id), slog.Any("error", err))
		}
	}

	return post, nil
}

func (repository *CachedRepository) Create(context context.Context, post *Post) error {
	return repository.inner.Create(context, post)
}

func (repository *CachedRepository) Update(context context.Context, post *Post) error {
	if err := repository.inner.Update(context, post); err != nil {
		return err
	}
	repository.invalidate(context, post.ID)
	return nil
}

func (repository *CachedRepository) Delete(context context.Context, id string) error {
	if err := repository.inner.Delete(context, id); err != nil {
		return err
	}
	repository.invalidate(context, id)
	return nil
}

func (repository *CachedRepository) invalidate(context context.Context, id string) {
	if err := repository.client.Del(context, constants.RedisPrefixPost+id).Err(); err != nil {
		repository.logger.Warn("post_cache_invalidate_failed", slog.String("post_id", id), slog.Any("error", err))
	}
}
