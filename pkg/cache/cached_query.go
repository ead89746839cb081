// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/edo/pkg/log"
	"golang.org/x/sync/singleflight"
)

type QueryFunc[T any] func(ctx context.Context) (T, error)

type KeyFunc func(params ...any) string

// CachedQuery is a read-through cache for one query shape. Concurrent misses
// for the same key collapse into a single query.
type CachedQuery[T any] struct {
	cache     ICache
	keyFunc   KeyFunc
	ttl       time.Duration
	logPrefix string
	group     singleflight.Group
}

type CachedQueryOption[T any] func(*CachedQuery[T])

func WithTTL[T any](ttl time.Duration) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.ttl = ttl
	}
}

func WithLogPrefix[T any](prefix string) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.logPrefix = prefix
	}
}

func NewCachedQuery[T any](cache ICache, keyFunc KeyFunc, opts ...CachedQueryOption[T]) *CachedQuery[T] {
	cq := &CachedQuery[T]{
		cache:     cache,
		keyFunc:   keyFunc,
		ttl:       10 * time.Minute,
		logPrefix: "[CachedQuery]",
	}
	for _, opt := range opts {
		opt(cq)
	}
	return cq
}

// Get returns the cached value for params, running query on a miss.
// Cache failures are logged and fall through to query.
func (cq *CachedQuery[T]) Get(ctx context.Context, query QueryFunc[T], params ...any) (T, error) {
	cacheKey := cq.keyFunc(params...)

	if result, ok := cq.load(ctx, cacheKey); ok {
		return result, nil
	}

	v, err, _ := cq.group.Do(cacheKey, func() (any, error) {
		result, err := query(ctx)
		if err != nil {
			return result, err
		}
		cq.store(ctx, cacheKey, result)
		return result, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("cached query %s: %w", cacheKey, err)
	}
	return v.(T), nil
}

// Invalidate removes the cached value for params.
func (cq *CachedQuery[T]) Invalidate(ctx context.Context, params ...any) error {
	if cq.cache == nil {
		return nil
	}
	cacheKey := cq.keyFunc(params...)
	if err := cq.cache.Del(ctx, cacheKey).Err(); err != nil {
		log.Warnw(cq.logPrefix+" failed to invalidate cache", "key", cacheKey, "error", err)
		return err
	}
	log.Debugw(cq.logPrefix+" cache invalidated", "key", cacheKey)
	return nil
}

func (cq *CachedQuery[T]) load(ctx context.Context, key string) (T, bool) {
	var result T
	if cq.cache == nil {
		return result, false
	}
	data, err := cq.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Warnw(cq.logPrefix+" cache get error", "key", key, "error", err)
		}
		return result, false
	}
	if err := sonic.UnmarshalString(data, &result); err != nil {
		log.Warnw(cq.logPrefix+" failed to unmarshal cached data", "key", key, "error", err)
		return result, false
	}
	log.Debugw(cq.logPrefix+" cache hit", "key", key)
	return result, true
}

func (cq *CachedQuery[T]) store(ctx context.Context, key string, value T) {
	if cq.cache == nil {
		return
	}
	data, err := sonic.MarshalString(value)
	if err != nil {
		log.Warnw(cq.logPrefix+" failed to marshal result for caching", "key", key, "error", err)
		return
	}
	if err := cq.cache.Set(ctx, key, data, cq.ttl).Err(); err != nil {
		log.Warnw(cq.logPrefix+" failed to cache result", "key", key, "error", err)
	}
}
