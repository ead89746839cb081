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
	"time"

	"github.com/go-arcade/edo/pkg/log"
	"github.com/redis/go-redis/v9"
)

// HybridCache reads through a local FastCache before Redis. Local entries
// live for LocalTTLRatio of the remote TTL so peers converge quickly after writes.
type HybridCache struct {
	local         *FastCache
	remote        ICache
	localTTLRatio float64
}

func NewHybridCache(local *FastCache, remote ICache, localTTLRatio float64) *HybridCache {
	if localTTLRatio <= 0 || localTTLRatio > 1 {
		localTTLRatio = 1
	}
	return &HybridCache{local: local, remote: remote, localTTLRatio: localTTLRatio}
}

func (hc *HybridCache) localTTL(remoteTTL time.Duration) time.Duration {
	if remoteTTL <= 0 {
		return time.Minute
	}
	return time.Duration(float64(remoteTTL) * hc.localTTLRatio)
}

func (hc *HybridCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if cmd := hc.local.Get(ctx, key); cmd.Err() == nil {
		return cmd
	}

	cmd := hc.remote.Get(ctx, key)
	if cmd.Err() != nil {
		return cmd
	}
	// TTL of the remote entry is unknown here, keep the local copy briefly
	hc.local.Set(ctx, key, cmd.Val(), hc.localTTL(time.Minute))
	log.Debugw("hybrid cache filled from remote", "key", key)
	return cmd
}

func (hc *HybridCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := hc.remote.Set(ctx, key, value, expiration)
	if cmd.Err() == nil {
		hc.local.Set(ctx, key, value, hc.localTTL(expiration))
	}
	return cmd
}

func (hc *HybridCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	hc.local.Del(ctx, keys...)
	return hc.remote.Del(ctx, keys...)
}

func (hc *HybridCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	hc.local.Expire(ctx, key, hc.localTTL(expiration))
	return hc.remote.Expire(ctx, key, expiration)
}
