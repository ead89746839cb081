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
	"encoding/binary"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// expiry header: 8 bytes of unix nanos, zero means no expiry
const headerSize = 8

// FastCache is an in-process ICache backed by VictoriaMetrics/fastcache.
// Entries carry their own deadline and are dropped lazily on read.
type FastCache struct {
	cache *fastcache.Cache
	now   func() time.Time
}

func NewFastCache(maxBytes int) *FastCache {
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	return &FastCache{
		cache: fastcache.New(maxBytes),
		now:   time.Now,
	}
}

func (fc *FastCache) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	raw, ok := fc.cache.HasGet(nil, []byte(key))
	if !ok || len(raw) < headerSize {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	if deadline := int64(binary.BigEndian.Uint64(raw[:headerSize])); deadline != 0 && fc.now().UnixNano() > deadline {
		fc.cache.Del([]byte(key))
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(raw[headerSize:]))
	return cmd
}

func (fc *FastCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key)
	payload, err := toBytes(value)
	if err != nil {
		cmd.SetErr(err)
		return cmd
	}
	fc.cache.Set([]byte(key), fc.encode(payload, expiration))
	cmd.SetVal("OK")
	return cmd
}

func (fc *FastCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "del")
	var n int64
	for _, key := range keys {
		if fc.cache.Has([]byte(key)) {
			fc.cache.Del([]byte(key))
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func (fc *FastCache) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key)
	current := fc.Get(ctx, key)
	if current.Err() != nil {
		cmd.SetVal(false)
		return cmd
	}
	fc.cache.Set([]byte(key), fc.encode([]byte(current.Val()), expiration))
	cmd.SetVal(true)
	return cmd
}

func (fc *FastCache) encode(payload []byte, expiration time.Duration) []byte {
	buf := make([]byte, headerSize+len(payload))
	if expiration > 0 {
		binary.BigEndian.PutUint64(buf[:headerSize], uint64(fc.now().Add(expiration).UnixNano()))
	}
	copy(buf[headerSize:], payload)
	return buf
}

func toBytes(value any) ([]byte, error) {
	switch v := value.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return sonic.Marshal(v)
	}
}
