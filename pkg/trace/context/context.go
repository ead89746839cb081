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

// Package context keeps a request context per goroutine so that code without a
// context parameter (the log core, gorm callbacks) can still find the active span.
package context

import (
	"context"
	"sync"

	"github.com/timandy/routine"
	"go.opentelemetry.io/otel/trace"
)

const bucketsSize = 128

type (
	contextBucket struct {
		lock sync.RWMutex
		data map[int64]context.Context
	}
	contextBuckets struct {
		buckets [bucketsSize]*contextBucket
	}
)

var goroutineContext contextBuckets

func init() {
	for i := range goroutineContext.buckets {
		goroutineContext.buckets[i] = &contextBucket{
			data: make(map[int64]context.Context),
		}
	}
}

func bucket() (*contextBucket, int64) {
	goid := int64(routine.Goid())
	return goroutineContext.buckets[goid%bucketsSize], goid
}

// GetContext returns the context bound to the current goroutine, or nil.
func GetContext() context.Context {
	b, goid := bucket()
	b.lock.RLock()
	defer b.lock.RUnlock()
	return b.data[goid]
}

// SetContext binds ctx to the current goroutine.
func SetContext(ctx context.Context) {
	b, goid := bucket()
	b.lock.Lock()
	defer b.lock.Unlock()
	b.data[goid] = ctx
}

// ClearContext .
func ClearContext() {
	b, goid := bucket()
	b.lock.Lock()
	defer b.lock.Unlock()
	delete(b.data, goid)
}

// RunWithContext .
func RunWithContext(ctx context.Context, fn func(ctx context.Context)) {
	SetContext(ctx)
	defer ClearContext()
	fn(ctx)
}

// ContextWithSpan attaches the goroutine span to ctx when ctx carries none.
func ContextWithSpan(ctx context.Context) context.Context {
	if span := trace.SpanFromContext(ctx); !span.SpanContext().IsValid() {
		if pct := GetContext(); pct != nil {
			if span := trace.SpanFromContext(pct); span.SpanContext().IsValid() {
				ctx = trace.ContextWithSpan(ctx, span)
			}
		}
	}
	return ctx
}
