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


package util

// SetIfNotNil copies *ptr into m under key when ptr is set. Zero values are
// kept, which is what partial updates need.
func SetIfNotNil[T any](m map[string]any, key string, ptr *T) {
	if ptr != nil {
		m[key] = *ptr
	}
}

// SetIfNotNilFunc is SetIfNotNil with a normalizer applied to the value.
func SetIfNotNilFunc[T, V any](m map[string]any, key string, ptr *T, fn func(T) V) {
	if ptr != nil {
		m[key] = fn(*ptr)
	}
}
