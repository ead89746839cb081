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

package id

import (
	"encoding/base64"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenUUID(t *testing.T) {
	if got := GetUUID(); len(got) != 36 {
		t.Errorf("uuid length is not 36: %s", got)
	}
}

func TestGetUUIDWithoutDashes(t *testing.T) {
	if got := GetUUIDWithoutDashes(); len(got) != 32 {
		t.Errorf("uuid length is not 32: %s", got)
	}
}

func TestGetULID(t *testing.T) {
	a, b := GetULID(), GetULID()
	_, err := ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSecureToken(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantBytes int
	}{
		{name: "default entropy", n: 32, wantBytes: 32},
		{name: "raised to minimum", n: 8, wantBytes: MinTokenBytes},
		{name: "larger token", n: 48, wantBytes: 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := SecureToken(tt.n)
			require.NoError(t, err)

			raw, err := base64.RawURLEncoding.DecodeString(token)
			require.NoError(t, err)
			assert.Len(t, raw, tt.wantBytes)
			assert.NotContains(t, token, "=")
		})
	}

	seen := make(map[string]struct{}, 100)
	for range 100 {
		token, err := SecureToken(32)
		require.NoError(t, err)
		_, dup := seen[token]
		assert.False(t, dup, "duplicate token generated")
		seen[token] = struct{}{}
	}
}
