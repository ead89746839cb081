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

package storage

import (
	"context"
	"io"
)

// StorageProvider stores uploaded objects and hands back a retrievable URL.
type StorageProvider interface {
	// PutObject uploads r under objectName and returns the object URL
	PutObject(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	// GetPresignedURL 生成预签名下载链接，有效期取自配置
	GetPresignedURL(ctx context.Context, objectName string) (string, error)
}
