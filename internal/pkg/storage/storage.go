package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/10/6 14:02
 * @file: storage.go
 * @description: object storage configuration
 */

const (
	StorageNone  = "none"
	StorageMinio = "minio"
	StorageS3    = "s3"
)

// Storage 存储配置结构
type Storage struct {
	Provider  string `mapstructure:"provider"`
	AccessKey string `mapstructure:"accessKey"`
	SecretKey string `mapstructure:"secretKey"`
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseTLS    bool   `mapstructure:"useTLS"`
	BasePath  string `mapstructure:"basePath"`
	// PublicURL is the prefix of object URLs when Presign is off
	PublicURL     string        `mapstructure:"publicUrl"`
	Presign       bool          `mapstructure:"presign"`
	PresignExpire time.Duration `mapstructure:"presignExpire"`
}

func (s *Storage) SetDefaults() {
	if s.Provider == "" {
		s.Provider = StorageNone
	}
	if s.Region == "" {
		s.Region = "us-east-1"
	}
	if s.BasePath == "" {
		s.BasePath = "edo"
	}
	if s.PresignExpire == 0 {
		s.PresignExpire = 24 * time.Hour
	}
}

// NewStorage 根据配置创建存储提供者实例
func NewStorage(s *Storage) (StorageProvider, error) {
	switch s.Provider {
	case StorageMinio:
		return newMinio(s)
	case StorageS3:
		return newS3(s)
	case StorageNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", s.Provider)
	}
}

// getFullPath 组合 BasePath 和 objectName，返回完整的对象路径
func getFullPath(basePath, objectName string) string {
	basePath = strings.Trim(basePath, "/")
	objectName = strings.TrimPrefix(objectName, "/")
	if basePath == "" {
		return objectName
	}
	return path.Join(basePath, objectName)
}

// publicURL builds the unsigned URL of key, falling back to endpoint/bucket.
func publicURL(s *Storage, key string) string {
	base := strings.TrimRight(s.PublicURL, "/")
	if base == "" {
		scheme := "http"
		if s.UseTLS {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, strings.TrimRight(s.Endpoint, "/"), s.Bucket)
	}
	return base + "/" + key
}
