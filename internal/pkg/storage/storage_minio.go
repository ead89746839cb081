package storage

import (
	"context"
	"io"
	"net/url"

	"github.com/go-arcade/edo/pkg/log"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	Client *minio.Client
	s      *Storage
}

func newMinio(s *Storage) (*MinioStorage, error) {
	client, err := minio.New(s.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
		Secure: s.UseTLS,
		Region: s.Region,
	})
	if err != nil {
		return nil, err
	}

	return &MinioStorage{
		Client: client,
		s:      s,
	}, nil
}

func (m *MinioStorage) PutObject(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	fullPath := getFullPath(m.s.BasePath, objectName)
	_, err := m.Client.PutObject(ctx, m.s.Bucket, fullPath, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	log.Debugw("minio object stored", "key", fullPath, "size", size)
	if m.s.Presign {
		return m.GetPresignedURL(ctx, objectName)
	}
	return publicURL(m.s, fullPath), nil
}

func (m *MinioStorage) Delete(ctx context.Context, objectName string) error {
	fullPath := getFullPath(m.s.BasePath, objectName)
	return m.Client.RemoveObject(ctx, m.s.Bucket, fullPath, minio.RemoveObjectOptions{})
}

func (m *MinioStorage) GetPresignedURL(ctx context.Context, objectName string) (string, error) {
	fullPath := getFullPath(m.s.BasePath, objectName)

	reqParams := make(url.Values)
	presignedURL, err := m.Client.PresignedGetObject(ctx, m.s.Bucket, fullPath, m.s.PresignExpire, reqParams)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
