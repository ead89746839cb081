package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
)

type memProvider struct {
	objects map[string][]byte
}

func (m *memProvider) PutObject(_ context.Context, objectName string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[objectName] = data
	return "http://cdn.local/" + objectName, nil
}

func (m *memProvider) Delete(_ context.Context, objectName string) error {
	delete(m.objects, objectName)
	return nil
}

func (m *memProvider) GetPresignedURL(_ context.Context, objectName string) (string, error) {
	return "http://cdn.local/" + objectName + "?sig=1", nil
}

func TestCheckImage(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantType string
		wantErr  error
	}{
		{name: "png", data: pngHeader, wantType: "image/png"},
		{name: "jpeg", data: jpegHeader, wantType: "image/jpeg"},
		{name: "gif", data: []byte("GIF89a......"), wantErr: ErrUnsupportedImage},
		{name: "text", data: []byte("hello"), wantErr: ErrUnsupportedImage},
		{name: "too large", data: append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...), wantErr: ErrImageTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := CheckImage(tt.data)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, img.ContentType)
		})
	}
}

func TestUploadImage(t *testing.T) {
	img, err := CheckImage(pngHeader)
	require.NoError(t, err)

	_, err = UploadImage(context.Background(), nil, "avatars", img)
	assert.ErrorIs(t, err, ErrNotConfigured)

	p := &memProvider{objects: map[string][]byte{}}
	url, err := UploadImage(context.Background(), p, "avatars", img)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.local/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	require.Len(t, p.objects, 1)
	for _, data := range p.objects {
		assert.True(t, bytes.Equal(pngHeader, data))
	}
}

func TestGetFullPath(t *testing.T) {
	assert.Equal(t, "edo/a/b.png", getFullPath("/edo/", "/a/b.png"))
	assert.Equal(t, "b.png", getFullPath("", "b.png"))
}

func TestPublicURL(t *testing.T) {
	s := &Storage{Endpoint: "minio:9000", Bucket: "edo"}
	assert.Equal(t, "http://minio:9000/edo/k.png", publicURL(s, "k.png"))
	s.UseTLS = true
	assert.Equal(t, "https://minio:9000/edo/k.png", publicURL(s, "k.png"))
	s.PublicURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/k.png", publicURL(s, "k.png"))
}

func TestNewStorage(t *testing.T) {
	p, err := NewStorage(&Storage{Provider: StorageNone})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = NewStorage(&Storage{Provider: "gcs"})
	assert.Error(t, err)

	p, err = NewStorage(&Storage{Provider: StorageMinio, Endpoint: "localhost:9000", Bucket: "edo"})
	require.NoError(t, err)
	assert.IsType(t, &MinioStorage{}, p)
}
