package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/go-arcade/edo/pkg/id"
)

// MaxImageSize is the upload limit for profile and maintenance images.
const MaxImageSize = 2 << 20

var (
	ErrImageTooLarge    = errors.New("image must not exceed 2MB")
	ErrUnsupportedImage = errors.New("only JPEG and PNG images are allowed")
	ErrNotConfigured    = errors.New("image storage is not configured")
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Image is a validated upload held in memory.
type Image struct {
	Data        []byte
	ContentType string
}

// ReadImage loads fh and checks its size and sniffed content type.
func ReadImage(fh *multipart.FileHeader) (*Image, error) {
	if fh.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return CheckImage(data)
}

// CheckImage validates raw bytes against the image rules.
func CheckImage(data []byte) (*Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	contentType := http.DetectContentType(data)
	if _, ok := imageExt[contentType]; !ok {
		return nil, ErrUnsupportedImage
	}
	return &Image{Data: data, ContentType: contentType}, nil
}

// ObjectName returns a unique, time ordered key under prefix.
func (img *Image) ObjectName(prefix string) string {
	return path.Join(prefix, id.GetULID()+imageExt[img.ContentType])
}

// UploadImage stores img under prefix and returns its URL.
func UploadImage(ctx context.Context, p StorageProvider, prefix string, img *Image) (string, error) {
	if p == nil {
		return "", ErrNotConfigured
	}
	return p.PutObject(ctx, img.ObjectName(prefix), bytes.NewReader(img.Data), int64(len(img.Data)), img.ContentType)
}
