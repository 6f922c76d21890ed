package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"gocloud.dev/blob"
)

// Upload size caps.
const (
	MaxImageUploadBytes = 15 << 20  // 15 MiB
	MaxVideoUploadBytes = 500 << 20 // 500 MiB
)

// UploadService stores media files in a blob bucket: a cloud bucket when
// one is configured, otherwise the local uploads directory served at
// /uploads.
type UploadService struct {
	bucket     *blob.Bucket
	publicBase string
}

// NewUploadService creates a new UploadService.
func NewUploadService(bucket *blob.Bucket, publicBase string) *UploadService {
	return &UploadService{bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}
}

// SaveImage stores an uploaded image and returns its public URL.
func (s *UploadService) SaveImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageUploadBytes {
		return "", validationError("image exceeds the %d MB limit", MaxImageUploadBytes>>20)
	}
	return s.save(ctx, file, "image/")
}

// SaveVideo stores an uploaded video and returns its public URL.
func (s *UploadService) SaveVideo(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxVideoUploadBytes {
		return "", validationError("video exceeds the %d MB limit", MaxVideoUploadBytes>>20)
	}
	return s.save(ctx, file, "video/")
}

func (s *UploadService) save(ctx context.Context, file *multipart.FileHeader, wantPrefix string) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, wantPrefix) {
		return "", validationError("unexpected content type %q", contentType)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	key := uuid.New().String() + strings.ToLower(path.Ext(file.Filename))
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to open bucket writer: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload: %w", err)
	}
	return s.publicBase + "/" + key, nil
}
