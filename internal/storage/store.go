// Package storage provides the media object store used for video files,
// thumbnails, and profile images.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"clipstream/internal/models"
	"clipstream/internal/observability"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the media storage collaborator. Implementations must be
// safe for concurrent use.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (models.MediaRef, error)
	Delete(ctx context.Context, key string) error
}

// Config holds the connection settings for the MinIO-backed store.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// MinioStore implements ObjectStore on a MinIO (S3-compatible) bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(ctx context.Context, cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, publicURL: cfg.PublicURL}, nil
}

// Put uploads the object and returns a MediaRef pointing at it.
func (s *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (models.MediaRef, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	observability.RecordObjectStoreOperation("put", err)
	if err != nil {
		return models.MediaRef{}, models.NewUpstreamError("Media upload failed", err)
	}
	return models.MediaRef{
		URL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
		Key: key,
	}, nil
}

// Delete removes the object from the bucket.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	observability.RecordObjectStoreOperation("delete", err)
	if err != nil {
		return models.NewUpstreamError("Media delete failed", err)
	}
	return nil
}

// ObjectKey builds a unique storage key for an upload, preserving the
// original file extension under a per-kind prefix.
func ObjectKey(kind, filename string) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%d-%s%s", kind, time.Now().UnixNano(), uuid.NewString()[:8], ext)
}

// CleanupUploads deletes every uploaded ref after a failed publish. Errors
// are logged, not returned; the caller's original failure wins.
func CleanupUploads(ctx context.Context, store ObjectStore, refs ...models.MediaRef) {
	for _, ref := range refs {
		if ref.Key == "" {
			continue
		}
		if err := store.Delete(ctx, ref.Key); err != nil {
			observability.LogUploadCleanupFailure(ctx, ref.Key, err)
		}
	}
}
