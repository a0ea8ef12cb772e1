package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bookdrop/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Cover image errors.
var (
	ErrStorageDisabled = errors.New("object storage is not configured")
	ErrCoverNotFound   = errors.New("cover image not found")
)

// Covers stores book cover images in object storage under covers/<book_id>.jpg.
type Covers struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewCovers creates the cover image store. A nil client disables the feature.
func NewCovers(client storage.Client, cfg storage.Config, logger *zap.Logger) *Covers {
	if !cfg.Enabled {
		client = nil
	}
	return &Covers{client: client, bucket: cfg.Bucket, logger: logger}
}

// Enabled reports whether cover image storage is available.
func (c *Covers) Enabled() bool {
	return c.client != nil
}

// EnsureBucket creates the configured bucket if it does not exist yet. Called
// once at startup.
func (c *Covers) EnsureBucket(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", c.bucket, err)
	}
	if exists {
		return nil
	}

	if err := c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}
	c.logger.Info("Created cover image bucket", zap.String("bucket", c.bucket))
	return nil
}

// Upload stores the cover image for a book, replacing any existing one.
func (c *Covers) Upload(ctx context.Context, bookID int, reader io.Reader, size int64, contentType string) error {
	if c.client == nil {
		return ErrStorageDisabled
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err := c.client.PutObject(ctx, c.bucket, coverKey(bookID), reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to store cover for book %d: %w", bookID, err)
	}

	c.logger.Info("Cover image stored", zap.Int("book_id", bookID))
	return nil
}

// Fetch streams the cover image for a book. The caller closes the reader.
func (c *Covers) Fetch(ctx context.Context, bookID int) (io.ReadCloser, minio.ObjectInfo, error) {
	if c.client == nil {
		return nil, minio.ObjectInfo{}, ErrStorageDisabled
	}

	// Stat first; GetObject is lazy and would only fail on first read.
	info, err := c.client.StatObject(ctx, c.bucket, coverKey(bookID), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, minio.ObjectInfo{}, ErrCoverNotFound
		}
		return nil, minio.ObjectInfo{}, fmt.Errorf("failed to stat cover for book %d: %w", bookID, err)
	}

	obj, err := c.client.GetObject(ctx, c.bucket, coverKey(bookID), minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, fmt.Errorf("failed to fetch cover for book %d: %w", bookID, err)
	}
	return obj, info, nil
}

// Delete removes the cover image for a book. Deleting an absent cover is not
// an error.
func (c *Covers) Delete(ctx context.Context, bookID int) error {
	if c.client == nil {
		return ErrStorageDisabled
	}

	if err := c.client.RemoveObject(ctx, c.bucket, coverKey(bookID), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete cover for book %d: %w", bookID, err)
	}
	return nil
}

func coverKey(bookID int) string {
	return fmt.Sprintf("covers/%d.jpg", bookID)
}
