// Package storage opens the blob bucket uploaded media lands in. The bucket
// URL decides the driver: a gs:// URL hits Google Cloud Storage, an empty URL
// falls back to a local directory served by the app itself under /uploads.
package storage

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"

	"boutique/internal/config"
)

// OpenBucket opens the configured media bucket and returns it together with
// the public base URL uploaded keys are reachable under.
func OpenBucket(ctx context.Context, cfg *config.Config) (*blob.Bucket, string, error) {
	if cfg.StorageBucketURL != "" {
		bucket, err := blob.OpenBucket(ctx, cfg.StorageBucketURL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open bucket %s: %w", cfg.StorageBucketURL, err)
		}
		publicBase := strings.TrimSuffix(cfg.StoragePublicURL, "/")
		if publicBase == "" {
			publicBase = "/uploads"
		}
		return bucket, publicBase, nil
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create upload dir %s: %w", cfg.UploadDir, err)
	}
	bucket, err := fileblob.OpenBucket(cfg.UploadDir, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload dir %s: %w", cfg.UploadDir, err)
	}
	return bucket, "/uploads", nil
}
