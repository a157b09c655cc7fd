package gcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

const avatarDeleteTimeout = 30 * time.Second

// AvatarStore removes profile pictures from a GCS bucket. Object keys are
// the avatar file ids stored on the user record.
type AvatarStore struct {
	log    *logger.Logger
	client *storage.Client
	bucket string
}

func NewAvatarStore(ctx context.Context, log *logger.Logger, bucket string, storageCfg ObjectStorageConfig) (*AvatarStore, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("missing env var AVATAR_GCS_BUCKET_NAME")
	}
	if err := storageCfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate object storage config: %w", err)
	}
	client, err := storage.NewClient(ctx, storageCfg.ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	serviceLog := log.With("service", "AvatarStore")
	serviceLog.Info("Object storage initialized",
		"mode", storageCfg.Mode,
		"emulator_host", storageCfg.EmulatorHost,
		"compatibility_fallback", storageCfg.CompatibilityFallback,
		"bucket", bucket,
	)
	return &AvatarStore{log: serviceLog, client: client, bucket: bucket}, nil
}

// DeleteFile removes the avatar object. An object that is already gone is
// not an error.
func (s *AvatarStore) DeleteFile(ctx context.Context, fileID string) error {
	key := strings.TrimSpace(fileID)
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, avatarDeleteTimeout)
	defer cancel()
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		s.log.Debug("Avatar already deleted", "key", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, s.bucket, err)
	}
	return nil
}

func (s *AvatarStore) Close() error {
	return s.client.Close()
}
