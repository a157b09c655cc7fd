package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/data/repos/appwritestore"
	"github.com/yungbote/fundocs-backend/internal/platform/appwrite"
	"github.com/yungbote/fundocs-backend/internal/platform/gcp"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

var (
	resolveObjectStorageConfig = gcp.ResolveObjectStorageConfigFromEnv
	newAvatarStore             = func(ctx context.Context, log *logger.Logger, bucket string, cfg gcp.ObjectStorageConfig) (avatarStore, error) {
		return gcp.NewAvatarStore(ctx, log, bucket, cfg)
	}
)

type avatarStore interface {
	repos.FileStore
	Close() error
}

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidConfig StorageProviderBootstrapErrorCode = "invalid_config"
	StorageProviderBootstrapErrorConnectFailed StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "object storage bootstrap failed"
	}
	return fmt.Sprintf(
		"object storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveFileStore picks where avatars are deleted from. It returns a nil
// interface, never a typed nil, when avatar cleanup is not configured.
func resolveFileStore(ctx context.Context, log *logger.Logger, cfg Config, aw *appwrite.Client) (repos.FileStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StoreBackend {
	case StoreBackendAppwrite:
		if aw == nil || strings.TrimSpace(cfg.AppwriteBucketID) == "" {
			log.Warn("APPWRITE_BUCKET_ID not set; avatars will not be deleted")
			return nil, noop, nil
		}
		return appwritestore.NewFileStore(aw, cfg.AppwriteBucketID, log), noop, nil
	default:
		if strings.TrimSpace(cfg.AvatarBucket) == "" {
			log.Warn("AVATAR_GCS_BUCKET_NAME not set; avatars will not be deleted")
			return nil, noop, nil
		}
		store, err := resolveAvatarStore(ctx, log, cfg.AvatarBucket)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	}
}

func resolveAvatarStore(ctx context.Context, log *logger.Logger, bucket string) (avatarStore, error) {
	storageCfg, err := resolveObjectStorageConfig()
	if err != nil {
		classified := classifyStorageProviderBootstrapError(storageCfg, err)
		log.Error("Object storage provider selection failed",
			"mode", storageCfg.Mode,
			"emulator_host", storageCfg.EmulatorHost,
			"error", classified,
		)
		return nil, classified
	}

	log.Info("Selecting object storage provider",
		"mode", storageCfg.Mode,
		"compatibility_fallback", storageCfg.CompatibilityFallback,
		"emulator_host", storageCfg.EmulatorHost,
	)
	store, err := newAvatarStore(ctx, log, bucket, storageCfg)
	if err != nil {
		classified := classifyStorageProviderBootstrapError(storageCfg, err)
		log.Error("Object storage provider bootstrap failed",
			"mode", storageCfg.Mode,
			"emulator_host", storageCfg.EmulatorHost,
			"error", classified,
		)
		return nil, classified
	}
	return store, nil
}

func classifyStorageProviderBootstrapError(storageCfg gcp.ObjectStorageConfig, err error) error {
	code := StorageProviderBootstrapErrorConnectFailed
	var cfgErr *gcp.ObjectStorageConfigError
	if errors.As(err, &cfgErr) {
		code = StorageProviderBootstrapErrorInvalidConfig
	}
	return &StorageProviderBootstrapError{
		Code:         code,
		Mode:         string(storageCfg.Mode),
		EmulatorHost: storageCfg.EmulatorHost,
		Cause:        err,
	}
}
