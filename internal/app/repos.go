package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/fundocs-backend/internal/data/db"
	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/data/repos/appwritestore"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// wireRepos opens the configured store. The returned *gorm.DB is nil on the
// appwrite backend.
func wireRepos(log *logger.Logger, cfg Config, clients Clients) (repos.Set, *gorm.DB, error) {
	log.Info("Wiring repos...", "backend", cfg.StoreBackend)
	switch cfg.StoreBackend {
	case StoreBackendAppwrite:
		return appwritestore.NewSet(clients.Appwrite, appwritestore.Config{
			DatabaseID:              cfg.AppwriteDatabaseID,
			DocsCollectionID:        cfg.AppwriteDocsCollectionID,
			ProgressCollectionID:    cfg.AppwriteProgressCollectionID,
			SubmissionsCollectionID: cfg.AppwriteSubmissionsCollectionID,
			TipsCollectionID:        cfg.AppwriteTipsCollectionID,
			AvatarBucketID:          cfg.AppwriteBucketID,
		}, log), nil, nil
	default:
		pg, err := db.NewPostgresService(log)
		if err != nil {
			return repos.Set{}, nil, fmt.Errorf("init postgres: %w", err)
		}
		if err := pg.AutoMigrateAll(); err != nil {
			return repos.Set{}, nil, fmt.Errorf("postgres automigrate: %w", err)
		}
		return repos.NewGormSet(pg.DB(), log), pg.DB(), nil
	}
}
