package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/http"
	"github.com/yungbote/fundocs-backend/internal/observability"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    repos.Set
	Usecases Usecases

	closeFiles   func() error
	shutdownOTel func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if logMode == "production" || logMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	shutdownOTel := observability.InitTracing(ctx, log, cfg.tracing())
	metrics := observability.Init(log)

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet, theDB, err := wireRepos(log, cfg, clients)
	if err != nil {
		log.Sync()
		return nil, err
	}

	files, closeFiles, err := resolveFileStore(ctx, log, cfg, clients.Appwrite)
	if err != nil {
		log.Sync()
		return nil, err
	}

	usecases := wireUsecases(log, clients, reposet, files)
	handlerset := wireHandlers(log, usecases)
	router := wireRouter(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Usecases:     usecases,
		closeFiles:   closeFiles,
		shutdownOTel: shutdownOTel,
	}, nil
}

// Run serves until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr, "backend", a.Cfg.StoreBackend)
	srv := &http.Server{Engine: a.Router}
	return srv.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.closeFiles != nil {
		if err := a.closeFiles(); err != nil {
			a.Log.Warn("Closing file store failed", "error", err)
		}
	}
	if a.shutdownOTel != nil {
		if err := a.shutdownOTel(context.Background()); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
