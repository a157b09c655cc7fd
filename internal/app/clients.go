package app

import (
	"context"
	"fmt"

	"github.com/yungbote/fundocs-backend/internal/modules/learning/ingestion"
	"github.com/yungbote/fundocs-backend/internal/platform/appwrite"
	"github.com/yungbote/fundocs-backend/internal/platform/gemini"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
	"github.com/yungbote/fundocs-backend/internal/platform/websearch"
)

type Clients struct {
	AI       gemini.Client
	Fetcher  ingestion.Fetcher
	Search   ingestion.Searcher
	Appwrite *appwrite.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Gemini
	ai, err := gemini.NewClient(log, gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.GeminiTimeout,
		Breaker: gemini.DefaultBreakerConfig(),
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init gemini client: %w", err)
	}

	// Web search (optional)
	var search ingestion.Searcher
	if cfg.SearchAPIKey != "" {
		sc, err := websearch.New(ctx, log, websearch.Config{
			APIKey:  cfg.SearchAPIKey,
			CX:      cfg.SearchCX,
			Timeout: cfg.SearchTimeout,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init websearch client: %w", err)
		}
		search = sc
	} else {
		log.Warn("GOOGLE_API_KEY not set; unreachable URLs will not fall back to search")
	}

	// Appwrite
	var aw *appwrite.Client
	if cfg.StoreBackend == StoreBackendAppwrite {
		aw, err = appwrite.NewClient(log, appwrite.Config{
			Endpoint:  cfg.AppwriteEndpoint,
			ProjectID: cfg.AppwriteProjectID,
			APIKey:    cfg.AppwriteAPIKey,
			Timeout:   cfg.AppwriteTimeout,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init appwrite client: %w", err)
		}
	}

	return Clients{
		AI:       ai,
		Fetcher:  ingestion.NewHTTPFetcher(cfg.FetchTimeout),
		Search:   search,
		Appwrite: aw,
	}, nil
}
