package app

import (
	"strings"
	"testing"
	"time"

	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

func validConfig() Config {
	return Config{
		Port:         "8000",
		FrontendURLs: []string{"https://fundocs.appwrite.network"},
		StoreBackend: StoreBackendPostgres,
		GeminiAPIKey: "key",
	}
}

func TestConfigValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing gemini key", func(c *Config) { c.GeminiAPIKey = "" }, "GeminiAPIKey"},
		{"bad backend", func(c *Config) { c.StoreBackend = "mysql" }, "StoreBackend"},
		{"bad port", func(c *Config) { c.Port = "http" }, "Port"},
		{"bad origin", func(c *Config) { c.FrontendURLs = []string{"not a url"} }, "FrontendURLs"},
		{"search key without cx", func(c *Config) { c.SearchAPIKey = "k" }, "SearchCX"},
		{"appwrite without project", func(c *Config) {
			c.StoreBackend = StoreBackendAppwrite
			c.AppwriteEndpoint = "https://cloud.appwrite.io/v1"
			c.AppwriteAPIKey = "k"
			c.AppwriteDatabaseID = "db"
			c.AppwriteDocsCollectionID = "docs"
			c.AppwriteProgressCollectionID = "progress"
			c.AppwriteSubmissionsCollectionID = "subs"
		}, "AppwriteProjectID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("want error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("error should name %s: %v", tc.field, err)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("FRONTEND_URL", "http://localhost:5173, https://fundocs.appwrite.network")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "45")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9000" || cfg.StoreBackend != StoreBackendPostgres {
		t.Fatalf("cfg: %+v", cfg)
	}
	if len(cfg.FrontendURLs) != 2 || cfg.FrontendURLs[0] != "http://localhost:5173" {
		t.Fatalf("frontend urls: %v", cfg.FrontendURLs)
	}
	if cfg.GeminiTimeout != 45*time.Second {
		t.Fatalf("gemini timeout: %v", cfg.GeminiTimeout)
	}
}

func TestLoadConfigAppwriteTips(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("STORE_BACKEND", "appwrite")
	for k, v := range map[string]string{
		"APPWRITE_ENDPOINT":                        "https://cloud.appwrite.io/v1",
		"APPWRITE_PROJECT_ID":                      "p",
		"APPWRITE_API_KEY":                         "k",
		"APPWRITE_DATABASE_ID":                     "db",
		"APPWRITE_DOCS_COLLECTION_ID":              "docs",
		"APPWRITE_USER_PROGRESS_COLLECTION_ID":     "progress",
		"APPWRITE_SUMBMIT_CHALLENGE_COLLECTION_ID": "subs",
		"APPWRITE_TIPS_COLLECTION_ID":              "tips",
	} {
		t.Setenv(k, v)
	}

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AppwriteTipsCollectionID != "tips" {
		t.Fatalf("tips collection: got=%q", cfg.AppwriteTipsCollectionID)
	}
}
