package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/fundocs-backend/internal/http/middleware"
	"github.com/yungbote/fundocs-backend/internal/observability"
	"github.com/yungbote/fundocs-backend/internal/platform/envutil"
	"github.com/yungbote/fundocs-backend/internal/platform/gemini"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendAppwrite = "appwrite"
)

type Config struct {
	Port         string `validate:"required,numeric"`
	ServiceName  string
	Environment  string
	Version      string
	FrontendURLs []string `validate:"min=1,dive,url"`
	StoreBackend string   `validate:"oneof=postgres appwrite"`

	GeminiAPIKey  string `validate:"required"`
	GeminiModel   string
	GeminiBaseURL string `validate:"omitempty,url"`
	GeminiTimeout time.Duration

	// Web search is the fallback for unreachable URLs; both or neither.
	SearchAPIKey  string `validate:"required_with=SearchCX"`
	SearchCX      string `validate:"required_with=SearchAPIKey"`
	SearchTimeout time.Duration
	FetchTimeout  time.Duration

	AppwriteEndpoint                string `validate:"required_if=StoreBackend appwrite"`
	AppwriteProjectID               string `validate:"required_if=StoreBackend appwrite"`
	AppwriteAPIKey                  string `validate:"required_if=StoreBackend appwrite"`
	AppwriteDatabaseID              string `validate:"required_if=StoreBackend appwrite"`
	AppwriteDocsCollectionID        string `validate:"required_if=StoreBackend appwrite"`
	AppwriteProgressCollectionID    string `validate:"required_if=StoreBackend appwrite"`
	AppwriteSubmissionsCollectionID string `validate:"required_if=StoreBackend appwrite"`
	AppwriteTipsCollectionID        string
	AppwriteBucketID                string
	AppwriteTimeout                 time.Duration

	// AvatarBucket enables avatar cleanup on the postgres backend.
	AvatarBucket string

	TracingEnabled     bool
	TracingEndpoint    string
	TracingHeaders     string
	TracingInsecure    bool
	TracingSampleRatio float64 `validate:"gte=0,lte=1"`
}

var validate = validator.New()

func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:         envutil.String("PORT", "8000", log),
		ServiceName:  envutil.String("OTEL_SERVICE_NAME", "fundocs-backend", log),
		Environment:  envutil.String("APP_ENV", "development", log),
		Version:      envutil.String("APP_VERSION", "", log),
		FrontendURLs: splitList(envutil.String("FRONTEND_URL", middleware.DefaultFrontendURL, log)),
		StoreBackend: strings.ToLower(envutil.String("STORE_BACKEND", StoreBackendPostgres, log)),

		GeminiAPIKey:  envutil.String("GEMINI_API_KEY", "", log),
		GeminiModel:   envutil.String("GEMINI_MODEL", gemini.DefaultModel, log),
		GeminiBaseURL: envutil.String("GEMINI_BASE_URL", "", log),
		GeminiTimeout: envutil.Seconds("GEMINI_TIMEOUT_SECONDS", gemini.DefaultTimeout, log),

		SearchAPIKey:  envutil.String("GOOGLE_API_KEY", "", log),
		SearchCX:      envutil.String("GOOGLE_CX_ID", "", log),
		SearchTimeout: envutil.Seconds("SEARCH_TIMEOUT_SECONDS", 10*time.Second, log),
		FetchTimeout:  envutil.Seconds("FETCH_TIMEOUT_SECONDS", 10*time.Second, log),

		AppwriteEndpoint:                envutil.String("APPWRITE_ENDPOINT", "", log),
		AppwriteProjectID:               envutil.String("APPWRITE_PROJECT_ID", "", log),
		AppwriteAPIKey:                  envutil.String("APPWRITE_API_KEY", "", log),
		AppwriteDatabaseID:              envutil.String("APPWRITE_DATABASE_ID", "", log),
		AppwriteDocsCollectionID:        envutil.String("APPWRITE_DOCS_COLLECTION_ID", "", log),
		AppwriteProgressCollectionID:    envutil.String("APPWRITE_USER_PROGRESS_COLLECTION_ID", "", log),
		AppwriteSubmissionsCollectionID: envutil.String("APPWRITE_SUMBMIT_CHALLENGE_COLLECTION_ID", "", log),
		AppwriteTipsCollectionID:        envutil.String("APPWRITE_TIPS_COLLECTION_ID", "", log),
		AppwriteBucketID:                envutil.String("APPWRITE_BUCKET_ID", "", log),
		AppwriteTimeout:                 envutil.Seconds("APPWRITE_TIMEOUT_SECONDS", 15*time.Second, log),

		AvatarBucket: envutil.String("AVATAR_GCS_BUCKET_NAME", "", log),

		TracingEnabled:     envutil.Bool("OTEL_ENABLED", false),
		TracingEndpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
		TracingHeaders:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", nil),
		TracingInsecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TracingSampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			parts := make([]string, 0, len(errs))
			for _, fe := range errs {
				parts = append(parts, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(parts, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) tracing() observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:     c.TracingEnabled,
		ServiceName: c.ServiceName,
		Environment: c.Environment,
		Version:     c.Version,
		Endpoint:    c.TracingEndpoint,
		Headers:     observability.ParseHeaders(c.TracingHeaders),
		Insecure:    c.TracingInsecure,
		SampleRatio: c.TracingSampleRatio,
	}
}
