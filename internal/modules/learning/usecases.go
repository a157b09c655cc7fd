package learning

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yungbote/fundocs-backend/internal/data/repos"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/ingestion"
	"github.com/yungbote/fundocs-backend/internal/modules/learning/progress"
	"github.com/yungbote/fundocs-backend/internal/platform/apierr"
	"github.com/yungbote/fundocs-backend/internal/platform/gemini"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

// SourceResolver turns a submitted URL or raw text into document text.
type SourceResolver interface {
	Resolve(ctx context.Context, source string) (*ingestion.Resolved, error)
}

type UsecasesDeps struct {
	Log *logger.Logger

	AI       gemini.Client
	Resolver SourceResolver

	Documents   repos.DocumentRepo
	Progress    repos.ProgressRepo
	Submissions repos.SubmissionRepo
	Users       repos.UserRepo

	// Optional: defaults to progress.DefaultRules.
	Rules []progress.BadgeRule
	// Optional: defaults to time.Now.
	Now func() time.Time
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	return Usecases{deps: deps}
}

func (u Usecases) WithLog(log *logger.Logger) Usecases {
	u.deps.Log = log
	return u
}

func (u Usecases) now() time.Time {
	if u.deps.Now != nil {
		return u.deps.Now().UTC()
	}
	return time.Now().UTC()
}

func (u Usecases) rules() []progress.BadgeRule {
	if len(u.deps.Rules) == 0 {
		return progress.DefaultRules
	}
	return u.deps.Rules
}

// generationError maps Gemini failures for content generation onto 503s.
func generationError(err error) *apierr.Error {
	var httpErr *gemini.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return apierr.Newf(http.StatusServiceUnavailable, "gemini_http_error", "Gemini API error: %d", httpErr.StatusCode)
	case errors.Is(err, gemini.ErrInvalidResponse):
		return apierr.New(http.StatusServiceUnavailable, "gemini_invalid_response", errors.New("Invalid response from Gemini"))
	case errors.Is(err, gemini.ErrUnavailable):
		return apierr.New(http.StatusServiceUnavailable, "gemini_unavailable", errors.New("Gemini API is temporarily unavailable"))
	default:
		return apierr.New(http.StatusServiceUnavailable, "gemini_transport_error", errors.New("Failed to contact Gemini API"))
	}
}

// internalError carries only the client-facing message; callers log the
// underlying cause.
func internalError(code, msg string) *apierr.Error {
	return apierr.New(http.StatusInternalServerError, code, errors.New(msg))
}

func notFound(code, msg string) *apierr.Error {
	return apierr.New(http.StatusNotFound, code, errors.New(msg))
}
