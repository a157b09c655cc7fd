package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/fundocs-backend/internal/http/handlers"
	"github.com/yungbote/fundocs-backend/internal/observability"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

func TestRouterHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := observability.NewMetrics()
	r := NewRouter(RouterConfig{
		Log:           logger.Nop(),
		ServiceName:   "fundocs-test",
		Metrics:       m,
		HealthHandler: httpH.NewHealthHandler(),
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: code=%d body=%q", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id header missing")
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: code=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `route="/healthcheck"`) {
		t.Fatalf("healthcheck request not counted:\n%s", rec.Body.String())
	}
}

func TestRouterKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{Log: logger.Nop(), HealthHandler: httpH.NewHealthHandler()})

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "req-123" {
		t.Fatalf("request id: got=%q", got)
	}
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterConfig{Log: logger.Nop()})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate_all", strings.NewReader("{}")))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d", rec.Code)
	}
}
