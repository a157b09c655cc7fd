package observability

import (
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	llmRequests  *prometheus.CounterVec
	llmLatency   *prometheus.HistogramVec
	breakerState *prometheus.GaugeVec

	docsIngested  *prometheus.CounterVec
	xpAwarded     prometheus.Counter
	badgesAwarded *prometheus.CounterVec
	submissions   *prometheus.CounterVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Enabled defaults to true; METRICS_ENABLED=false turns collection off.
func Enabled() bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv("METRICS_ENABLED")))
	switch v {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

func Current() *Metrics {
	return instance
}

// Init builds the process-wide collectors once. It returns nil when metrics
// are disabled; every method is safe on a nil receiver.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("prometheus metrics initialized")
		}
	})
	return instance
}

// NewMetrics registers a fresh set of collectors on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		apiRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fundocs_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fundocs_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"method", "route", "status"}),
		apiInflight: f.NewGauge(prometheus.GaugeOpts{
			Name: "fundocs_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		llmRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fundocs_llm_requests_total",
			Help: "Generative model calls by model/operation/status.",
		}, []string{"model", "operation", "status"}),
		llmLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fundocs_llm_request_duration_seconds",
			Help:    "Generative model call latency in seconds.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"model", "operation", "status"}),
		breakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fundocs_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
		}, []string{"name"}),
		docsIngested: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fundocs_documents_ingested_total",
			Help: "Documents created by source origin (url/search/text).",
		}, []string{"origin"}),
		xpAwarded: f.NewCounter(prometheus.CounterOpts{
			Name: "fundocs_xp_awarded_total",
			Help: "Total XP awarded across all users.",
		}),
		badgesAwarded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fundocs_badges_awarded_total",
			Help: "Badges newly unlocked by badge name.",
		}, []string{"badge"}),
		submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "fundocs_challenge_submissions_total",
			Help: "Evaluated challenge submissions by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveLLMRequest(model, operation, status string, dur time.Duration) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.llmRequests.WithLabelValues(model, operation, status).Inc()
	if dur > 0 {
		m.llmLatency.WithLabelValues(model, operation, status).Observe(dur.Seconds())
	}
}

func (m *Metrics) SetBreakerState(name string, state float64) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(state)
}

func (m *Metrics) IncDocumentIngested(origin string) {
	if m == nil {
		return
	}
	m.docsIngested.WithLabelValues(origin).Inc()
}

func (m *Metrics) ObserveAward(xp int, newBadges []string) {
	if m == nil {
		return
	}
	if xp > 0 {
		m.xpAwarded.Add(float64(xp))
	}
	for _, b := range newBadges {
		m.badgesAwarded.WithLabelValues(b).Inc()
	}
}

func (m *Metrics) IncSubmission(success bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if success {
		outcome = "passed"
	}
	m.submissions.WithLabelValues(outcome).Inc()
}
