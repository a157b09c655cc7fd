package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yungbote/fundocs-backend/internal/observability"
	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second

	operationGenerate = "generateContent"
)

var (
	// ErrInvalidResponse means the call succeeded but carried no usable text.
	ErrInvalidResponse = errors.New("gemini: invalid response")
	// ErrUnavailable is returned without calling out while the breaker is open.
	ErrUnavailable = errors.New("gemini: temporarily unavailable")
)

// Client is the generative text API used by the learning module.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// HTTPError is a non-2xx reply from the API.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[string]
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	bc := cfg.Breaker
	if bc.FailureThreshold == 0 {
		bc = DefaultBreakerConfig()
	}

	c := &client{
		log:        log.With("client", "gemini", "model", model),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
	c.cb = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bc.FailureThreshold
		},
		// client errors and empty replies say nothing about availability
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, ErrInvalidResponse) {
				return true
			}
			var he *HTTPError
			if errors.As(err, &he) {
				return he.StatusCode < 500 && he.StatusCode != http.StatusTooManyRequests
			}
			return errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			observability.Current().SetBreakerState(name, float64(to))
		},
	})
	return c, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// GenerateText sends one prompt and returns the first candidate's text.
// There are no retries.
func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	text, err := c.cb.Execute(func() (string, error) {
		return c.generate(ctx, prompt)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return text, err
}

func (c *client) generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	req := generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}

	resp, raw, err := c.doOnce(ctx, http.MethodPost, "/v1beta/models/"+url.PathEscape(c.model)+":generateContent", req)
	observability.Current().ObserveLLMRequest(c.model, operationGenerate, statusFromRespErr(resp, err), time.Since(start))
	if err != nil {
		c.log.Warn("Gemini request failed", "error", err, "duration", time.Since(start).String())
		return "", err
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrInvalidResponse, err)
	}
	text := extractText(out)
	if strings.TrimSpace(text) == "" {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: blocked (%s)", ErrInvalidResponse, out.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidate text", ErrInvalidResponse)
	}
	c.log.Debug("Gemini request completed", "duration", time.Since(start).String(), "chars", len(text))
	return text, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?key="+url.QueryEscape(c.apiKey), &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, scrubKey(err, c.apiKey)
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// url.Error carries the full request URL, key included.
func scrubKey(err error, key string) error {
	var ue *url.Error
	if key != "" && errors.As(err, &ue) {
		ue.URL = strings.ReplaceAll(ue.URL, key, "[REDACTED]")
	}
	return err
}

func statusFromRespErr(resp *http.Response, err error) string {
	if resp != nil {
		return strconv.Itoa(resp.StatusCode)
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
