package websearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/yungbote/fundocs-backend/internal/platform/logger"
)

const DefaultTimeout = 10 * time.Second

type Result struct {
	Title   string
	Link    string
	Snippet string
}

type Config struct {
	APIKey string
	CX     string
	// Endpoint overrides the API base URL.
	Endpoint string
	Timeout  time.Duration
}

// Client queries a Programmable Search Engine.
type Client struct {
	log     *logger.Logger
	svc     *customsearch.Service
	cx      string
	timeout time.Duration
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.CX) == "" {
		return nil, fmt.Errorf("websearch: api key and cx are required")
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("websearch: new service: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		log:     log.With("client", "websearch"),
		svc:     svc,
		cx:      cfg.CX,
		timeout: timeout,
	}, nil
}

// Search returns the first page of results. No results is not an error.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.svc.Cse.List().Cx(c.cx).Q(query).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(res.Items))
	for _, it := range res.Items {
		if it == nil {
			continue
		}
		out = append(out, Result{Title: it.Title, Link: it.Link, Snippet: it.Snippet})
	}
	c.log.Debug("Web search completed", "results", len(out))
	return out, nil
}
