package ingestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/fundocs-backend/internal/platform/logger"
	"github.com/yungbote/fundocs-backend/internal/platform/websearch"
)

const noSearchResults = "No results found via Google Search."

type Origin string

const (
	OriginURL    Origin = "url"
	OriginSearch Origin = "search"
	OriginText   Origin = "text"
)

// Searcher is the web-search fallback used when a page cannot be fetched.
type Searcher interface {
	Search(ctx context.Context, query string) ([]websearch.Result, error)
}

var ErrSearchUnavailable = errors.New("web search is not configured")

// Resolved is a source turned into document text.
type Resolved struct {
	Title  string
	Text   string
	Origin Origin
}

type Resolver struct {
	log      *logger.Logger
	fetcher  Fetcher
	searcher Searcher
}

func NewResolver(log *logger.Logger, fetcher Fetcher, searcher Searcher) *Resolver {
	return &Resolver{
		log:      log.With("component", "ingestion.Resolver"),
		fetcher:  fetcher,
		searcher: searcher,
	}
}

// Resolve fetches URL sources (falling back to web search) and passes raw
// text through trimmed.
func (r *Resolver) Resolve(ctx context.Context, source string) (*Resolved, error) {
	if !IsURL(source) {
		text := strings.TrimSpace(source)
		return &Resolved{Title: TitleFromText(text), Text: text, Origin: OriginText}, nil
	}

	if r.fetcher != nil {
		text, err := r.fetcher.Fetch(ctx, source)
		if err == nil {
			return &Resolved{Title: TitleFromURL(source), Text: text, Origin: OriginURL}, nil
		}
		r.log.Warn("Page fetch failed, falling back to web search", "url", source, "error", err)
	}

	text, err := r.search(ctx, source)
	if err != nil {
		return nil, err
	}
	return &Resolved{Title: SearchTitle(source), Text: text, Origin: OriginSearch}, nil
}

func (r *Resolver) search(ctx context.Context, query string) (string, error) {
	if r.searcher == nil {
		return "", ErrSearchUnavailable
	}
	results, err := r.searcher.Search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("web search: %w", err)
	}
	if len(results) == 0 {
		return noSearchResults, nil
	}
	snippets := make([]string, 0, len(results))
	for _, res := range results {
		snippets = append(snippets, res.Snippet)
	}
	return TruncateRunes(strings.Join(snippets, " "), MaxTextRunes), nil
}
