package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	pdf "github.com/ledongthuc/pdf"
)

const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultUserAgent    = "Mozilla/5.0"
	maxFetchBytes       = 32 << 20
)

// ErrBotChallenge is returned when the page is an anti-bot interstitial
// rather than the document.
var ErrBotChallenge = errors.New("bot protection page detected")

var botMarkers = []string{"Just a moment", "Verifying you are human"}

// Fetcher turns a URL into plain text.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	c := &http.Client{Timeout: timeout}
	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 6 {
			return fmt.Errorf("too many redirects")
		}
		return nil
	}
	return &HTTPFetcher{client: c, userAgent: DefaultUserAgent}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return "", err
	}
	if len(b) > maxFetchBytes {
		return "", fmt.Errorf("response too large (> %d bytes)", maxFetchBytes)
	}

	var text string
	if isPDF(resp.Header.Get("Content-Type"), b) {
		text, err = extractPDF(b)
		if err != nil {
			return "", err
		}
	} else {
		text = ExtractHTMLText(bytes.NewReader(b))
	}
	if HasBotMarker(text) {
		return "", ErrBotChallenge
	}
	return TruncateRunes(text, MaxTextRunes), nil
}

func HasBotMarker(text string) bool {
	for _, m := range botMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func isPDF(contentType string, data []byte) bool {
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/pdf" && len(data) > 0
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return strings.Join(strings.Fields(string(b)), " "), nil
}
