package ingestion

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// ExtractHTMLText returns every visible text node, trimmed and joined with
// single spaces. script, style and noscript subtrees are dropped.
func ExtractHTMLText(r io.Reader) string {
	z := html.NewTokenizer(r)
	var parts []string
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if skippedElements[string(name)] {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skippedElements[string(name)] && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			if s := strings.TrimSpace(string(z.Text())); s != "" {
				parts = append(parts, s)
			}
		}
	}
}
