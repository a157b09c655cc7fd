package ingestion

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	MaxTextRunes      = 1_000_000
	maxTitleRunes     = 50
	titleWords        = 5
	UntitledDoc       = "Untitled Doc"
	searchTitlePrefix = "GoogleSearch-"
)

// IsURL reports whether s is an absolute http(s) URL with a host.
func IsURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// lastSegment is whatever follows the final '/' of the raw source.
func lastSegment(source string) string {
	s := strings.TrimSpace(source)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return TruncateRunes(s, maxTitleRunes)
}

func TitleFromURL(source string) string {
	if t := lastSegment(source); t != "" {
		return t
	}
	return UntitledDoc
}

func SearchTitle(source string) string {
	return searchTitlePrefix + lastSegment(source)
}

// TitleFromText is the first five space-separated words, capped at 50 runes.
func TitleFromText(text string) string {
	words := strings.Split(text, " ")
	if len(words) > titleWords {
		words = words[:titleWords]
	}
	if t := TruncateRunes(strings.Join(words, " "), maxTitleRunes); strings.TrimSpace(t) != "" {
		return t
	}
	return UntitledDoc
}

func TruncateRunes(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
