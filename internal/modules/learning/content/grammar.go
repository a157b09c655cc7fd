package content

import (
	"regexp"
	"strings"
)

// Grammar describes how generated text is laid out: each section opens with
// HeadingToken followed by its title and runs until the next HeadingToken or
// the end of the text. Challenges inside a section end with ChallengeEnd.
type Grammar struct {
	HeadingToken string
	ChallengeEnd string
}

var DefaultGrammar = Grammar{
	HeadingToken: "###",
	ChallengeEnd: "Challenge Ended",
}

const (
	SectionStory      = "STORY"
	SectionSteps      = "STEPS"
	SectionChallenges = "CHALLENGES"
	SectionFlashcards = "FLASHCARDS"
)

// Section returns the trimmed body of the first section titled title
// (case-insensitive). Text without such a heading yields "".
func (g Grammar) Section(text, title string) string {
	if text == "" || strings.TrimSpace(title) == "" {
		return ""
	}
	tok := regexp.QuoteMeta(g.heading())
	re, err := regexp.Compile(`(?is)` + tok + `[ \t]*` + regexp.QuoteMeta(strings.TrimSpace(title)) + `\b[ \t:]*(.*?)(?:` + tok + `|\z)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// HasSection reports whether a heading for title is present at all, even if
// its body is empty.
func (g Grammar) HasSection(text, title string) bool {
	tok := regexp.QuoteMeta(g.heading())
	re, err := regexp.Compile(`(?i)` + tok + `[ \t]*` + regexp.QuoteMeta(strings.TrimSpace(title)) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// SplitChallenges cuts a challenges section on the terminator sentinel. Text
// after the last terminator is kept when it is not blank.
func (g Grammar) SplitChallenges(section string) []string {
	end := g.ChallengeEnd
	if end == "" {
		end = DefaultGrammar.ChallengeEnd
	}
	out := []string{}
	for _, part := range strings.Split(section, end) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (g Grammar) heading() string {
	if g.HeadingToken == "" {
		return DefaultGrammar.HeadingToken
	}
	return g.HeadingToken
}
