package content

import (
	"encoding/json"
	"regexp"
	"strings"
)

type Status string

const (
	StatusOK          Status = "ok"
	StatusEmpty       Status = "empty"
	StatusUnparseable Status = "unparseable"
)

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generated is the structured form of one generation reply.
type Generated struct {
	Story      string
	Steps      []string
	Challenges string
	Flashcards []Flashcard

	StoryStatus      Status
	StepsStatus      Status
	ChallengesStatus Status
	FlashcardsStatus Status
}

// ChallengeList splits Challenges on the terminator sentinel.
func (g Generated) ChallengeList() []string {
	return DefaultGrammar.SplitChallenges(g.Challenges)
}

var (
	stepMarkerRe = regexp.MustCompile(`^[-*0-9.\s]+`)
	fenceOpenRe  = regexp.MustCompile("^```[A-Za-z0-9_-]*[ \t]*\r?\n?")
	fenceCloseRe = regexp.MustCompile("\r?\n?```[ \t]*$")
)

// ParseGenerated extracts the four sections using the default grammar.
func ParseGenerated(text string) Generated {
	return DefaultGrammar.ParseGenerated(text)
}

func (g Grammar) ParseGenerated(text string) Generated {
	var out Generated

	out.Story = g.Section(text, SectionStory)
	out.StoryStatus = textStatus(out.Story)

	out.Steps = ParseSteps(g.Section(text, SectionSteps))
	if len(out.Steps) == 0 {
		out.StepsStatus = StatusEmpty
	} else {
		out.StepsStatus = StatusOK
	}

	out.Challenges = g.Section(text, SectionChallenges)
	out.ChallengesStatus = textStatus(out.Challenges)

	out.Flashcards, out.FlashcardsStatus = ParseFlashcards(g.Section(text, SectionFlashcards))
	return out
}

// ParseSteps returns the non-blank lines of a steps section with leading list
// markers removed.
func ParseSteps(section string) []string {
	out := []string{}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(stepMarkerRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ParseFlashcards strictly decodes a JSON array of cards, optionally wrapped in
// a code fence. Anything else yields an empty list and StatusUnparseable.
func ParseFlashcards(section string) ([]Flashcard, Status) {
	body := StripCodeFence(section)
	if body == "" {
		return []Flashcard{}, StatusEmpty
	}
	var cards []Flashcard
	if err := json.Unmarshal([]byte(body), &cards); err != nil {
		return []Flashcard{}, StatusUnparseable
	}
	if cards == nil {
		return []Flashcard{}, StatusUnparseable
	}
	if len(cards) == 0 {
		return cards, StatusEmpty
	}
	return cards, StatusOK
}

// StripCodeFence removes one enclosing ``` fence (with optional language tag).
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = fenceOpenRe.ReplaceAllString(s, "")
	s = fenceCloseRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// EncodeFlashcards is the stored form of the flashcards column.
func EncodeFlashcards(cards []Flashcard) string {
	if cards == nil {
		cards = []Flashcard{}
	}
	b, err := json.Marshal(cards)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeFlashcards reads the stored column back. Garbage reads as empty.
func DecodeFlashcards(s string) []Flashcard {
	cards, _ := ParseFlashcards(s)
	return cards
}

func textStatus(s string) Status {
	if s == "" {
		return StatusEmpty
	}
	return StatusOK
}
