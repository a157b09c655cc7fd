package content

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxChallengeXP     = 10
	noFeedbackProvided = "No feedback provided."
)

// Verdict is the judged outcome of one challenge submission.
type Verdict struct {
	Success  bool
	Feedback string
	XP       int
	Status   Status
}

var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// FirstJSONObject returns the span from the first '{' to the last '}'.
func FirstJSONObject(s string) (string, bool) {
	m := jsonObjectRe.FindString(s)
	return m, m != ""
}

// ParseVerdict reads the model's judgement. A reply with no decodable object
// becomes an unsuccessful zero-XP verdict carrying the cleaned reply text.
func ParseVerdict(reply string) Verdict {
	if obj, ok := FirstJSONObject(reply); ok {
		var raw map[string]any
		if err := json.Unmarshal([]byte(obj), &raw); err == nil {
			return Verdict{
				Success:  asBool(raw["success"]),
				Feedback: cleanFeedback(raw["feedback"]),
				XP:       ClampXP(asInt(raw["xp"])),
				Status:   StatusOK,
			}
		}
	}
	return Verdict{
		Success:  false,
		Feedback: cleanFeedback(reply),
		XP:       0,
		Status:   StatusUnparseable,
	}
}

func ClampXP(xp int) int {
	if xp < 0 {
		return 0
	}
	if xp > MaxChallengeXP {
		return MaxChallengeXP
	}
	return xp
}

// cleanFeedback strips fences and unwraps a nested {"feedback": ...} payload.
func cleanFeedback(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return noFeedbackProvided
	case string:
		s = t
	case map[string]any:
		return cleanFeedback(t["feedback"])
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return noFeedbackProvided
		}
		s = string(b)
	}
	s = StripCodeFence(s)
	if strings.HasPrefix(s, "{") {
		var inner map[string]any
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			if f, ok := inner["feedback"]; ok {
				return cleanFeedback(f)
			}
		}
	}
	if s == "" {
		return noFeedbackProvided
	}
	return s
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	default:
		return false
	}
}

func asInt(v any) int {
	switch t := v.(type) {
	case float64:
		return roundSaturated(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return roundSaturated(f)
	default:
		return 0
	}
}

// roundSaturated rounds f to an int, pinning values outside the int32 range
// to its bounds so huge model output cannot wrap around.
func roundSaturated(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int(math.Round(f))
	}
}
