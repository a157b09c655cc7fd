package prompts

import (
	"fmt"
	"strings"
)

type Validator func(Input) error

// RequireText rejects blank text fields; prompts built around them would
// only make the model guess.
func RequireText(field string, get func(Input) string) Validator {
	return func(in Input) error {
		if strings.TrimSpace(get(in)) == "" {
			return fmt.Errorf("%s required", field)
		}
		return nil
	}
}

func RequireNonNegative(field string, get func(Input) int) Validator {
	return func(in Input) error {
		if v := get(in); v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", field, v)
		}
		return nil
	}
}
