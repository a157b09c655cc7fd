package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Spec is the declaration format used in RegisterAll. Text is a go template
// over Input.
type Spec struct {
	Name       PromptName
	Version    int
	Text       string
	Validators []Validator
}

// Template is a compiled Spec.
type Template struct {
	Name     PromptName
	Version  int
	Render   func(Input) (string, error)
	Validate Validator
}

func MakeTemplate(s Spec) (Template, error) {
	if strings.TrimSpace(string(s.Name)) == "" {
		return Template{}, fmt.Errorf("missing prompt name")
	}
	if s.Version <= 0 {
		return Template{}, fmt.Errorf("invalid version for %s", s.Name)
	}
	t, err := template.New(string(s.Name)).Option("missingkey=zero").Parse(s.Text)
	if err != nil {
		return Template{}, fmt.Errorf("%s template parse: %w", s.Name, err)
	}
	tt := Template{
		Name:    s.Name,
		Version: s.Version,
		Render: func(in Input) (string, error) {
			var b bytes.Buffer
			if err := t.Execute(&b, in); err != nil {
				return "", err
			}
			return strings.TrimSpace(b.String()), nil
		},
	}
	if len(s.Validators) > 0 {
		tt.Validate = func(in Input) error {
			for _, v := range s.Validators {
				if v == nil {
					continue
				}
				if err := v(in); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return tt, nil
}

func RegisterSpec(s Spec) {
	t, err := MakeTemplate(s)
	if err != nil {
		panic(err)
	}
	Register(t)
}
