package prompts

import (
	"fmt"
	"sync"
)

type Prompt struct {
	Name    string
	Version int
	Text    string
}

var (
	registryMu   sync.RWMutex
	registry     = map[PromptName]Template{}
	registerOnce sync.Once
)

func Register(t Template) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[t.Name] = t
}

// Build renders a registered prompt.
func Build(name PromptName, in Input) (Prompt, error) {
	registerOnce.Do(RegisterAll)

	registryMu.RLock()
	t, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
		}
	}
	text, err := t.Render(in)
	if err != nil {
		return Prompt{}, fmt.Errorf("%s render: %w", string(name), err)
	}
	return Prompt{Name: string(t.Name), Version: t.Version, Text: text}, nil
}
