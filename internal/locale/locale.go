package locale

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tr.yaml
var defaultLocale []byte

// Messages are the fixed user-facing strings of the widget.
type Messages struct {
	LookupFailed     string `yaml:"lookupFailed" json:"lookupFailed"`
	ClearConfirm     string `yaml:"clearConfirm" json:"clearConfirm"`
	IdlePrompt       string `yaml:"idlePrompt" json:"idlePrompt"`
	InputPlaceholder string `yaml:"inputPlaceholder" json:"inputPlaceholder"`
}

// Locale holds the display strings and the condition phrase table.
type Locale struct {
	Messages   Messages
	conditions map[string]string
}

type file struct {
	Messages   Messages          `yaml:"messages"`
	Conditions map[string]string `yaml:"conditions"`
}

// Parse reads a locale YAML document.
func Parse(data []byte) (*Locale, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse locale: %w", err)
	}
	if strings.TrimSpace(f.Messages.LookupFailed) == "" {
		return nil, errors.New("locale: messages.lookupFailed cannot be empty")
	}

	conditions := make(map[string]string, len(f.Conditions))
	for k, v := range f.Conditions {
		conditions[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Locale{Messages: f.Messages, conditions: conditions}, nil
}

// Default returns the embedded Turkish locale.
func Default() *Locale {
	l, err := Parse(defaultLocale)
	if err != nil {
		panic(err)
	}
	return l
}

// TranslateCondition maps an upstream condition phrase ("light rain") to its
// display string. Unknown phrases are returned unchanged.
func (l *Locale) TranslateCondition(description string) string {
	if v, ok := l.conditions[strings.ToLower(description)]; ok {
		return v
	}
	return description
}
