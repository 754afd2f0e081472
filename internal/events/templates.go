package events

import (
	"bytes"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// MessageTemplateEngine provides dynamic message generation for events.
// Templates are text/template strings with the sprig function map available.
type MessageTemplateEngine struct {
	mu        sync.RWMutex
	templates map[EventReason]*template.Template
	sources   map[EventReason]string
}

// NewMessageTemplateEngine creates a new message template engine with default templates.
func NewMessageTemplateEngine() *MessageTemplateEngine {
	engine := &MessageTemplateEngine{
		templates: make(map[EventReason]*template.Template),
		sources:   make(map[EventReason]string),
	}
	engine.loadDefaultTemplates()
	return engine
}

var defaultTemplates = map[EventReason]string{
	TopicModuleLoaded:     `Module {{.Name}} initialized{{if .Duration}} in {{.Duration}}{{end}}`,
	TopicModuleLoadFailed: `Module {{.Name}} failed to initialize{{if .Error}}: {{.Error}}{{end}}`,
	TopicCatalogReloaded:  `Module catalog reloaded, {{.Count}} new {{if eq .Count 1}}module{{else}}modules{{end}}`,

	TopicRegionCreated:    `Region {{.Region | quote}} created`,
	TopicNavigated:        `Region {{.Region | quote}} navigated to {{.Target}}`,
	TopicNavigationFailed: `Navigation of region {{.Region | quote}} to {{.Target}} failed{{if .Error}}: {{.Error}}{{end}}`,

	TopicBootstrapCompleted: `Bootstrap {{.Name | trunc 8}} completed{{if .Duration}} in {{.Duration}}{{end}}`,
}

func (e *MessageTemplateEngine) loadDefaultTemplates() {
	for reason, text := range defaultTemplates {
		// Default templates are constants; a parse failure is a programming error.
		if err := e.SetTemplate(reason, text); err != nil {
			panic(err)
		}
	}
}

// Render generates a message for the given event reason and data.
func (e *MessageTemplateEngine) Render(reason EventReason, data EventData) string {
	e.mu.RLock()
	tmpl, exists := e.templates[reason]
	e.mu.RUnlock()

	if !exists {
		return fmt.Sprintf("Event: %s for %s", string(reason), data.Name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Event: %s for %s (template error: %v)", string(reason), data.Name, err)
	}
	return buf.String()
}

// SetTemplate parses text and installs it as the template for reason.
func (e *MessageTemplateEngine) SetTemplate(reason EventReason, text string) error {
	tmpl, err := template.New(string(reason)).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template for %s: %w", reason, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[reason] = tmpl
	e.sources[reason] = text
	return nil
}

// GetTemplate returns the template source for a specific event reason.
func (e *MessageTemplateEngine) GetTemplate(reason EventReason) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	text, exists := e.sources[reason]
	return text, exists
}
