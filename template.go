package reagent

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed react.tmpl
var reactTemplateContent string

// PromptData contains the data passed to prompt templates.
type PromptData struct {
	// Tools is the rendered tool catalogue, one "name: description" line
	// per tool in registration order.
	Tools string

	// ToolNames is the comma-separated list of tool names.
	ToolNames string

	// Question is the original question that started the run.
	Question string

	// ScratchPad is the rendered transcript of previous iterations. It
	// directly follows the prompt's trailing "Thought:" marker, so it is
	// empty on the first iteration.
	ScratchPad string
}

// DefaultPromptTemplate is the default ReAct prompt template.
//
// The template file is located at react.tmpl. Replace it via
// [PromptBuilder.WithTemplate], but note that any replacement must keep the
// Action / Action Input / Final Answer output convention that [ParseDecision]
// expects; diverging from it is a configuration error, not something the
// parser adapts to.
var DefaultPromptTemplate = template.Must(
	template.New("react").Parse(reactTemplateContent),
)

// PromptBuilder renders the prompt sent to the model on each iteration:
// the tool catalogue, the instructional template, the original question, and
// the transcript so far. It is a pure data transformation with no state of
// its own, so one builder can be shared across concurrent runs.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder creates a PromptBuilder using DefaultPromptTemplate.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{tmpl: DefaultPromptTemplate}
}

// WithTemplate sets a custom prompt template.
// See DefaultPromptTemplate for the expected data fields and the output
// convention the template must preserve.
func (b *PromptBuilder) WithTemplate(tmpl *template.Template) *PromptBuilder {
	b.tmpl = tmpl
	return b
}

// WithTemplateString sets a custom prompt template from a string.
// Returns an error if the template string is invalid.
func (b *PromptBuilder) WithTemplateString(tmplStr string) (*PromptBuilder, error) {
	tmpl, err := template.New("react").Parse(tmplStr)
	if err != nil {
		return b, fmt.Errorf("failed to parse template: %w", err)
	}
	b.tmpl = tmpl
	return b, nil
}

// Render produces the exact prompt text for the next model call.
func (b *PromptBuilder) Render(
	question string,
	registry *Registry,
	transcript *Transcript,
) (string, error) {
	data := PromptData{
		Tools:      renderToolCatalogue(registry),
		ToolNames:  strings.Join(registry.Names(), ", "),
		Question:   question,
		ScratchPad: transcript.scratchpad(),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

// renderToolCatalogue renders one "name: description" line per tool.
func renderToolCatalogue(registry *Registry) string {
	var sb strings.Builder
	for i, tool := range registry.Tools() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(tool.Name())
		sb.WriteString(": ")
		sb.WriteString(tool.Description())
	}
	return sb.String()
}
