// Package chain wraps a single-prompt LLM chain: a prompt template filled
// with one input variable, sent to a model in a single call. It is the
// smallest useful composition of a template and a model, with no agent loop
// involved.
package chain

import (
	"context"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// ExplainTemplate asks the model for a plain-terms explanation. The
// "Answer:" lead-in primes completion models to continue with the
// explanation itself.
const ExplainTemplate = `You are a helpful assistant that explains concepts clearly.

Question: {{.question}}

Answer: Let me explain this in simple terms.
`

// Explainer runs questions through a prompt template and a model.
type Explainer struct {
	chain *chains.LLMChain
}

// NewExplainer creates an Explainer using ExplainTemplate.
func NewExplainer(model llms.Model) *Explainer {
	return NewExplainerWithTemplate(model, ExplainTemplate)
}

// NewExplainerWithTemplate creates an Explainer with a custom template.
// The template must reference exactly one variable, {{.question}}.
func NewExplainerWithTemplate(model llms.Model, template string) *Explainer {
	prompt := prompts.NewPromptTemplate(template, []string{"question"})
	return &Explainer{chain: chains.NewLLMChain(model, prompt)}
}

// Explain renders the template with the question and returns the model's
// completion with surrounding whitespace intact.
func (e *Explainer) Explain(ctx context.Context, question string) (string, error) {
	return chains.Predict(ctx, e.chain, map[string]any{
		"question": question,
	})
}
