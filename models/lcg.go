// Package models provides CompletionClient implementations backed by
// LangChainGo model providers.
package models

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/yadavanujkumar/reagent"
)

// LCG wraps an llms.Model and implements reagent's CompletionClient.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithModel("gpt-4o-mini"))
//	client := models.NewLCG(llm).WithReActStop()
//	agent := reagent.NewAgent(client)
type LCG struct {
	model llms.Model
	opts  []llms.CallOption
}

// NewLCG creates a new LCG wrapping the given llms.Model.
func NewLCG(model llms.Model) *LCG {
	return &LCG{model: model}
}

// WithCallOptions appends call options applied to every completion call
// (temperature, max tokens, etc.). Returns the client for chaining.
func (c *LCG) WithCallOptions(opts ...llms.CallOption) *LCG {
	c.opts = append(c.opts, opts...)
	return c
}

// WithReActStop makes the model stop generating at the start of an
// "Observation:" line. ReAct prompts instruct the model to wait for the real
// observation; without a stop sequence many models hallucinate one.
// Returns the client for chaining.
func (c *LCG) WithReActStop() *LCG {
	return c.WithCallOptions(llms.WithStopWords([]string{"\nObservation:"}))
}

// Unwrap returns the underlying llms.Model.
func (c *LCG) Unwrap() llms.Model {
	return c.model
}

// Complete implements reagent.CompletionClient.
func (c *LCG) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c.model, prompt, c.opts...)
}

// Compile-time check that LCG implements reagent.CompletionClient.
var _ reagent.CompletionClient = (*LCG)(nil)
