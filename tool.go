package reagent

import (
	"context"
	"fmt"
)

// Tool is a named capability the agent can invoke with a string input.
//
// Responsibility design:
//   - Tool: accept a string input, execute logic, return a string result
//   - Registry: map tool names to tools, render the prompt catalogue
//   - Agent: decide when to invoke, convert failures to observation text
//
// Tools should focus on business logic only. A failed invocation returns an
// error; the agent feeds the error text back to the model as an observation
// rather than aborting the run.
type Tool interface {
	// Name returns the tool's identifier used in Action lines.
	Name() string

	// Description returns a human-readable description for the model.
	// It appears in the prompt's tool catalogue, so it should state what
	// the tool does and what the input should look like.
	Description() string

	// Invoke executes the tool with the given input.
	Invoke(ctx context.Context, input string) (string, error)
}

// ToolError is a failure reported by a tool's Invoke.
// The agent converts it to observation text; it never terminates a run.
type ToolError struct {
	// Tool is the name of the tool that failed.
	Tool string

	// Message describes the failure in terms the model can act on.
	Message string
}

func (e *ToolError) Error() string {
	if e.Tool == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Message)
}

// ToolFunc is a convenience type for creating tools from plain functions.
type ToolFunc struct {
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)
}

// NewToolFunc creates a new ToolFunc with the given name, description, and
// implementation.
func NewToolFunc(
	name, description string,
	fn func(ctx context.Context, input string) (string, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		fn:          fn,
	}
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Description returns a human-readable description for the model.
func (t *ToolFunc) Description() string {
	return t.description
}

// Invoke executes the tool function with the given input.
func (t *ToolFunc) Invoke(ctx context.Context, input string) (string, error) {
	return t.fn(ctx, input)
}

// Compile-time check that ToolFunc implements Tool.
var _ Tool = (*ToolFunc)(nil)
