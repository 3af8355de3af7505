package reagent

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateTool is returned when registering a tool whose name is
	// already present in the registry.
	ErrDuplicateTool = errors.New("duplicate tool name")

	// ErrUnknownTool is returned by Lookup for names with no registered tool.
	ErrUnknownTool = errors.New("unknown tool")
)

// Registry maps tool names to tools and preserves registration order.
//
// Registration order only affects how the tool catalogue is rendered into the
// prompt, never correctness.
//
// # Thread Safety
//
// Registry is not synchronized. Register all tools before starting runs;
// after that the registry is read-only and can be shared across concurrent
// [Agent.Run] calls.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry.
// Returns ErrDuplicateTool if a tool with the same name is already present.
func (r *Registry) Register(tool Tool) error {
	name := tool.Name()
	if _, ok := r.tools[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// MustRegister is like Register but panics on error.
// Returns the registry for chaining:
//
//	registry := reagent.NewRegistry().
//	    MustRegister(tools.NewCalculator()).
//	    MustRegister(tools.NewWordCounter())
func (r *Registry) MustRegister(tool Tool) *Registry {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the tool registered under name.
// Returns ErrUnknownTool if no such tool exists.
func (r *Registry) Lookup(name string) (Tool, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return tool, nil
}

// Tools returns all registered tools in registration order.
func (r *Registry) Tools() []Tool {
	result := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.tools[name])
	}
	return result
}

// Names returns all registered tool names in registration order.
func (r *Registry) Names() []string {
	result := make([]string, len(r.order))
	copy(result, r.order)
	return result
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
