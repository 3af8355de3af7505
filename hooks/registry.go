// Package hooks provides the standard dispatch registry for reagent
// lifecycle hooks.
//
// A hook is any value implementing one or more of the hook interfaces
// defined in the root package (reagent.BeforeRunHook,
// reagent.AfterToolCallHook, etc.). The Registry dispatches each event only
// to the hooks that implement the matching interface, in registration order.
//
//	registry := hooks.NewRegistry().
//	    Register(&LoggingHook{}).
//	    Register(&MetricsHook{})
//
//	agent := reagent.NewAgent(client).WithHooks(registry)
package hooks

import "github.com/yadavanujkumar/reagent"

// Registry stores hooks and dispatches events to them.
//
// # Thread Safety
//
// Registry is not synchronized. Register all hooks before starting runs.
// Fire methods are called by the Agent; hooks observing concurrent runs must
// themselves be safe for concurrent use.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a hook to the registry. The hook can implement any
// combination of hook interfaces. Returns the registry for chaining.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeRun dispatches a BeforeRunEvent.
func (r *Registry) FireBeforeRun(
	runCtx *reagent.RunContext,
	event reagent.BeforeRunEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.BeforeRunHook); ok {
			h.OnBeforeRun(runCtx, event)
		}
	}
}

// FireAfterRun dispatches an AfterRunEvent.
func (r *Registry) FireAfterRun(
	runCtx *reagent.RunContext,
	event reagent.AfterRunEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.AfterRunHook); ok {
			h.OnAfterRun(runCtx, event)
		}
	}
}

// FireBeforeIteration dispatches a BeforeIterationEvent.
func (r *Registry) FireBeforeIteration(
	runCtx *reagent.RunContext,
	event reagent.BeforeIterationEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.BeforeIterationHook); ok {
			h.OnBeforeIteration(runCtx, event)
		}
	}
}

// FireAfterIteration dispatches an AfterIterationEvent.
func (r *Registry) FireAfterIteration(
	runCtx *reagent.RunContext,
	event reagent.AfterIterationEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.AfterIterationHook); ok {
			h.OnAfterIteration(runCtx, event)
		}
	}
}

// FireBeforeModelCall dispatches a BeforeModelCallEvent.
func (r *Registry) FireBeforeModelCall(
	runCtx *reagent.RunContext,
	event reagent.BeforeModelCallEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.BeforeModelCallHook); ok {
			h.OnBeforeModelCall(runCtx, event)
		}
	}
}

// FireAfterModelCall dispatches an AfterModelCallEvent.
func (r *Registry) FireAfterModelCall(
	runCtx *reagent.RunContext,
	event reagent.AfterModelCallEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.AfterModelCallHook); ok {
			h.OnAfterModelCall(runCtx, event)
		}
	}
}

// FireBeforeToolCall dispatches a BeforeToolCallEvent.
func (r *Registry) FireBeforeToolCall(
	runCtx *reagent.RunContext,
	event reagent.BeforeToolCallEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.BeforeToolCallHook); ok {
			h.OnBeforeToolCall(runCtx, event)
		}
	}
}

// FireAfterToolCall dispatches an AfterToolCallEvent.
func (r *Registry) FireAfterToolCall(
	runCtx *reagent.RunContext,
	event reagent.AfterToolCallEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.AfterToolCallHook); ok {
			h.OnAfterToolCall(runCtx, event)
		}
	}
}

// FireParseError dispatches a ParseErrorEvent.
func (r *Registry) FireParseError(
	runCtx *reagent.RunContext,
	event reagent.ParseErrorEvent,
) {
	for _, hook := range r.hooks {
		if h, ok := hook.(reagent.ParseErrorHook); ok {
			h.OnParseError(runCtx, event)
		}
	}
}

// Compile-time check that Registry implements reagent.HookFirer.
var _ reagent.HookFirer = (*Registry)(nil)
