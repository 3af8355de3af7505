package reagent

// Hook interfaces. A hook implements any combination of these; the hooks
// subpackage's Registry dispatches each event only to the hooks that
// implement the matching interface.
//
// Hooks are the library's observability surface: logging, metrics, and
// debugging attach here instead of a logger wired through the core.

// BeforeRunHook receives BeforeRunEvent.
type BeforeRunHook interface {
	OnBeforeRun(runCtx *RunContext, event BeforeRunEvent)
}

// AfterRunHook receives AfterRunEvent.
type AfterRunHook interface {
	OnAfterRun(runCtx *RunContext, event AfterRunEvent)
}

// BeforeIterationHook receives BeforeIterationEvent.
type BeforeIterationHook interface {
	OnBeforeIteration(runCtx *RunContext, event BeforeIterationEvent)
}

// AfterIterationHook receives AfterIterationEvent.
type AfterIterationHook interface {
	OnAfterIteration(runCtx *RunContext, event AfterIterationEvent)
}

// BeforeModelCallHook receives BeforeModelCallEvent.
type BeforeModelCallHook interface {
	OnBeforeModelCall(runCtx *RunContext, event BeforeModelCallEvent)
}

// AfterModelCallHook receives AfterModelCallEvent.
type AfterModelCallHook interface {
	OnAfterModelCall(runCtx *RunContext, event AfterModelCallEvent)
}

// BeforeToolCallHook receives BeforeToolCallEvent.
type BeforeToolCallHook interface {
	OnBeforeToolCall(runCtx *RunContext, event BeforeToolCallEvent)
}

// AfterToolCallHook receives AfterToolCallEvent.
type AfterToolCallHook interface {
	OnAfterToolCall(runCtx *RunContext, event AfterToolCallEvent)
}

// ParseErrorHook receives ParseErrorEvent.
type ParseErrorHook interface {
	OnParseError(runCtx *RunContext, event ParseErrorEvent)
}

// HookFirer dispatches hook events to registered hooks. The hooks
// subpackage's Registry is the standard implementation; the interface lives
// here so the Agent can fire events without importing it.
type HookFirer interface {
	FireBeforeRun(runCtx *RunContext, event BeforeRunEvent)
	FireAfterRun(runCtx *RunContext, event AfterRunEvent)
	FireBeforeIteration(runCtx *RunContext, event BeforeIterationEvent)
	FireAfterIteration(runCtx *RunContext, event AfterIterationEvent)
	FireBeforeModelCall(runCtx *RunContext, event BeforeModelCallEvent)
	FireAfterModelCall(runCtx *RunContext, event AfterModelCallEvent)
	FireBeforeToolCall(runCtx *RunContext, event BeforeToolCallEvent)
	FireAfterToolCall(runCtx *RunContext, event AfterToolCallEvent)
	FireParseError(runCtx *RunContext, event ParseErrorEvent)
}
