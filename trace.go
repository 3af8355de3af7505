package reagent

import "time"

// TraceEvent is a marker interface for events recorded on a RunContext.
// Use a type switch to inspect concrete trace types.
type TraceEvent interface {
	traceEvent()
}

// BaseTrace contains fields common to all trace events.
type BaseTrace struct {
	// Timestamp is when the event was recorded.
	Timestamp time.Time

	// Iteration is the 1-indexed iteration the event belongs to.
	Iteration int
}

// IterationStartTrace is recorded at the top of each iteration.
type IterationStartTrace struct {
	BaseTrace
}

func (IterationStartTrace) traceEvent() {}

// IterationEndTrace is recorded when an iteration completes.
type IterationEndTrace struct {
	BaseTrace

	// Duration is how long the iteration took.
	Duration time.Duration

	// Decision is the kind of decision parsed this iteration.
	Decision DecisionKind
}

func (IterationEndTrace) traceEvent() {}

// ModelCallTrace is recorded for each completion call.
type ModelCallTrace struct {
	BaseTrace

	// Prompt is the exact prompt sent to the model.
	Prompt string

	// Response is the raw continuation (empty if the call failed).
	Response string

	// Duration is how long the call took.
	Duration time.Duration

	// Err is the call error, if any.
	Err error
}

func (ModelCallTrace) traceEvent() {}

// ToolCallTrace is recorded for each tool invocation.
type ToolCallTrace struct {
	BaseTrace

	// ToolName is the tool that was invoked.
	ToolName string

	// Input is the input passed to the tool.
	Input string

	// Output is the tool's return text (empty on error).
	Output string

	// Duration is how long the invocation took.
	Duration time.Duration

	// Err is the invocation error, if any.
	Err error
}

func (ToolCallTrace) traceEvent() {}

// ParseErrorTrace is recorded when a continuation could not be parsed.
type ParseErrorTrace struct {
	BaseTrace

	// Raw is the continuation that failed to parse.
	Raw string
}

func (ParseErrorTrace) traceEvent() {}
