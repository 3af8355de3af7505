package reagent

import "time"

// HookEvent is a marker interface for all hook events.
type HookEvent interface {
	hookEvent()
}

// BeforeRunEvent is emitted once before the first iteration begins.
type BeforeRunEvent struct {
	// Question is the question that started the run.
	Question string
}

func (BeforeRunEvent) hookEvent() {}

// AfterRunEvent is emitted once after the run terminates.
type AfterRunEvent struct {
	// Reason indicates why the run ended.
	Reason TerminationReason

	// Error is the terminal error if the run failed (nil on success).
	Error error
}

func (AfterRunEvent) hookEvent() {}

// BeforeIterationEvent is emitted at the start of each iteration.
type BeforeIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int
}

func (BeforeIterationEvent) hookEvent() {}

// AfterIterationEvent is emitted after each iteration completes.
type AfterIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int

	// Decision is the kind of decision parsed this iteration.
	Decision DecisionKind

	// Duration is how long the iteration took.
	Duration time.Duration
}

func (AfterIterationEvent) hookEvent() {}

// BeforeModelCallEvent is emitted before each completion call.
type BeforeModelCallEvent struct {
	// Prompt is the exact prompt being sent to the model.
	Prompt string
}

func (BeforeModelCallEvent) hookEvent() {}

// AfterModelCallEvent is emitted after each completion call.
type AfterModelCallEvent struct {
	// Prompt is the prompt that was sent.
	Prompt string

	// Response is the raw continuation (empty if the call failed).
	Response string

	// Duration is how long the call took.
	Duration time.Duration

	// Error is any error that occurred (nil if successful).
	Error error
}

func (AfterModelCallEvent) hookEvent() {}

// BeforeToolCallEvent is emitted before each tool invocation.
type BeforeToolCallEvent struct {
	// ToolName is the tool being invoked.
	ToolName string

	// Input is the input that will be passed to the tool.
	Input string
}

func (BeforeToolCallEvent) hookEvent() {}

// AfterToolCallEvent is emitted after each tool invocation.
type AfterToolCallEvent struct {
	// ToolName is the tool that was invoked.
	ToolName string

	// Input is the input that was passed to the tool.
	Input string

	// Output is the tool's return text (empty on error).
	Output string

	// Duration is how long the invocation took.
	Duration time.Duration

	// Error is any error that occurred (nil if successful).
	Error error
}

func (AfterToolCallEvent) hookEvent() {}

// ParseErrorEvent is emitted when a continuation could not be parsed.
type ParseErrorEvent struct {
	// Iteration is the iteration where parsing failed.
	Iteration int

	// Raw is the continuation that failed to parse.
	Raw string
}

func (ParseErrorEvent) hookEvent() {}
