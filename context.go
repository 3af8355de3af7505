package reagent

import (
	"sync"
	"time"
)

// RunContext is the per-run record passed to hooks and returned on RunResult.
// It holds the append-only trace log, aggregated stats, and the termination
// record for exactly one Agent.Run invocation.
//
// The Agent writes to the RunContext from its single loop goroutine; reads
// are safe from any goroutine (e.g. a hook inspecting stats mid-run).
type RunContext struct {
	mu sync.RWMutex

	// Run name (e.g. "main", "demo"), for callers that observe several
	// concurrent runs through shared hooks.
	name string

	iteration int
	events    []TraceEvent
	stats     RunStats

	startTime time.Time
	endTime   time.Time

	reason TerminationReason
	answer string
	err    error
}

// RunStats contains aggregate metrics auto-updated from trace events.
type RunStats struct {
	// Iterations is the number of iterations consumed so far.
	Iterations int

	// ModelCalls is the number of completion calls made.
	ModelCalls int

	// ToolCalls is the number of tool invocations attempted.
	ToolCalls int

	// ToolCallsByName counts invocations per tool name.
	ToolCallsByName map[string]int

	// ToolErrors is the number of tool invocations that failed.
	ToolErrors int

	// UnknownTools is the number of invocations naming an unregistered tool.
	UnknownTools int

	// ParseErrors is the number of malformed continuations.
	ParseErrors int

	// AnswersRejected is the number of final answers rejected by a validator.
	AnswersRejected int
}

// NewRunContext creates a new RunContext with the given name.
func NewRunContext(name string) *RunContext {
	return &RunContext{
		name:      name,
		startTime: time.Now(),
		stats: RunStats{
			ToolCallsByName: make(map[string]int),
		},
	}
}

// Name returns the run name.
func (rc *RunContext) Name() string {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.name
}

// Iteration returns the current iteration number (1-indexed).
// Returns 0 if no iteration has started.
func (rc *RunContext) Iteration() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.iteration
}

// StartIteration begins a new iteration, recording an IterationStartTrace.
// Called by the Agent at the top of each iteration.
func (rc *RunContext) StartIteration() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.iteration++
	rc.stats.Iterations = rc.iteration
	rc.events = append(rc.events, IterationStartTrace{
		BaseTrace: rc.baseTraceLocked(),
	})
}

// EndIteration completes the current iteration, recording an IterationEndTrace.
func (rc *RunContext) EndIteration(decision DecisionKind, duration time.Duration) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.events = append(rc.events, IterationEndTrace{
		BaseTrace: rc.baseTraceLocked(),
		Duration:  duration,
		Decision:  decision,
	})
}

// Trace records a trace event and auto-updates stats based on its type.
func (rc *RunContext) Trace(event TraceEvent) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	switch e := event.(type) {
	case ModelCallTrace:
		rc.stats.ModelCalls++
		if e.Timestamp.IsZero() {
			e.BaseTrace = rc.baseTraceLocked()
		}
		event = e
	case ToolCallTrace:
		rc.stats.ToolCalls++
		if e.ToolName != "" {
			rc.stats.ToolCallsByName[e.ToolName]++
		}
		if e.Err != nil {
			rc.stats.ToolErrors++
		}
		if e.Timestamp.IsZero() {
			e.BaseTrace = rc.baseTraceLocked()
		}
		event = e
	case ParseErrorTrace:
		rc.stats.ParseErrors++
		if e.Timestamp.IsZero() {
			e.BaseTrace = rc.baseTraceLocked()
		}
		event = e
	}

	rc.events = append(rc.events, event)
}

// recordUnknownTool bumps the unknown-tool counter.
func (rc *RunContext) recordUnknownTool() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.stats.UnknownTools++
}

// recordAnswerRejected bumps the rejected-answer counter.
func (rc *RunContext) recordAnswerRejected() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.stats.AnswersRejected++
}

// baseTraceLocked creates a BaseTrace for the current position.
// Must be called with the lock held.
func (rc *RunContext) baseTraceLocked() BaseTrace {
	return BaseTrace{
		Timestamp: time.Now(),
		Iteration: rc.iteration,
	}
}

// Events returns a copy of all recorded trace events.
func (rc *RunContext) Events() []TraceEvent {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	result := make([]TraceEvent, len(rc.events))
	copy(result, rc.events)
	return result
}

// Stats returns a copy of the aggregated stats.
func (rc *RunContext) Stats() RunStats {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	stats := rc.stats
	stats.ToolCallsByName = make(map[string]int, len(rc.stats.ToolCallsByName))
	for k, v := range rc.stats.ToolCallsByName {
		stats.ToolCallsByName[k] = v
	}
	return stats
}

// setTermination records why and how the run ended.
func (rc *RunContext) setTermination(reason TerminationReason, answer string, err error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.reason = reason
	rc.answer = answer
	rc.err = err
	rc.endTime = time.Now()
}

// TerminationReason returns why the run ended (empty while running).
func (rc *RunContext) TerminationReason() TerminationReason {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.reason
}

// Err returns the terminal error, if the run failed.
func (rc *RunContext) Err() error {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.err
}

// StartTime returns when the run began.
func (rc *RunContext) StartTime() time.Time {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.startTime
}

// Duration returns the total run duration, or the elapsed time if the run is
// still in progress.
func (rc *RunContext) Duration() time.Duration {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	if rc.endTime.IsZero() {
		return time.Since(rc.startTime)
	}
	return rc.endTime.Sub(rc.startTime)
}
