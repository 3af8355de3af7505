package tt

import (
	"sync"

	"github.com/yadavanujkumar/reagent"
)

// RecordingHooks implements every hook interface and records the events it
// receives, in order.
type RecordingHooks struct {
	mu     sync.Mutex
	events []any
}

// NewRecordingHooks creates a new RecordingHooks.
func NewRecordingHooks() *RecordingHooks {
	return &RecordingHooks{}
}

// Events returns a copy of the recorded events in arrival order.
func (r *RecordingHooks) Events() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.events))
	copy(out, r.events)
	return out
}

// Names returns the recorded event type names in arrival order.
func (r *RecordingHooks) Names() []string {
	names := make([]string, 0, len(r.events))
	for _, event := range r.Events() {
		switch event.(type) {
		case reagent.BeforeRunEvent:
			names = append(names, "BeforeRun")
		case reagent.AfterRunEvent:
			names = append(names, "AfterRun")
		case reagent.BeforeIterationEvent:
			names = append(names, "BeforeIteration")
		case reagent.AfterIterationEvent:
			names = append(names, "AfterIteration")
		case reagent.BeforeModelCallEvent:
			names = append(names, "BeforeModelCall")
		case reagent.AfterModelCallEvent:
			names = append(names, "AfterModelCall")
		case reagent.BeforeToolCallEvent:
			names = append(names, "BeforeToolCall")
		case reagent.AfterToolCallEvent:
			names = append(names, "AfterToolCall")
		case reagent.ParseErrorEvent:
			names = append(names, "ParseError")
		}
	}
	return names
}

func (r *RecordingHooks) record(event any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *RecordingHooks) OnBeforeRun(_ *reagent.RunContext, event reagent.BeforeRunEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnAfterRun(_ *reagent.RunContext, event reagent.AfterRunEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnBeforeIteration(_ *reagent.RunContext, event reagent.BeforeIterationEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnAfterIteration(_ *reagent.RunContext, event reagent.AfterIterationEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnBeforeModelCall(_ *reagent.RunContext, event reagent.BeforeModelCallEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnAfterModelCall(_ *reagent.RunContext, event reagent.AfterModelCallEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnBeforeToolCall(_ *reagent.RunContext, event reagent.BeforeToolCallEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnAfterToolCall(_ *reagent.RunContext, event reagent.AfterToolCallEvent) {
	r.record(event)
}

func (r *RecordingHooks) OnParseError(_ *reagent.RunContext, event reagent.ParseErrorEvent) {
	r.record(event)
}

// Compile-time checks that RecordingHooks implements every hook interface.
var (
	_ reagent.BeforeRunHook       = (*RecordingHooks)(nil)
	_ reagent.AfterRunHook        = (*RecordingHooks)(nil)
	_ reagent.BeforeIterationHook = (*RecordingHooks)(nil)
	_ reagent.AfterIterationHook  = (*RecordingHooks)(nil)
	_ reagent.BeforeModelCallHook = (*RecordingHooks)(nil)
	_ reagent.AfterModelCallHook  = (*RecordingHooks)(nil)
	_ reagent.BeforeToolCallHook  = (*RecordingHooks)(nil)
	_ reagent.AfterToolCallHook   = (*RecordingHooks)(nil)
	_ reagent.ParseErrorHook      = (*RecordingHooks)(nil)
)
