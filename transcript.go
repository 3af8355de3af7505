package reagent

import "strings"

// StepKind identifies the kind of a transcript step.
type StepKind string

const (
	// StepThought records a model continuation that ended the run, or a
	// reasoning-only continuation.
	StepThought StepKind = "thought"

	// StepAction records the model continuation that requested a tool call.
	// The text is kept verbatim, so it carries the model's own
	// "Thought:"/"Action:"/"Action Input:" lines.
	StepAction StepKind = "action"

	// StepObservation records what the model sees next: a tool result, an
	// error explanation, or format-correction feedback.
	StepObservation StepKind = "observation"
)

// Step is one entry in a run's transcript.
type Step struct {
	Kind StepKind
	Text string
}

// Transcript is the append-only, ordered record of one run's steps.
//
// A transcript is owned by exactly one run: it is created empty when the run
// starts and returned on the [RunResult] when the run ends. Steps are never
// mutated or reordered once appended.
type Transcript struct {
	steps []Step
}

// NewTranscript creates a new empty Transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a step to the end of the transcript.
func (t *Transcript) Append(step Step) {
	t.steps = append(t.steps, step)
}

// Steps returns a copy of the recorded steps in order.
func (t *Transcript) Steps() []Step {
	result := make([]Step, len(t.steps))
	copy(result, t.steps)
	return result
}

// Len returns the number of recorded steps.
func (t *Transcript) Len() int {
	return len(t.steps)
}

// Observations returns the text of every observation step, in order.
func (t *Transcript) Observations() []string {
	var result []string
	for _, step := range t.steps {
		if step.Kind == StepObservation {
			result = append(result, step.Text)
		}
	}
	return result
}

// scratchpad renders the transcript into the ReAct scratchpad that follows
// the prompt's trailing "Thought:" marker.
//
// Action and thought steps hold the model's continuation verbatim, so the
// "Thought:"/"Action:"/"Action Input:" grouping is the model's own text.
// Each observation is framed as "Observation: ..." and reopens a "Thought:"
// line for the next continuation.
func (t *Transcript) scratchpad() string {
	var sb strings.Builder
	for _, step := range t.steps {
		switch step.Kind {
		case StepThought, StepAction:
			sb.WriteString(step.Text)
		case StepObservation:
			sb.WriteString("\nObservation: ")
			sb.WriteString(step.Text)
			sb.WriteString("\nThought:")
		}
	}
	return sb.String()
}
