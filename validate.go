package reagent

// AnswerValidator inspects a final answer before the run accepts it.
//
// A rejected answer does not terminate the run: the feedback becomes an
// observation step, the iteration is consumed, and the model gets another
// chance to answer, bounded by the iteration limit as usual.
//
// See the schema subpackage for a JSON Schema backed implementation.
type AnswerValidator interface {
	// Name identifies the validator in stats and feedback.
	Name() string

	// Validate checks the answer and returns the verdict.
	Validate(runCtx *RunContext, answer string) *ValidationResult
}

// ValidationResult is the verdict of an AnswerValidator.
type ValidationResult struct {
	// Accepted reports whether the answer passed validation.
	Accepted bool

	// Feedback explains the rejection in terms the model can act on.
	// Only meaningful when Accepted is false.
	Feedback string
}
