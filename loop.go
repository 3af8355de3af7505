package reagent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TerminationReason indicates why a run ended.
type TerminationReason string

const (
	// TerminationSuccess means the model produced an accepted final answer.
	TerminationSuccess TerminationReason = "success"

	// TerminationIterationLimit means the run consumed its iteration budget.
	TerminationIterationLimit TerminationReason = "iteration_limit"

	// TerminationClientError means the completion client failed.
	TerminationClientError TerminationReason = "client_error"

	// TerminationUnparsable means the model output could not be parsed and
	// parse-error recovery is disabled.
	TerminationUnparsable TerminationReason = "unparsable_output"

	// TerminationCanceled means the caller's context was canceled between
	// iterations.
	TerminationCanceled TerminationReason = "canceled"

	// TerminationError means the run failed before reaching the model,
	// e.g. the prompt template could not be rendered.
	TerminationError TerminationReason = "error"
)

var (
	// ErrIterationLimit is the terminal error for TerminationIterationLimit.
	ErrIterationLimit = errors.New("iteration limit exceeded")

	// ErrUnparsableOutput is the terminal error for TerminationUnparsable.
	ErrUnparsableOutput = errors.New("unparsable model output")
)

// DefaultMaxIterations bounds a run when WithMaxIterations is not called.
const DefaultMaxIterations = 5

// malformedObservation is the feedback fed to the model when its continuation
// matched neither the Action nor the Final Answer convention.
const malformedObservation = "Your response could not be parsed. " +
	"Use exactly one of the following formats:\n\n" +
	"Action: <one of the available tool names>\n" +
	"Action Input: <the input to the tool>\n\n" +
	"or\n\n" +
	"Final Answer: <your final answer to the original question>"

// RunResult is the outcome of one Agent.Run invocation.
type RunResult struct {
	// Answer is the accepted final answer. Only set on TerminationSuccess.
	Answer string

	// Reason indicates why the run ended.
	Reason TerminationReason

	// Err is the terminal error (nil on TerminationSuccess).
	Err error

	// Transcript is the full transcript accumulated by the run, including
	// on failure, so the caller keeps the diagnostic context.
	Transcript *Transcript

	// Run carries the run's trace events and aggregated stats.
	Run *RunContext
}

// Failed reports whether the run ended without an accepted answer.
func (r *RunResult) Failed() bool {
	return r.Reason != TerminationSuccess
}

// Agent runs the bounded ReAct loop against a CompletionClient.
//
// One Agent is configured once and may then serve many runs, concurrently:
// every run owns its own Transcript and RunContext, and the registry and
// prompt builder are read-only during runs. Each run itself is strictly
// sequential: the completion call, the parse, and the tool invocation of an
// iteration complete before the next prompt is rendered.
//
// Defaults:
//   - Registry: empty NewRegistry()
//   - PromptBuilder: NewPromptBuilder()
//   - MaxIterations: DefaultMaxIterations
//   - ParseErrorRecovery: enabled
type Agent struct {
	client             CompletionClient
	registry           *Registry
	builder            *PromptBuilder
	validator          AnswerValidator
	hooks              HookFirer
	name               string
	maxIterations      int
	recoverParseErrors bool
}

// NewAgent creates a new Agent with the given completion client and default
// settings.
func NewAgent(client CompletionClient) *Agent {
	return &Agent{
		client:             client,
		registry:           NewRegistry(),
		builder:            NewPromptBuilder(),
		name:               "main",
		maxIterations:      DefaultMaxIterations,
		recoverParseErrors: true,
	}
}

// WithRegistry sets the tool registry.
func (a *Agent) WithRegistry(registry *Registry) *Agent {
	a.registry = registry
	return a
}

// WithPromptBuilder sets the prompt builder.
func (a *Agent) WithPromptBuilder(builder *PromptBuilder) *Agent {
	a.builder = builder
	return a
}

// WithMaxIterations sets the iteration budget. This is the safety bound
// against infinite tool-calling loops driven by a misbehaving model.
// Values below 1 are ignored.
func (a *Agent) WithMaxIterations(n int) *Agent {
	if n >= 1 {
		a.maxIterations = n
	}
	return a
}

// WithParseErrorRecovery controls how malformed model output is handled.
// When enabled (the default), the run feeds format-correction feedback back
// to the model and continues; when disabled, the run fails immediately with
// TerminationUnparsable.
func (a *Agent) WithParseErrorRecovery(enabled bool) *Agent {
	a.recoverParseErrors = enabled
	return a
}

// WithValidator sets an AnswerValidator to run on final answers before the
// run accepts them. Rejected answers become observation feedback.
func (a *Agent) WithValidator(v AnswerValidator) *Agent {
	a.validator = v
	return a
}

// WithHooks sets the hook firer that receives lifecycle events.
// Use hooks.NewRegistry() from the hooks subpackage.
func (a *Agent) WithHooks(h HookFirer) *Agent {
	a.hooks = h
	return a
}

// WithName sets the run name recorded on each RunContext.
func (a *Agent) WithName(name string) *Agent {
	a.name = name
	return a
}

// Run executes the loop for the given question until it terminates.
//
// Per iteration:
//  1. Fail with TerminationIterationLimit once the budget is consumed, or
//     TerminationCanceled if ctx was canceled since the last iteration.
//  2. Render the prompt and obtain a continuation from the client. A client
//     failure is fatal (TerminationClientError) and is not retried here.
//  3. Parse the continuation.
//     Final answer: validate if a validator is set, then terminate.
//     Tool invocation: resolve and invoke the tool; unknown tools and tool
//     failures become error observations and the run continues.
//     Malformed: feed format feedback back, or fail when recovery is off.
//
// Run never panics on model misbehavior; every outcome is representable in
// the returned RunResult, which always carries the transcript accumulated so
// far.
func (a *Agent) Run(ctx context.Context, question string) *RunResult {
	transcript := NewTranscript()
	runCtx := NewRunContext(a.name)

	if a.hooks != nil {
		a.hooks.FireBeforeRun(runCtx, BeforeRunEvent{Question: question})
	}

	result := a.run(ctx, question, transcript, runCtx)

	runCtx.setTermination(result.Reason, result.Answer, result.Err)
	if a.hooks != nil {
		a.hooks.FireAfterRun(runCtx, AfterRunEvent{
			Reason: result.Reason,
			Error:  result.Err,
		})
	}
	return result
}

func (a *Agent) run(
	ctx context.Context,
	question string,
	transcript *Transcript,
	runCtx *RunContext,
) *RunResult {
	consumed := 0

	for {
		if consumed >= a.maxIterations {
			return a.fail(transcript, runCtx, TerminationIterationLimit,
				fmt.Errorf("%w after %d iterations", ErrIterationLimit, consumed))
		}
		if err := ctx.Err(); err != nil {
			return a.fail(transcript, runCtx, TerminationCanceled, err)
		}

		runCtx.StartIteration()
		iterStart := time.Now()

		if a.hooks != nil {
			a.hooks.FireBeforeIteration(runCtx, BeforeIterationEvent{
				Iteration: runCtx.Iteration(),
			})
		}

		prompt, err := a.builder.Render(question, a.registry, transcript)
		if err != nil {
			return a.fail(transcript, runCtx, TerminationError, err)
		}

		raw, err := a.complete(ctx, runCtx, prompt)
		if err != nil {
			return a.fail(transcript, runCtx, TerminationClientError,
				fmt.Errorf("completion client: %w", err))
		}

		decision := ParseDecision(raw)

		switch decision.Kind {
		case DecisionFinal:
			if a.validator != nil {
				verdict := a.validator.Validate(runCtx, decision.Answer)
				if verdict != nil && !verdict.Accepted {
					runCtx.recordAnswerRejected()
					transcript.Append(Step{
						Kind: StepObservation,
						Text: rejectionObservation(a.validator.Name(), verdict.Feedback),
					})
					consumed++
					a.endIteration(runCtx, decision.Kind, iterStart)
					continue
				}
			}
			transcript.Append(Step{Kind: StepThought, Text: strings.TrimSpace(raw)})
			a.endIteration(runCtx, decision.Kind, iterStart)
			return &RunResult{
				Answer:     decision.Answer,
				Reason:     TerminationSuccess,
				Transcript: transcript,
				Run:        runCtx,
			}

		case DecisionInvoke:
			transcript.Append(Step{Kind: StepAction, Text: strings.TrimSpace(raw)})
			observation := a.invokeTool(ctx, runCtx, decision)
			transcript.Append(Step{Kind: StepObservation, Text: observation})
			consumed++
			a.endIteration(runCtx, decision.Kind, iterStart)

		case DecisionMalformed:
			runCtx.Trace(ParseErrorTrace{Raw: raw})
			if a.hooks != nil {
				a.hooks.FireParseError(runCtx, ParseErrorEvent{
					Iteration: runCtx.Iteration(),
					Raw:       raw,
				})
			}
			if !a.recoverParseErrors {
				a.endIteration(runCtx, decision.Kind, iterStart)
				return a.fail(transcript, runCtx, TerminationUnparsable,
					ErrUnparsableOutput)
			}
			transcript.Append(Step{Kind: StepObservation, Text: malformedObservation})
			consumed++
			a.endIteration(runCtx, decision.Kind, iterStart)
		}
	}
}

// complete calls the completion client, firing hooks and recording the trace.
func (a *Agent) complete(
	ctx context.Context,
	runCtx *RunContext,
	prompt string,
) (string, error) {
	if a.hooks != nil {
		a.hooks.FireBeforeModelCall(runCtx, BeforeModelCallEvent{Prompt: prompt})
	}

	start := time.Now()
	raw, err := a.client.Complete(ctx, prompt)
	duration := time.Since(start)

	runCtx.Trace(ModelCallTrace{
		Prompt:   prompt,
		Response: raw,
		Duration: duration,
		Err:      err,
	})
	if a.hooks != nil {
		a.hooks.FireAfterModelCall(runCtx, AfterModelCallEvent{
			Prompt:   prompt,
			Response: raw,
			Duration: duration,
			Error:    err,
		})
	}
	return raw, err
}

// invokeTool resolves and executes the requested tool, converting every
// failure mode into observation text so the model can self-correct.
func (a *Agent) invokeTool(
	ctx context.Context,
	runCtx *RunContext,
	decision Decision,
) string {
	tool, err := a.registry.Lookup(decision.ToolName)
	if err != nil {
		runCtx.recordUnknownTool()
		return fmt.Sprintf("Error: unknown tool '%s'. Available tools: [%s]",
			decision.ToolName, strings.Join(a.registry.Names(), ", "))
	}

	if a.hooks != nil {
		a.hooks.FireBeforeToolCall(runCtx, BeforeToolCallEvent{
			ToolName: decision.ToolName,
			Input:    decision.ToolInput,
		})
	}

	start := time.Now()
	output, err := tool.Invoke(ctx, decision.ToolInput)
	duration := time.Since(start)

	runCtx.Trace(ToolCallTrace{
		ToolName: decision.ToolName,
		Input:    decision.ToolInput,
		Output:   output,
		Duration: duration,
		Err:      err,
	})
	if a.hooks != nil {
		a.hooks.FireAfterToolCall(runCtx, AfterToolCallEvent{
			ToolName: decision.ToolName,
			Input:    decision.ToolInput,
			Output:   output,
			Duration: duration,
			Error:    err,
		})
	}

	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return output
}

func (a *Agent) endIteration(runCtx *RunContext, kind DecisionKind, start time.Time) {
	runCtx.EndIteration(kind, time.Since(start))
	if a.hooks != nil {
		a.hooks.FireAfterIteration(runCtx, AfterIterationEvent{
			Iteration: runCtx.Iteration(),
			Decision:  kind,
			Duration:  time.Since(start),
		})
	}
}

func (a *Agent) fail(
	transcript *Transcript,
	runCtx *RunContext,
	reason TerminationReason,
	err error,
) *RunResult {
	return &RunResult{
		Reason:     reason,
		Err:        err,
		Transcript: transcript,
		Run:        runCtx,
	}
}

// rejectionObservation frames validator feedback for the model.
func rejectionObservation(validatorName, feedback string) string {
	return fmt.Sprintf("Your final answer was rejected by %s: %s\n"+
		"Revise your answer and respond again using the Final Answer format.",
		validatorName, feedback)
}
