package reagent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ----------------------------------------------------------------------------
// Scripted CompletionClient
// ----------------------------------------------------------------------------

type scriptedClient struct {
	responses []string
	errors    []error
	callCount int

	capturedPrompts []string
}

func newScriptedClient(responses ...string) *scriptedClient {
	return &scriptedClient{responses: responses}
}

func (c *scriptedClient) withErrors(errs ...error) *scriptedClient {
	c.errors = errs
	return c
}

func (c *scriptedClient) Complete(_ context.Context, prompt string) (string, error) {
	idx := c.callCount
	c.callCount++
	c.capturedPrompts = append(c.capturedPrompts, prompt)

	if idx < len(c.errors) && c.errors[idx] != nil {
		return "", c.errors[idx]
	}
	if idx < len(c.responses) {
		return c.responses[idx], nil
	}
	return "", nil
}

// ----------------------------------------------------------------------------
// Recording HookFirer
// ----------------------------------------------------------------------------

type hookRecorder struct {
	fired []string
}

func (h *hookRecorder) FireBeforeRun(_ *RunContext, _ BeforeRunEvent) {
	h.fired = append(h.fired, "BeforeRun")
}

func (h *hookRecorder) FireAfterRun(_ *RunContext, _ AfterRunEvent) {
	h.fired = append(h.fired, "AfterRun")
}

func (h *hookRecorder) FireBeforeIteration(_ *RunContext, _ BeforeIterationEvent) {
	h.fired = append(h.fired, "BeforeIteration")
}

func (h *hookRecorder) FireAfterIteration(_ *RunContext, _ AfterIterationEvent) {
	h.fired = append(h.fired, "AfterIteration")
}

func (h *hookRecorder) FireBeforeModelCall(_ *RunContext, _ BeforeModelCallEvent) {
	h.fired = append(h.fired, "BeforeModelCall")
}

func (h *hookRecorder) FireAfterModelCall(_ *RunContext, _ AfterModelCallEvent) {
	h.fired = append(h.fired, "AfterModelCall")
}

func (h *hookRecorder) FireBeforeToolCall(_ *RunContext, _ BeforeToolCallEvent) {
	h.fired = append(h.fired, "BeforeToolCall")
}

func (h *hookRecorder) FireAfterToolCall(_ *RunContext, _ AfterToolCallEvent) {
	h.fired = append(h.fired, "AfterToolCall")
}

func (h *hookRecorder) FireParseError(_ *RunContext, _ ParseErrorEvent) {
	h.fired = append(h.fired, "ParseError")
}

var _ HookFirer = (*hookRecorder)(nil)

// ----------------------------------------------------------------------------
// Test tools and validators
// ----------------------------------------------------------------------------

func fixedTool(name, output string) *ToolFunc {
	return NewToolFunc(name, "returns a fixed output",
		func(_ context.Context, _ string) (string, error) {
			return output, nil
		})
}

func failingTool(name string, err error) *ToolFunc {
	return NewToolFunc(name, "always fails",
		func(_ context.Context, _ string) (string, error) {
			return "", err
		})
}

type scriptedValidator struct {
	verdicts []*ValidationResult
	called   int
}

func (v *scriptedValidator) Name() string { return "scripted" }

func (v *scriptedValidator) Validate(_ *RunContext, _ string) *ValidationResult {
	idx := v.called
	v.called++
	if idx < len(v.verdicts) {
		return v.verdicts[idx]
	}
	return &ValidationResult{Accepted: true}
}

// ----------------------------------------------------------------------------
// Agent tests
// ----------------------------------------------------------------------------

func TestAgent_Run_ImmediateFinalAnswer(t *testing.T) {
	client := newScriptedClient(" I can answer directly.\nFinal Answer: Paris")
	agent := NewAgent(client)

	result := agent.Run(context.Background(), "Capital of France?")

	require.False(t, result.Failed())
	assert.Equal(t, "Paris", result.Answer)
	assert.Equal(t, TerminationSuccess, result.Reason)
	assert.NoError(t, result.Err)
	assert.Equal(t, 1, client.callCount)

	// The terminating continuation lands in the transcript as a thought.
	steps := result.Transcript.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, StepThought, steps[0].Kind)
}

func TestAgent_Run_ToolCallThenFinalAnswer(t *testing.T) {
	client := newScriptedClient(
		" I need to calculate this.\nAction: Calculator\nAction Input: 2 + 2",
		" I now know the final answer.\nFinal Answer: 4",
	)
	registry := NewRegistry().
		MustRegister(fixedTool("Calculator", "The result of 2 + 2 is 4"))
	agent := NewAgent(client).WithRegistry(registry)

	result := agent.Run(context.Background(), "What is 2 + 2?")

	require.False(t, result.Failed())
	assert.Equal(t, "4", result.Answer)
	assert.Equal(t, 2, client.callCount)

	steps := result.Transcript.Steps()
	require.Len(t, steps, 3)
	assert.Equal(t, StepAction, steps[0].Kind)
	assert.Equal(t, StepObservation, steps[1].Kind)
	assert.Equal(t, "The result of 2 + 2 is 4", steps[1].Text)
	assert.Equal(t, StepThought, steps[2].Kind)

	stats := result.Run.Stats()
	assert.Equal(t, 2, stats.ModelCalls)
	assert.Equal(t, 1, stats.ToolCalls)
	assert.Equal(t, 1, stats.ToolCallsByName["Calculator"])
}

func TestAgent_Run_ObservationIsVerbatimToolOutput(t *testing.T) {
	output := "  raw output\nwith newlines and trailing space  "
	client := newScriptedClient(
		"Action: echo\nAction Input: x",
		"Final Answer: done",
	)
	registry := NewRegistry().MustRegister(fixedTool("echo", output))
	agent := NewAgent(client).WithRegistry(registry)

	result := agent.Run(context.Background(), "q")

	require.False(t, result.Failed())
	assert.Equal(t, []string{output}, result.Transcript.Observations())
}

func TestAgent_Run_PromptCarriesPreviousObservation(t *testing.T) {
	client := newScriptedClient(
		" step one.\nAction: echo\nAction Input: x",
		"Final Answer: done",
	)
	registry := NewRegistry().MustRegister(fixedTool("echo", "observation text"))
	agent := NewAgent(client).WithRegistry(registry)

	result := agent.Run(context.Background(), "q")
	require.False(t, result.Failed())

	require.Len(t, client.capturedPrompts, 2)
	assert.NotContains(t, client.capturedPrompts[0], "observation text")
	assert.Contains(t, client.capturedPrompts[1],
		"Observation: observation text\nThought:")
	assert.True(t, strings.HasSuffix(client.capturedPrompts[1], "Thought:"))
}

func TestAgent_Run_IterationLimit(t *testing.T) {
	// Every continuation is malformed, so the run burns its whole budget.
	client := newScriptedClient("garbage", "garbage", "garbage", "garbage")
	agent := NewAgent(client).WithMaxIterations(3)

	result := agent.Run(context.Background(), "q")

	require.True(t, result.Failed())
	assert.Equal(t, TerminationIterationLimit, result.Reason)
	assert.ErrorIs(t, result.Err, ErrIterationLimit)

	// Three iterations ran, each leaving format feedback behind.
	assert.Equal(t, 3, client.callCount)
	assert.Len(t, result.Transcript.Observations(), 3)
	assert.Equal(t, 3, result.Run.Stats().ParseErrors)
}

func TestAgent_Run_ModelCallsNeverExceedBudget(t *testing.T) {
	client := newScriptedClient()
	agent := NewAgent(client).WithMaxIterations(2)

	result := agent.Run(context.Background(), "q")

	require.True(t, result.Failed())
	assert.Equal(t, 2, client.callCount)
}

func TestAgent_Run_UnknownToolRecovers(t *testing.T) {
	client := newScriptedClient(
		"Action: Search\nAction Input: weather",
		"Final Answer: I cannot search.",
	)
	registry := NewRegistry().
		MustRegister(fixedTool("Calculator", "ok")).
		MustRegister(fixedTool("CurrentTime", "ok"))
	agent := NewAgent(client).WithRegistry(registry)

	result := agent.Run(context.Background(), "q")

	require.False(t, result.Failed())
	assert.Equal(t, "I cannot search.", result.Answer)

	observations := result.Transcript.Observations()
	require.Len(t, observations, 1)
	assert.Equal(t,
		"Error: unknown tool 'Search'. Available tools: [Calculator, CurrentTime]",
		observations[0])
	assert.Equal(t, 1, result.Run.Stats().UnknownTools)
}

func TestAgent_Run_ToolErrorRecovers(t *testing.T) {
	client := newScriptedClient(
		"Action: Calculator\nAction Input: 1 / 0",
		"Final Answer: Division by zero is undefined.",
	)
	toolErr := &ToolError{Tool: "Calculator", Message: "division by zero"}
	registry := NewRegistry().MustRegister(failingTool("Calculator", toolErr))
	agent := NewAgent(client).WithRegistry(registry)

	result := agent.Run(context.Background(), "What is 1 / 0?")

	require.False(t, result.Failed())
	assert.Equal(t, "Division by zero is undefined.", result.Answer)

	observations := result.Transcript.Observations()
	require.Len(t, observations, 1)
	assert.Equal(t, "Error: Calculator: division by zero", observations[0])

	stats := result.Run.Stats()
	assert.Equal(t, 1, stats.ToolErrors)
	assert.Equal(t, 1, stats.ToolCalls)
}

func TestAgent_Run_ClientErrorIsFatal(t *testing.T) {
	cause := errors.New("connection refused")
	client := newScriptedClient("").withErrors(cause)
	agent := NewAgent(client)

	result := agent.Run(context.Background(), "q")

	require.True(t, result.Failed())
	assert.Equal(t, TerminationClientError, result.Reason)
	assert.ErrorIs(t, result.Err, cause)
	assert.Equal(t, 1, client.callCount)
}

func TestAgent_Run_MalformedWithRecoveryDisabled(t *testing.T) {
	client := newScriptedClient("not a valid continuation")
	agent := NewAgent(client).WithParseErrorRecovery(false)

	result := agent.Run(context.Background(), "q")

	require.True(t, result.Failed())
	assert.Equal(t, TerminationUnparsable, result.Reason)
	assert.ErrorIs(t, result.Err, ErrUnparsableOutput)
	assert.Equal(t, 1, client.callCount)
	assert.Equal(t, 0, result.Transcript.Len())
}

func TestAgent_Run_MalformedFeedbackObservation(t *testing.T) {
	client := newScriptedClient("garbage", "Final Answer: recovered")
	agent := NewAgent(client)

	result := agent.Run(context.Background(), "q")

	require.False(t, result.Failed())
	assert.Equal(t, "recovered", result.Answer)

	observations := result.Transcript.Observations()
	require.Len(t, observations, 1)
	assert.Contains(t, observations[0], "could not be parsed")
	assert.Contains(t, observations[0], "Action Input:")
	assert.Contains(t, observations[0], "Final Answer:")

	// The corrective feedback reaches the model in the next prompt.
	require.Len(t, client.capturedPrompts, 2)
	assert.Contains(t, client.capturedPrompts[1], "could not be parsed")
}

func TestAgent_Run_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newScriptedClient("Final Answer: never reached")
	agent := NewAgent(client)

	result := agent.Run(ctx, "q")

	require.True(t, result.Failed())
	assert.Equal(t, TerminationCanceled, result.Reason)
	assert.ErrorIs(t, result.Err, context.Canceled)
	assert.Equal(t, 0, client.callCount)
}

func TestAgent_Run_ValidatorRejectsThenAccepts(t *testing.T) {
	client := newScriptedClient(
		"Final Answer: first attempt",
		"Final Answer: second attempt",
	)
	validator := &scriptedValidator{verdicts: []*ValidationResult{
		{Accepted: false, Feedback: "answer must mention the year"},
		{Accepted: true},
	}}
	agent := NewAgent(client).WithValidator(validator)

	result := agent.Run(context.Background(), "q")

	require.False(t, result.Failed())
	assert.Equal(t, "second attempt", result.Answer)
	assert.Equal(t, 2, validator.called)

	observations := result.Transcript.Observations()
	require.Len(t, observations, 1)
	assert.Contains(t, observations[0], "rejected by scripted")
	assert.Contains(t, observations[0], "answer must mention the year")
	assert.Equal(t, 1, result.Run.Stats().AnswersRejected)
}

func TestAgent_Run_ValidatorRejectionConsumesBudget(t *testing.T) {
	client := newScriptedClient(
		"Final Answer: a",
		"Final Answer: b",
		"Final Answer: c",
	)
	validator := &scriptedValidator{verdicts: []*ValidationResult{
		{Accepted: false, Feedback: "no"},
		{Accepted: false, Feedback: "still no"},
	}}
	agent := NewAgent(client).WithValidator(validator).WithMaxIterations(2)

	result := agent.Run(context.Background(), "q")

	require.True(t, result.Failed())
	assert.Equal(t, TerminationIterationLimit, result.Reason)
	assert.Equal(t, 2, client.callCount)
}

func TestAgent_Run_FiresHooksInOrder(t *testing.T) {
	recorder := &hookRecorder{}
	client := newScriptedClient(
		"Action: echo\nAction Input: x",
		"Final Answer: done",
	)
	registry := NewRegistry().MustRegister(fixedTool("echo", "out"))
	agent := NewAgent(client).WithRegistry(registry).WithHooks(recorder)

	result := agent.Run(context.Background(), "q")
	require.False(t, result.Failed())

	assert.Equal(t, []string{
		"BeforeRun",
		"BeforeIteration", "BeforeModelCall", "AfterModelCall",
		"BeforeToolCall", "AfterToolCall", "AfterIteration",
		"BeforeIteration", "BeforeModelCall", "AfterModelCall", "AfterIteration",
		"AfterRun",
	}, recorder.fired)
}

func TestAgent_Run_FiresParseErrorHook(t *testing.T) {
	recorder := &hookRecorder{}
	client := newScriptedClient("garbage", "Final Answer: ok")
	agent := NewAgent(client).WithHooks(recorder)

	result := agent.Run(context.Background(), "q")
	require.False(t, result.Failed())

	assert.Contains(t, recorder.fired, "ParseError")
}

func TestAgent_Run_RecordsTermination(t *testing.T) {
	client := newScriptedClient("Final Answer: done")
	agent := NewAgent(client).WithName("demo")

	result := agent.Run(context.Background(), "q")

	assert.Equal(t, "demo", result.Run.Name())
	assert.Equal(t, TerminationSuccess, result.Run.TerminationReason())
	assert.NoError(t, result.Run.Err())
	assert.GreaterOrEqual(t, result.Run.Duration().Nanoseconds(), int64(0))
}

func TestAgent_WithMaxIterations_IgnoresInvalid(t *testing.T) {
	client := newScriptedClient()
	agent := NewAgent(client).WithMaxIterations(0).WithMaxIterations(-3)

	result := agent.Run(context.Background(), "q")

	// The default budget still applies.
	require.True(t, result.Failed())
	assert.Equal(t, DefaultMaxIterations, client.callCount)
}

func TestAgent_Run_TracesModelAndToolCalls(t *testing.T) {
	client := newScriptedClient(
		"Action: echo\nAction Input: in",
		"Final Answer: done",
	)
	registry := NewRegistry().MustRegister(fixedTool("echo", "out"))
	agent := NewAgent(client).WithRegistry(registry)

	result := agent.Run(context.Background(), "q")
	require.False(t, result.Failed())

	var modelCalls, toolCalls int
	for _, event := range result.Run.Events() {
		switch e := event.(type) {
		case ModelCallTrace:
			modelCalls++
			assert.NotEmpty(t, e.Prompt)
		case ToolCallTrace:
			toolCalls++
			assert.Equal(t, "echo", e.ToolName)
			assert.Equal(t, "in", e.Input)
			assert.Equal(t, "out", e.Output)
		}
	}
	assert.Equal(t, 2, modelCalls)
	assert.Equal(t, 1, toolCalls)
}
