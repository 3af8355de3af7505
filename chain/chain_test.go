package chain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/yadavanujkumar/reagent/internal/tt"
)

func TestExplainer_Explain(t *testing.T) {
	llm := tt.NewMockLLM().
		AddResponse("LangChain is a framework for building LLM applications.")

	explainer := NewExplainer(llm)

	answer, err := explainer.Explain(context.Background(), "What is LangChain?")
	require.NoError(t, err)
	assert.Equal(t, "LangChain is a framework for building LLM applications.", answer)

	// The rendered prompt must contain the question and the template framing.
	require.Equal(t, 1, llm.CallCount())
	require.Len(t, llm.CapturedMessages[0], 1)

	part, ok := llm.CapturedMessages[0][0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	assert.Contains(t, part.Text, "Question: What is LangChain?")
	assert.Contains(t, part.Text, "explains concepts clearly")
	assert.Contains(t, part.Text, "Let me explain this in simple terms.")
}

func TestExplainer_CustomTemplate(t *testing.T) {
	llm := tt.NewMockLLM().AddResponse("42")

	explainer := NewExplainerWithTemplate(llm, "Q: {{.question}}\nA:")

	answer, err := explainer.Explain(context.Background(), "meaning of life?")
	require.NoError(t, err)
	assert.Equal(t, "42", answer)

	part, ok := llm.CapturedMessages[0][0].Parts[0].(llms.TextContent)
	require.True(t, ok)
	tt.AssertTextEqual(t, "Q: meaning of life?\nA:", part.Text)
}

func TestExplainer_SequentialQuestions(t *testing.T) {
	llm := tt.NewMockLLM().
		AddResponse("first answer").
		AddResponse("second answer")

	explainer := NewExplainer(llm)

	first, err := explainer.Explain(context.Background(), "first?")
	require.NoError(t, err)
	assert.Equal(t, "first answer", first)

	second, err := explainer.Explain(context.Background(), "second?")
	require.NoError(t, err)
	assert.Equal(t, "second answer", second)

	assert.Equal(t, 2, llm.CallCount())
}
