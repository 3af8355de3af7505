// Package tt contains shared test mocks and assertion helpers.
package tt

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"

	"github.com/yadavanujkumar/reagent"
)

// -----------------------------------------------------------------------------
// MockClient - implements reagent.CompletionClient
// -----------------------------------------------------------------------------

// MockClient is a scripted CompletionClient. Responses and errors are
// consumed in order; once the script runs out, Complete returns "".
type MockClient struct {
	responses []string
	errors    []error
	callCount int

	// CapturedPrompts stores the prompt passed to each Complete call.
	CapturedPrompts []string
}

// NewMockClient creates a MockClient with no scripted responses.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// AddResponse queues a response for the next unscripted call.
func (m *MockClient) AddResponse(response string) *MockClient {
	// Pad errors so responses and errors stay index-aligned.
	for len(m.errors) < len(m.responses) {
		m.errors = append(m.errors, nil)
	}
	m.responses = append(m.responses, response)
	return m
}

// AddError queues an error for the next unscripted call.
func (m *MockClient) AddError(err error) *MockClient {
	for len(m.responses) < len(m.errors) {
		m.responses = append(m.responses, "")
	}
	m.responses = append(m.responses, "")
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times Complete has been called.
func (m *MockClient) CallCount() int {
	return m.callCount
}

// Complete implements reagent.CompletionClient.
func (m *MockClient) Complete(_ context.Context, prompt string) (string, error) {
	idx := m.callCount
	m.callCount++
	m.CapturedPrompts = append(m.CapturedPrompts, prompt)

	if idx < len(m.errors) && m.errors[idx] != nil {
		return "", m.errors[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	return "", nil
}

// Compile-time check that MockClient implements CompletionClient.
var _ reagent.CompletionClient = (*MockClient)(nil)

// -----------------------------------------------------------------------------
// MockLLM - implements llms.Model
// -----------------------------------------------------------------------------

// MockLLM is a scripted llms.Model for chain and retrieval tests.
type MockLLM struct {
	responses []string
	errors    []error
	callCount int

	// CapturedMessages stores the messages passed to each
	// GenerateContent call.
	CapturedMessages [][]llms.MessageContent

	// CapturedOptions stores the resolved call options of each call,
	// so tests can assert on stop words and similar settings.
	CapturedOptions []llms.CallOptions
}

// NewMockLLM creates a MockLLM with no scripted responses.
func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// AddResponse queues a response for the next unscripted call.
func (m *MockLLM) AddResponse(response string) *MockLLM {
	for len(m.errors) < len(m.responses) {
		m.errors = append(m.errors, nil)
	}
	m.responses = append(m.responses, response)
	return m
}

// AddError queues an error for the next unscripted call.
func (m *MockLLM) AddError(err error) *MockLLM {
	for len(m.responses) < len(m.errors) {
		m.responses = append(m.responses, "")
	}
	m.responses = append(m.responses, "")
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times GenerateContent has been called.
func (m *MockLLM) CallCount() int {
	return m.callCount
}

// GenerateContent implements llms.Model.
func (m *MockLLM) GenerateContent(
	_ context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	idx := m.callCount
	m.callCount++
	m.CapturedMessages = append(m.CapturedMessages, messages)

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	m.CapturedOptions = append(m.CapturedOptions, opts)

	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}

	content := ""
	if idx < len(m.responses) {
		content = m.responses[idx]
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}, nil
}

// Call implements the deprecated single-prompt path of llms.Model.
func (m *MockLLM) Call(
	ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	resp, err := m.GenerateContent(
		ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		options...,
	)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

// Compile-time check that MockLLM implements llms.Model.
var _ llms.Model = (*MockLLM)(nil)

// -----------------------------------------------------------------------------
// MockEmbedder - implements embeddings.Embedder
// -----------------------------------------------------------------------------

// embeddingDim is the vector width produced by MockEmbedder.
const embeddingDim = 64

// MockEmbedder produces deterministic vectors by hashing words into buckets.
// Texts that share words produce similar vectors, so cosine similarity
// behaves plausibly in tests without a real embedding model.
type MockEmbedder struct{}

// NewMockEmbedder creates a new MockEmbedder.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedDocuments implements embeddings.Embedder.
func (m *MockEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = embedText(text)
	}
	return vectors, nil
}

// EmbedQuery implements embeddings.Embedder.
func (m *MockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return embedText(text), nil
}

func embedText(text string) []float32 {
	vector := make([]float32, embeddingDim)
	word := make([]byte, 0, 16)

	flush := func() {
		if len(word) == 0 {
			return
		}
		h := fnv.New32a()
		h.Write(word)
		vector[h.Sum32()%embeddingDim]++
		word = word[:0]
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			word = append(word, c+('a'-'A'))
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			word = append(word, c)
		default:
			flush()
		}
	}
	flush()

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vector {
			vector[i] *= scale
		}
	}
	return vector
}

// Compile-time check that MockEmbedder implements embeddings.Embedder.
var _ embeddings.Embedder = (*MockEmbedder)(nil)
