package retrieval

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

// DefaultNumDocuments is how many chunks a QA retrieves per question.
const DefaultNumDocuments = 2

// Answer is a grounded answer with the chunks it was based on.
type Answer struct {
	// Text is the model's answer.
	Text string

	// Sources are the retrieved chunks the answer was grounded in,
	// most similar first.
	Sources []schema.Document
}

// QA answers questions over a vector store by stuffing the most similar
// chunks into the model's prompt.
type QA struct {
	model        llms.Model
	store        vectorstores.VectorStore
	numDocuments int
}

// NewQA creates a QA over the given model and store.
func NewQA(model llms.Model, store vectorstores.VectorStore) *QA {
	return &QA{
		model:        model,
		store:        store,
		numDocuments: DefaultNumDocuments,
	}
}

// WithNumDocuments sets how many chunks are retrieved per question.
// Values below 1 are ignored.
func (q *QA) WithNumDocuments(n int) *QA {
	if n >= 1 {
		q.numDocuments = n
	}
	return q
}

// Ask retrieves the most similar chunks for the question and returns the
// model's answer grounded in them.
func (q *QA) Ask(ctx context.Context, question string) (*Answer, error) {
	chain := chains.NewRetrievalQAFromLLM(
		q.model,
		vectorstores.ToRetriever(q.store, q.numDocuments),
	)
	chain.ReturnSourceDocuments = true

	result, err := chains.Call(ctx, chain, map[string]any{
		"query": question,
	})
	if err != nil {
		return nil, fmt.Errorf("retrieval QA: %w", err)
	}

	text, ok := result["text"].(string)
	if !ok {
		return nil, fmt.Errorf("retrieval QA returned no answer text")
	}

	answer := &Answer{Text: text}
	if sources, ok := result["source_documents"].([]schema.Document); ok {
		answer.Sources = sources
	}
	return answer, nil
}
