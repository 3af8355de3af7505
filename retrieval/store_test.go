package retrieval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"

	"github.com/yadavanujkumar/reagent/internal/tt"
)

func testDocuments() []schema.Document {
	return []schema.Document{
		{
			PageContent: "Memory in LangChain persists state between chain calls, useful for chatbots.",
			Metadata:    map[string]any{"topic": "memory"},
		},
		{
			PageContent: "Agents use LLMs to decide which actions to take and which tools to invoke.",
			Metadata:    map[string]any{"topic": "agents"},
		},
		{
			PageContent: "Vector stores hold embeddings of text and enable similarity search over documents.",
			Metadata:    map[string]any{"topic": "vectorstores"},
		},
	}
}

func TestInMemory_AddDocuments(t *testing.T) {
	store := NewInMemory(tt.NewMockEmbedder())

	ids, err := store.AddDocuments(context.Background(), testDocuments())
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1", "2"}, ids)
	assert.Equal(t, 3, store.Len())
}

func TestInMemory_SimilaritySearch(t *testing.T) {
	store := NewInMemory(tt.NewMockEmbedder())
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, testDocuments())
	require.NoError(t, err)

	results, err := store.SimilaritySearch(ctx,
		"embeddings and similarity search over documents", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// The vector store chunk shares the most words with the query.
	assert.Equal(t, "vectorstores", results[0].Metadata["topic"])

	// Results come back most similar first with scores attached.
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
	assert.Greater(t, results[0].Score, float32(0))
}

func TestInMemory_SimilaritySearch_NumDocumentsCapped(t *testing.T) {
	store := NewInMemory(tt.NewMockEmbedder())
	ctx := context.Background()

	_, err := store.AddDocuments(ctx, testDocuments())
	require.NoError(t, err)

	results, err := store.SimilaritySearch(ctx, "anything", 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestInMemory_SimilaritySearch_ScoreThreshold(t *testing.T) {
	type input struct {
		threshold float32
	}

	type expected struct {
		err error
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "valid threshold",
			input:    input{threshold: 0.5},
			expected: expected{},
		},
		{
			name:     "negative threshold",
			input:    input{threshold: -0.1},
			expected: expected{err: ErrInvalidScoreThreshold},
		},
		{
			name:     "threshold above one",
			input:    input{threshold: 1.5},
			expected: expected{err: ErrInvalidScoreThreshold},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := NewInMemory(tt.NewMockEmbedder())
			ctx := context.Background()

			_, err := store.AddDocuments(ctx, testDocuments())
			require.NoError(t, err)

			results, err := store.SimilaritySearch(ctx, "similarity search", 3,
				vectorstores.WithScoreThreshold(tc.input.threshold))

			if tc.expected.err != nil {
				require.ErrorIs(t, err, tc.expected.err)
				return
			}

			require.NoError(t, err)
			for _, doc := range results {
				assert.GreaterOrEqual(t, doc.Score, tc.input.threshold)
			}
		})
	}
}

func TestInMemory_SimilaritySearch_FiltersUnsupported(t *testing.T) {
	store := NewInMemory(tt.NewMockEmbedder())

	_, err := store.SimilaritySearch(context.Background(), "query", 1,
		vectorstores.WithFilters(map[string]string{"topic": "memory"}))
	require.ErrorIs(t, err, ErrUnsupportedFilters)
}

func TestInMemory_Namespaces(t *testing.T) {
	store := NewInMemory(tt.NewMockEmbedder())
	ctx := context.Background()

	_, err := store.AddDocuments(ctx,
		[]schema.Document{{PageContent: "alpha document"}},
		vectorstores.WithNameSpace("a"))
	require.NoError(t, err)

	_, err = store.AddDocuments(ctx,
		[]schema.Document{{PageContent: "beta document"}},
		vectorstores.WithNameSpace("b"))
	require.NoError(t, err)

	results, err := store.SimilaritySearch(ctx, "document", 10,
		vectorstores.WithNameSpace("a"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "alpha document", results[0].PageContent)

	// The default namespace holds nothing.
	results, err = store.SimilaritySearch(ctx, "document", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInMemory_Deduplicater(t *testing.T) {
	store := NewInMemory(tt.NewMockEmbedder())
	ctx := context.Background()

	ids, err := store.AddDocuments(ctx, testDocuments(),
		vectorstores.WithDeduplicater(func(_ context.Context, doc schema.Document) bool {
			return doc.Metadata["topic"] == "agents"
		}))
	require.NoError(t, err)

	assert.Len(t, ids, 2)
	assert.Equal(t, 2, store.Len())
}
