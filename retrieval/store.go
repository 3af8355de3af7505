// Package retrieval implements document question answering: a corpus is
// split into chunks, embedded into an in-memory vector store, and queried
// through a retrieval QA chain that grounds the model's answer in the
// retrieved chunks.
package retrieval

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"
)

var (
	// ErrInvalidScoreThreshold is returned when a similarity search is
	// given a score threshold outside [0, 1].
	ErrInvalidScoreThreshold = errors.New("score threshold must be between 0 and 1")

	// ErrUnsupportedFilters is returned when a search passes filters,
	// which the in-memory store does not implement.
	ErrUnsupportedFilters = errors.New("in-memory store does not support filters")

	// ErrEmbedderMismatch is returned when a query vector's width does
	// not match the stored vectors, which happens when documents were
	// added with a different embedder.
	ErrEmbedderMismatch = errors.New("query vector size does not match stored vectors")
)

type storedDocument struct {
	id       string
	document schema.Document
	vector   []float32
}

// InMemory is a vector store held entirely in process memory. It is meant
// for small corpora and tests; similarity search scans every stored vector.
type InMemory struct {
	mu         sync.RWMutex
	embedder   embeddings.Embedder
	namespaces map[string][]storedDocument
	nextID     int
}

// NewInMemory creates an InMemory store using the given embedder for both
// documents and queries. A per-call embedder can still be supplied through
// vectorstores.WithEmbedder.
func NewInMemory(embedder embeddings.Embedder) *InMemory {
	return &InMemory{
		embedder:   embedder,
		namespaces: make(map[string][]storedDocument),
	}
}

// AddDocuments embeds the documents and stores them, returning one id per
// stored document in input order. Documents rejected by a configured
// deduplicater are skipped and get no id.
func (s *InMemory) AddDocuments(
	ctx context.Context,
	docs []schema.Document,
	options ...vectorstores.Option,
) ([]string, error) {
	opts := resolveOptions(options)

	kept := make([]schema.Document, 0, len(docs))
	for _, doc := range docs {
		if opts.Deduplicater != nil && opts.Deduplicater(ctx, doc) {
			continue
		}
		kept = append(kept, doc)
	}
	if len(kept) == 0 {
		return nil, nil
	}

	texts := make([]string, len(kept))
	for i, doc := range kept {
		texts[i] = doc.PageContent
	}

	embedder := s.embedder
	if opts.Embedder != nil {
		embedder = opts.Embedder
	}
	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(kept) {
		return nil, errors.New("embedder returned wrong number of vectors")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, len(kept))
	for i, doc := range kept {
		id := strconv.Itoa(s.nextID)
		s.nextID++
		ids[i] = id
		s.namespaces[opts.NameSpace] = append(s.namespaces[opts.NameSpace], storedDocument{
			id:       id,
			document: doc,
			vector:   vectors[i],
		})
	}
	return ids, nil
}

// SimilaritySearch returns up to numDocuments documents ranked by cosine
// similarity to the query, most similar first. Each returned document's
// Score is its similarity in [0, 1].
func (s *InMemory) SimilaritySearch(
	ctx context.Context,
	query string,
	numDocuments int,
	options ...vectorstores.Option,
) ([]schema.Document, error) {
	opts := resolveOptions(options)
	if opts.ScoreThreshold < 0 || opts.ScoreThreshold > 1 {
		return nil, ErrInvalidScoreThreshold
	}
	if opts.Filters != nil {
		return nil, ErrUnsupportedFilters
	}

	embedder := s.embedder
	if opts.Embedder != nil {
		embedder = opts.Embedder
	}
	queryVector, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	stored := s.namespaces[opts.NameSpace]
	scored := make([]schema.Document, 0, len(stored))
	for _, entry := range stored {
		if len(entry.vector) != len(queryVector) {
			s.mu.RUnlock()
			return nil, ErrEmbedderMismatch
		}
		score := cosineSimilarity(queryVector, entry.vector)
		if score < opts.ScoreThreshold {
			continue
		}
		doc := entry.document
		doc.Score = score
		scored = append(scored, doc)
	}
	s.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if numDocuments < len(scored) {
		scored = scored[:numDocuments]
	}
	return scored, nil
}

// Len returns the number of documents stored in the default namespace.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.namespaces[""])
}

func resolveOptions(options []vectorstores.Option) vectorstores.Options {
	opts := vectorstores.Options{}
	for _, opt := range options {
		opt(&opts)
	}
	return opts
}

// cosineSimilarity maps the cosine of the angle between a and b from
// [-1, 1] into [0, 1] so it can be compared against a score threshold.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cosine := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return float32((cosine + 1) / 2)
}

// Compile-time check that InMemory implements vectorstores.VectorStore.
var _ vectorstores.VectorStore = (*InMemory)(nil)
