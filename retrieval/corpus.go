package retrieval

import (
	"fmt"
	"io"
	"os"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
	"gopkg.in/yaml.v3"
)

// Default chunking parameters for SplitCorpus.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
)

// corpusFile is the YAML shape of a corpus file:
//
//	documents:
//	  - content: |
//	      ...
//	    metadata:
//	      source: intro
//	      topic: overview
type corpusFile struct {
	Documents []corpusDocument `yaml:"documents"`
}

type corpusDocument struct {
	Content  string         `yaml:"content"`
	Metadata map[string]any `yaml:"metadata"`
}

// LoadCorpus reads a YAML corpus from r.
func LoadCorpus(r io.Reader) ([]schema.Document, error) {
	var file corpusFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	if len(file.Documents) == 0 {
		return nil, fmt.Errorf("corpus contains no documents")
	}

	docs := make([]schema.Document, len(file.Documents))
	for i, entry := range file.Documents {
		if entry.Content == "" {
			return nil, fmt.Errorf("corpus document %d has no content", i)
		}
		docs[i] = schema.Document{
			PageContent: entry.Content,
			Metadata:    entry.Metadata,
		}
	}
	return docs, nil
}

// LoadCorpusFile reads a YAML corpus from the given path.
func LoadCorpusFile(path string) ([]schema.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return LoadCorpus(f)
}

// SplitCorpus splits documents into chunks suitable for embedding.
// Metadata is carried onto every chunk of a document.
func SplitCorpus(docs []schema.Document, chunkSize, chunkOverlap int) ([]schema.Document, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)
	return textsplitter.SplitDocuments(splitter, docs)
}
