package domain

import "context"

// SourceUnknown is the provenance tag for passages loaded without one.
const SourceUnknown = "unknown"

// Passage is a single retrievable unit of the knowledge base.
// Text is immutable once loaded; the store is read-only at request time.
type Passage struct {
	Text        string `json:"text"`
	Source      string `json:"source,omitempty"`
	Category    string `json:"category,omitempty"`
	ChunkNumber int    `json:"chunk_number,omitempty"`
	ChunkSize   int    `json:"chunk_size,omitempty"`
}

// ScoredPassage is a passage with a relevance score attached.
type ScoredPassage struct {
	Passage Passage
	Score   float64
}

// Ranker scores passages against a query and returns the best topK,
// highest score first. Implementations must be pure and deterministic:
// equal scores keep the original passage order.
type Ranker interface {
	Name() string
	Rank(query string, passages []Passage, topK int) []ScoredPassage
}

// Generator produces a short answer to a question given retrieved context.
type Generator interface {
	Generate(ctx context.Context, question, context string) (string, error)
}

// Embedder converts free text into a numeric vector via a remote service.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// VectorSearcher queries a hosted vector index for similar passages.
type VectorSearcher interface {
	Query(ctx context.Context, vector []float64, topK int) ([]ScoredPassage, error)
	Upsert(ctx context.Context, passages []Passage, vectors [][]float64) error
}
