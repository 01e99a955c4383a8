// Package pinecone is a minimal REST client for a hosted Pinecone index.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"fosschat/internal/domain"
)

// Searcher queries and populates one Pinecone index over its REST API.
// Matches scoring below the similarity threshold are discarded.
type Searcher struct {
	host      string
	apiKey    string
	threshold float64
	client    *http.Client
}

// Config configures the Pinecone client. Host is the index endpoint URL.
type Config struct {
	Host      string
	APIKeyEnv string
	Threshold float64
	Timeout   time.Duration
}

// NewSearcher creates the client. A missing API key is a configuration
// error so callers can degrade to local retrieval.
func NewSearcher(cfg Config) (*Searcher, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	threshold := cfg.Threshold
	if threshold == 0 {
		threshold = 0.6
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Searcher{
		host:      cfg.Host,
		apiKey:    key,
		threshold: threshold,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Query returns up to topK passages similar to the given vector, best
// first, dropping anything under the similarity threshold.
func (s *Searcher) Query(ctx context.Context, vector []float64, topK int) ([]domain.ScoredPassage, error) {
	if topK <= 0 {
		topK = 3
	}
	req := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
	}
	var resp struct {
		Matches []struct {
			Score    float64        `json:"score"`
			Metadata map[string]any `json:"metadata"`
		} `json:"matches"`
	}
	if err := s.postJSON(ctx, s.host+"/query", req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.ScoredPassage, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if m.Score <= s.threshold {
			continue
		}
		p := domain.Passage{Source: domain.SourceUnknown}
		if v, ok := m.Metadata["text"].(string); ok {
			p.Text = v
		}
		if v, ok := m.Metadata["source"].(string); ok {
			p.Source = v
		}
		if v, ok := m.Metadata["category"].(string); ok {
			p.Category = v
		}
		if p.Text == "" {
			continue
		}
		results = append(results, domain.ScoredPassage{Passage: p, Score: m.Score})
	}
	return results, nil
}

// Upsert writes passages and their vectors into the index. Vector IDs are
// derived from source and chunk number.
func (s *Searcher) Upsert(ctx context.Context, passages []domain.Passage, vectors [][]float64) error {
	if len(passages) != len(vectors) {
		return fmt.Errorf("passages and vectors length mismatch: %d != %d", len(passages), len(vectors))
	}
	points := make([]map[string]any, len(passages))
	for i, p := range passages {
		meta := map[string]any{"text": p.Text, "source": p.Source}
		if p.Category != "" {
			meta["category"] = p.Category
		}
		points[i] = map[string]any{
			"id":       fmt.Sprintf("%s_chunk_%d", p.Source, p.ChunkNumber),
			"values":   vectors[i],
			"metadata": meta,
		}
	}
	return s.postJSON(ctx, s.host+"/vectors/upsert", map[string]any{"vectors": points}, nil)
}

func (s *Searcher) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("pinecone POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
