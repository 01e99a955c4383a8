package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fosschat/internal/domain"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *Searcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("PINECONE_TEST_KEY", "secret")
	s, err := NewSearcher(Config{Host: srv.URL, APIKeyEnv: "PINECONE_TEST_KEY"})
	require.NoError(t, err)
	return s
}

func TestNewSearcherRequiresAPIKey(t *testing.T) {
	t.Setenv("PINECONE_TEST_MISSING", "")
	_, err := NewSearcher(Config{Host: "http://localhost", APIKeyEnv: "PINECONE_TEST_MISSING"})
	assert.Error(t, err)
}

func TestQueryFiltersBelowThreshold(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Api-Key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{"score": 0.91, "metadata": map[string]any{"text": "strong match", "source": "pdf"}},
				{"score": 0.55, "metadata": map[string]any{"text": "weak match"}},
				{"score": 0.75, "metadata": map[string]any{"source": "no-text"}},
			},
		})
	})

	got, err := s.Query(context.Background(), []float64{0.1}, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "strong match", got[0].Passage.Text)
	assert.Equal(t, "pdf", got[0].Passage.Source)
	assert.Equal(t, 0.91, got[0].Score)
}

func TestQueryServerError(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := s.Query(context.Background(), []float64{0.1}, 3)
	assert.Error(t, err)
}

func TestUpsertLengthMismatch(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {})
	err := s.Upsert(context.Background(), []domain.Passage{{Text: "a"}}, nil)
	assert.Error(t, err)
}

func TestUpsertSendsVectors(t *testing.T) {
	var body struct {
		Vectors []struct {
			ID       string         `json:"id"`
			Values   []float64      `json:"values"`
			Metadata map[string]any `json:"metadata"`
		} `json:"vectors"`
	}
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vectors/upsert", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	})

	passages := []domain.Passage{{Text: "hello", Source: "site", Category: "history", ChunkNumber: 2}}
	err := s.Upsert(context.Background(), passages, [][]float64{{0.5, 0.5}})
	require.NoError(t, err)
	require.Len(t, body.Vectors, 1)
	assert.Equal(t, "site_chunk_2", body.Vectors[0].ID)
	assert.Equal(t, "hello", body.Vectors[0].Metadata["text"])
	assert.Equal(t, "history", body.Vectors[0].Metadata["category"])
}
