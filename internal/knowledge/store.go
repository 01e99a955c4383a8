package knowledge

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"fosschat/internal/domain"
)

// Store is the read-only in-memory collection of passages. It is populated
// once at startup and never mutated while requests are served, so it needs
// no locking.
type Store struct {
	passages []domain.Passage
}

// NewStore wraps an already-loaded passage slice.
func NewStore(passages []domain.Passage) *Store {
	return &Store{passages: passages}
}

// Load reads a JSON array of passages from path and returns a store.
// It fails softly: a missing or malformed file yields an empty store and a
// warning, never an error — the process must start regardless.
func Load(path string, logger *zap.SugaredLogger) *Store {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warnw("knowledge base not loaded", "path", path, "error", err)
		return &Store{}
	}
	var raw []domain.Passage
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warnw("knowledge base is not valid JSON", "path", path, "error", err)
		return &Store{}
	}
	passages := make([]domain.Passage, 0, len(raw))
	for _, p := range raw {
		if p.Text == "" {
			continue
		}
		if p.Source == "" {
			p.Source = domain.SourceUnknown
		}
		passages = append(passages, p)
	}
	logger.Infow("knowledge base loaded", "path", path, "chunks", len(passages))
	return &Store{passages: passages}
}

// Passages returns the loaded passages in file order.
func (s *Store) Passages() []domain.Passage { return s.passages }

// Len reports the number of loaded passages.
func (s *Store) Len() int { return len(s.passages) }
