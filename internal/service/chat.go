package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"fosschat/internal/domain"
	"fosschat/internal/knowledge"
	"fosschat/internal/shortcut"
)

// ErrEmptyQuestion is returned when a request carries no question text.
var ErrEmptyQuestion = errors.New("empty question")

// Fixed user-facing fallback strings. External failures never leak past
// these.
const (
	fallbackMessage = "I help with FOSS-CIT info. Ask about activities, team, or contact details."
	apologyMessage  = "Sorry, I couldn't process that question right now."
)

// maxContextPassages caps how many deduplicated passages feed generation.
const maxContextPassages = 3

// Retrieval method labels reported in replies.
const (
	MethodShortcut = "shortcut"
	MethodVector   = "vector"
	MethodLocal    = "local"
	MethodNone     = "none"
)

// Reply is the outcome of answering one question.
type Reply struct {
	Answer  string
	Sources int
	Method  string
}

// Health is a snapshot of the service state for the health endpoint.
type Health struct {
	Chunks       int
	VectorSearch bool
	Strategy     string
}

// ChatService answers questions: shortcut table first, then retrieval over
// the read-only knowledge store, then generation. Generator, embedder and
// vector searcher are optional; the service degrades through them in order.
type ChatService struct {
	store     *knowledge.Store
	ranker    domain.Ranker
	shortcuts *shortcut.Table
	generator domain.Generator
	embedder  domain.Embedder
	vectors   domain.VectorSearcher
	topK      int
	logger    *zap.SugaredLogger
}

// Option configures optional collaborators of the ChatService.
type Option func(*ChatService)

// WithGenerator wires the text-generation client.
func WithGenerator(g domain.Generator) Option {
	return func(s *ChatService) { s.generator = g }
}

// WithVectorSearch wires the hosted vector index and the embedder that
// produces query vectors for it. Both are required for the vector path.
func WithVectorSearch(e domain.Embedder, v domain.VectorSearcher) Option {
	return func(s *ChatService) { s.embedder = e; s.vectors = v }
}

// NewChatService assembles the application core.
func NewChatService(store *knowledge.Store, ranker domain.Ranker, shortcuts *shortcut.Table, topK int, logger *zap.SugaredLogger, opts ...Option) *ChatService {
	if topK <= 0 {
		topK = 3
	}
	s := &ChatService{
		store:     store,
		ranker:    ranker,
		shortcuts: shortcuts,
		topK:      topK,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer resolves one question. Only an empty question yields an error;
// every external failure degrades to a fixed message instead.
func (s *ChatService) Answer(ctx context.Context, question string) (Reply, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return Reply{}, ErrEmptyQuestion
	}

	if answer, ok := s.shortcuts.Lookup(q); ok {
		return Reply{Answer: answer, Method: MethodShortcut}, nil
	}

	passages, method := s.gatherContext(ctx, q)
	if len(passages) == 0 {
		return Reply{Answer: fallbackMessage, Method: MethodNone}, nil
	}

	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Passage.Text
	}
	contextText := strings.Join(texts, " ")

	if s.generator == nil {
		// Reduced functionality without a generation key: surface the
		// best-ranked passage directly.
		return Reply{Answer: texts[0], Sources: len(passages), Method: method}, nil
	}

	answer, err := s.generator.Generate(ctx, q, contextText)
	if err != nil {
		s.logger.Errorw("generation failed", "error", err)
		return Reply{Answer: apologyMessage, Sources: len(passages), Method: method}, nil
	}
	return Reply{Answer: answer, Sources: len(passages), Method: method}, nil
}

// gatherContext collects up to maxContextPassages deduplicated passages.
// The hosted vector index is tried first when wired; on error or a thin
// result the local ranker extends the set.
func (s *ChatService) gatherContext(ctx context.Context, question string) ([]domain.ScoredPassage, string) {
	var collected []domain.ScoredPassage
	method := MethodLocal

	if s.embedder != nil && s.vectors != nil {
		results, err := s.vectorSearch(ctx, question)
		if err != nil {
			s.logger.Warnw("vector search unavailable", "error", err)
		} else {
			collected = results
			method = MethodVector
		}
	}
	if len(collected) < 2 {
		collected = append(collected, s.ranker.Rank(question, s.store.Passages(), s.topK)...)
	}

	seen := make(map[string]struct{}, len(collected))
	unique := collected[:0]
	for _, sp := range collected {
		if _, ok := seen[sp.Passage.Text]; ok {
			continue
		}
		seen[sp.Passage.Text] = struct{}{}
		unique = append(unique, sp)
		if len(unique) == maxContextPassages {
			break
		}
	}
	return unique, method
}

func (s *ChatService) vectorSearch(ctx context.Context, question string) ([]domain.ScoredPassage, error) {
	vec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, err
	}
	return s.vectors.Query(ctx, vec, s.topK)
}

// Health reports the state surfaced by the health endpoint.
func (s *ChatService) Health() Health {
	return Health{
		Chunks:       s.store.Len(),
		VectorSearch: s.embedder != nil && s.vectors != nil,
		Strategy:     s.ranker.Name(),
	}
}
