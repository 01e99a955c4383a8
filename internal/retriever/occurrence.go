package retriever

import (
	"strings"
	"unicode/utf8"

	"fosschat/internal/domain"
)

// occurrence scoring skips words this short or shorter.
const minOccurrenceWordLen = 2

// OccurrenceRanker scores passages by weighted substring occurrence:
// every query word longer than two characters contributes its occurrence
// count in the passage text multiplied by its length. No stop-word removal
// and no bonuses; used as the fallback when hosted vector search is
// unavailable or comes back thin.
type OccurrenceRanker struct{}

func NewOccurrenceRanker() *OccurrenceRanker { return &OccurrenceRanker{} }

func (r *OccurrenceRanker) Name() string { return StrategyOccurrence }

func (r *OccurrenceRanker) Rank(query string, passages []domain.Passage, topK int) []domain.ScoredPassage {
	words := strings.Fields(strings.ToLower(query))

	var candidates []domain.ScoredPassage
	for _, p := range passages {
		textLower := strings.ToLower(p.Text)
		score := 0
		for _, w := range words {
			n := utf8.RuneCountInString(w)
			if n <= minOccurrenceWordLen {
				continue
			}
			score += strings.Count(textLower, w) * n
		}
		if score > 0 {
			candidates = append(candidates, domain.ScoredPassage{Passage: p, Score: float64(score)})
		}
	}
	return sortAndClamp(candidates, topK)
}
