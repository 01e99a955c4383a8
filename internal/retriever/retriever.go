// Package retriever implements the deterministic lexical ranking strategies
// used to select knowledge-base passages for a question. Both strategies are
// pure functions of their inputs; equal scores preserve store order.
package retriever

import (
	"fmt"
	"sort"

	"fosschat/internal/domain"
)

// Strategy names accepted by New.
const (
	StrategyKeyword    = "keyword"
	StrategyOccurrence = "occurrence"
)

// New returns the named ranking strategy. An empty name selects keyword.
func New(strategy string) (domain.Ranker, error) {
	switch strategy {
	case StrategyKeyword, "":
		return NewKeywordRanker(), nil
	case StrategyOccurrence:
		return NewOccurrenceRanker(), nil
	default:
		return nil, fmt.Errorf("unknown retriever strategy: %s", strategy)
	}
}

// sortAndClamp orders candidates by score descending, keeping store order on
// ties, and truncates to topK.
func sortAndClamp(candidates []domain.ScoredPassage, topK int) []domain.ScoredPassage {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if topK < 0 {
		topK = 0
	}
	if topK > len(candidates) {
		topK = len(candidates)
	}
	return candidates[:topK]
}
