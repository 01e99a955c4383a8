package retriever

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"fosschat/internal/domain"
)

// Bonus points applied on top of the word-overlap base score.
const (
	exactPhraseBonus = 15
	longPassageBonus = 2
	longPassageChars = 100
	minKeywordScore  = 1
)

// categoryRule boosts passages whose category tag matches an intent
// detected in the query. Rules are mutually exclusive and evaluated in
// order: only the first rule with a trigger hit is applied.
type categoryRule struct {
	triggers   []string
	categories []string
	bonus      int
}

var categoryRules = []categoryRule{
	{
		triggers:   []string{"founded", "started", "history", "began", "founder", "initiated", "establish"},
		categories: []string{"history", "founders"},
		bonus:      15,
	},
	{
		triggers:   []string{"mission", "purpose", "goal"},
		categories: []string{"mission"},
		bonus:      10,
	},
	{
		triggers:   []string{"team", "members", "people"},
		categories: []string{"team"},
		bonus:      10,
	},
	{
		triggers:   []string{"activities", "events", "programs"},
		categories: []string{"activities"},
		bonus:      10,
	},
	{
		triggers:   []string{"contact", "email", "location"},
		categories: []string{"contact", "location"},
		bonus:      10,
	},
}

var wordRe = regexp.MustCompile(`\w+`)

// stopwords removed from query tokens before overlap scoring.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// KeywordRanker scores passages by distinct query-word overlap with fixed
// bonuses for exact phrase matches, matching category tags and passage
// length. Passages scoring below 1 are discarded.
type KeywordRanker struct{}

func NewKeywordRanker() *KeywordRanker { return &KeywordRanker{} }

func (r *KeywordRanker) Name() string { return StrategyKeyword }

func (r *KeywordRanker) Rank(query string, passages []domain.Passage, topK int) []domain.ScoredPassage {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	queryWords := tokenSet(queryLower)
	for w := range stopwords {
		delete(queryWords, w)
	}
	if len(queryWords) == 0 {
		return nil
	}

	rule := matchCategoryRule(queryLower)

	var candidates []domain.ScoredPassage
	for _, p := range passages {
		textLower := strings.ToLower(p.Text)
		textWords := tokenSet(textLower)

		score := 0
		for w := range queryWords {
			if _, ok := textWords[w]; ok {
				score++
			}
		}
		if strings.Contains(textLower, queryLower) {
			score += exactPhraseBonus
		}
		if rule != nil && categoryMatches(rule, p.Category) {
			score += rule.bonus
		}
		if utf8.RuneCountInString(p.Text) > longPassageChars {
			score += longPassageBonus
		}
		if score >= minKeywordScore {
			candidates = append(candidates, domain.ScoredPassage{Passage: p, Score: float64(score)})
		}
	}
	return sortAndClamp(candidates, topK)
}

// matchCategoryRule returns the first rule with a trigger occurring in the
// lowercased query, or nil. Triggers are substring matches, mirroring the
// query-intent detection this scoring scheme is defined with.
func matchCategoryRule(queryLower string) *categoryRule {
	for i := range categoryRules {
		for _, t := range categoryRules[i].triggers {
			if strings.Contains(queryLower, t) {
				return &categoryRules[i]
			}
		}
	}
	return nil
}

func categoryMatches(rule *categoryRule, category string) bool {
	for _, c := range rule.categories {
		if category == c {
			return true
		}
	}
	return false
}

// tokenSet extracts the distinct word tokens (\w+ semantics) of an
// already-lowercased string.
func tokenSet(lower string) map[string]struct{} {
	tokens := wordRe.FindAllString(lower, -1)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
