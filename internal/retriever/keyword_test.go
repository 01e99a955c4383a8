package retriever

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fosschat/internal/domain"
)

func passages(texts ...string) []domain.Passage {
	out := make([]domain.Passage, len(texts))
	for i, t := range texts {
		out[i] = domain.Passage{Text: t}
	}
	return out
}

func TestKeywordEmptyQueryAfterStopwords(t *testing.T) {
	r := NewKeywordRanker()
	got := r.Rank("the of and with", passages("the cat sat on the mat"), 5)
	assert.Empty(t, got)
}

func TestKeywordBlankQuery(t *testing.T) {
	r := NewKeywordRanker()
	assert.Empty(t, r.Rank("   ", passages("anything"), 5))
}

func TestKeywordBaseScoreCountsDistinctOverlap(t *testing.T) {
	r := NewKeywordRanker()
	got := r.Rank("open source workshops", passages("We run source workshops weekly, fully open"), 5)
	require.Len(t, got, 1)
	assert.Equal(t, 3.0, got[0].Score)
}

func TestKeywordDiscardsZeroScore(t *testing.T) {
	r := NewKeywordRanker()
	got := r.Rank("hackathon", passages("nothing relevant here"), 5)
	assert.Empty(t, got)
}

func TestKeywordExactPhraseBonus(t *testing.T) {
	r := NewKeywordRanker()
	got := r.Rank("founded in 2018", []domain.Passage{
		{Text: "FOSS-CIT was founded in 2018 by three students."},
		{Text: "It was founded by students in the year 2018."},
	}, 5)
	require.Len(t, got, 2)
	// First passage contains the literal phrase: base 2 ("in" is a
	// stop-word) + phrase 15.
	assert.Equal(t, "FOSS-CIT was founded in 2018 by three students.", got[0].Passage.Text)
	assert.Equal(t, 17.0, got[0].Score)
	assert.Equal(t, 2.0, got[1].Score)
}

func TestKeywordCategoryBonusRanksTaggedPassageHigher(t *testing.T) {
	r := NewKeywordRanker()
	// Equal base scores; only the category tag differs.
	got := r.Rank("who founded it", []domain.Passage{
		{Text: "It was founded by students.", Category: "general"},
		{Text: "It was founded by students.", Category: "history"},
	}, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "history", got[0].Passage.Category)
	assert.Equal(t, got[1].Score+15, got[0].Score)
}

func TestKeywordCategoryBonusValues(t *testing.T) {
	r := NewKeywordRanker()
	cases := []struct {
		query    string
		category string
		bonus    float64
	}{
		{"who founded the club", "founders", 15},
		{"what is the mission", "mission", 10},
		{"who is on the team", "team", 10},
		{"upcoming events", "activities", 10},
		{"contact info", "contact", 10},
		{"where is the location", "location", 10},
	}
	for _, tc := range cases {
		tagged := r.Rank(tc.query, []domain.Passage{{Text: strings.ToLower(tc.query), Category: tc.category}}, 1)
		plain := r.Rank(tc.query, []domain.Passage{{Text: strings.ToLower(tc.query)}}, 1)
		require.Len(t, tagged, 1, tc.query)
		require.Len(t, plain, 1, tc.query)
		assert.Equal(t, plain[0].Score+tc.bonus, tagged[0].Score, tc.query)
	}
}

func TestKeywordOnlyFirstCategoryRuleApplies(t *testing.T) {
	r := NewKeywordRanker()
	// "mission" outranks "team" in rule priority; the team-tagged passage
	// must not receive a bonus for this query.
	got := r.Rank("mission of the team", []domain.Passage{
		{Text: "our mission and team", Category: "team"},
		{Text: "our mission and team", Category: "mission"},
	}, 5)
	require.Len(t, got, 2)
	assert.Equal(t, "mission", got[0].Passage.Category)
	assert.Equal(t, got[1].Score+10, got[0].Score)
}

func TestKeywordLengthBonus(t *testing.T) {
	r := NewKeywordRanker()
	long := "hackathon " + strings.Repeat("x", 101)
	got := r.Rank("hackathon", []domain.Passage{{Text: "hackathon"}, {Text: long}}, 5)
	require.Len(t, got, 2)
	// A one-word query that hits is also a phrase match: 1 + 15, and the
	// long passage adds 2 on top.
	assert.Equal(t, long, got[0].Passage.Text)
	assert.Equal(t, 18.0, got[0].Score)
	assert.Equal(t, 16.0, got[1].Score)
}

func TestKeywordTiesPreserveStoreOrder(t *testing.T) {
	r := NewKeywordRanker()
	ps := passages(
		"workshops every friday",
		"workshops every monday",
		"workshops every sunday",
	)
	got := r.Rank("workshops", ps, 5)
	require.Len(t, got, 3)
	for i := range got {
		assert.Equal(t, ps[i].Text, got[i].Passage.Text)
	}
}

func TestKeywordDeterministic(t *testing.T) {
	r := NewKeywordRanker()
	ps := passages("alpha workshops", "beta workshops", "gamma workshops and contests")
	first := r.Rank("workshops contests", ps, 3)
	for i := 0; i < 5; i++ {
		again := r.Rank("workshops contests", ps, 3)
		assert.Equal(t, first, again)
	}
}

func TestKeywordTopKClamp(t *testing.T) {
	r := NewKeywordRanker()
	ps := passages("workshops a", "workshops b", "workshops c")
	assert.Len(t, r.Rank("workshops", ps, 2), 2)
	assert.Len(t, r.Rank("workshops", ps, 10), 3)
	assert.Empty(t, r.Rank("workshops", ps, 0))
}

func TestKeywordFoundedScenario(t *testing.T) {
	r := NewKeywordRanker()
	ps := []domain.Passage{{Text: "FOSS-CIT was founded in 2018 by three students.", Category: "history"}}
	got := r.Rank("who founded foss-cit", ps, 2)
	require.Len(t, got, 1)
	// base overlap (founded, foss, cit) + history category bonus
	assert.GreaterOrEqual(t, got[0].Score, 17.0)
}

func TestKeywordEmptyStore(t *testing.T) {
	r := NewKeywordRanker()
	assert.Empty(t, r.Rank("tell me about something", nil, 3))
}
