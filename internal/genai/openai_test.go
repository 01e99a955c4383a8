package genai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateChars(t *testing.T) {
	assert.Equal(t, "short", truncateChars("short", 300))
	long := strings.Repeat("a", 301)
	got := truncateChars(long, 300)
	assert.Equal(t, 303, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateCharsCountsRunes(t *testing.T) {
	got := truncateChars("ééééé", 3)
	assert.Equal(t, "ééé...", got)
}

func TestTruncateSentences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"One sentence only", "One sentence only"},
		{"First. Second.", "First. Second."},
		{"First. Second. Third.", "First. Second."},
		{"First. Second. Third. Fourth", "First. Second."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, truncateSentences(tc.in, 2), tc.in)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("FOSSCHAT_TEST_MISSING_KEY", "")
	_, err := NewClient(Config{APIKeyEnv: "FOSSCHAT_TEST_MISSING_KEY"})
	assert.Error(t, err)
}
