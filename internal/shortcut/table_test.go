package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFirstMatchWins(t *testing.T) {
	// "hi" is a substring of any question containing "history"; the earlier
	// entry must win regardless.
	table := NewTable([]Entry{
		{Trigger: "hi", Answer: "greeting"},
		{Trigger: "history", Answer: "history answer"},
	})
	got, ok := table.Lookup("tell me the history")
	require.True(t, ok)
	assert.Equal(t, "greeting", got)
}

func TestLookupDeclarationOrderIsPriority(t *testing.T) {
	table := NewTable([]Entry{
		{Trigger: "what activities", Answer: "specific"},
		{Trigger: "activities", Answer: "generic"},
	})
	got, ok := table.Lookup("What activities do you run?")
	require.True(t, ok)
	assert.Equal(t, "specific", got)

	got, ok = table.Lookup("list your activities")
	require.True(t, ok)
	assert.Equal(t, "generic", got)
}

func TestLookupCaseInsensitiveSubstring(t *testing.T) {
	table := NewTable([]Entry{{Trigger: "Contact", Answer: "email us"}})
	got, ok := table.Lookup("  How do I CONTACT you?  ")
	require.True(t, ok)
	assert.Equal(t, "email us", got)
}

func TestLookupNoMatch(t *testing.T) {
	table := NewTable([]Entry{{Trigger: "hello", Answer: "hi"}})
	_, ok := table.Lookup("tell me about events")
	assert.False(t, ok)
}

func TestLookupEmptyQuestion(t *testing.T) {
	table := NewTable([]Entry{{Trigger: "hello", Answer: "hi"}})
	_, ok := table.Lookup("   ")
	assert.False(t, ok)
}

func TestNewTableSkipsEmptyTriggers(t *testing.T) {
	table := NewTable([]Entry{{Trigger: "", Answer: "never"}, {Trigger: "ok", Answer: "fine"}})
	assert.Equal(t, 1, table.Len())
}
