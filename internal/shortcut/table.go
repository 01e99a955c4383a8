// Package shortcut implements the canned-answer first-pass filter checked
// before any retrieval happens.
package shortcut

import "strings"

// Entry is one trigger/answer pair.
type Entry struct {
	Trigger string
	Answer  string
}

// Table is an ordered trigger-substring to canned-answer mapping.
// Declaration order is the match priority.
type Table struct {
	entries []Entry
}

// NewTable builds a table from ordered pairs. Triggers are stored
// lowercased since matching is case-insensitive.
func NewTable(entries []Entry) *Table {
	t := &Table{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if e.Trigger == "" {
			continue
		}
		t.entries = append(t.entries, Entry{Trigger: strings.ToLower(e.Trigger), Answer: e.Answer})
	}
	return t
}

// Len reports the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Lookup returns the answer of the first entry whose trigger occurs as a
// substring of the lowercased, trimmed question. The second return value
// reports whether any trigger matched.
func (t *Table) Lookup(question string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return "", false
	}
	for _, e := range t.entries {
		if strings.Contains(q, e.Trigger) {
			return e.Answer, true
		}
	}
	return "", false
}
