package tui

import (
	"testing"

	"github.com/bassamadnan/triage/inquiry"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func entries() []inquiry.ArchiveEntry {
	return []inquiry.ArchiveEntry{
		{Name: "Ana", Urgency: "High", Timestamp: "1"},
		{Name: "Bo", Urgency: "low", Timestamp: "2"},
		{Name: "Cy", Urgency: "High", Timestamp: "3"},
	}
}

func TestNewestFirst(t *testing.T) {
	got := newestFirst(entries())
	assert.Equal(t, []string{"Cy", "Bo", "Ana"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestFilterByUrgency(t *testing.T) {
	t.Run("Should keep everything for an empty filter", func(t *testing.T) {
		assert.Len(t, filterByUrgency(entries(), ""), 3)
	})

	t.Run("Should match urgency case-insensitively", func(t *testing.T) {
		got := filterByUrgency(entries(), "Low")
		assert.Len(t, got, 1)
		assert.Equal(t, "Bo", got[0].Name)
	})

	t.Run("Should return nothing for an unused urgency", func(t *testing.T) {
		assert.Empty(t, filterByUrgency(entries(), "Medium"))
	})
}

func TestEntryDetails(t *testing.T) {
	out := entryDetails(inquiry.ArchiveEntry{
		Name:    "Jo [admin]",
		Email:   "jo@x.com",
		Summary: "Fever.",
		Urgency: "High",
		Status:  inquiry.StatusProcessed,
	}, 10)
	assert.Contains(t, out, "[red]High[-]")
	assert.Contains(t, out, "Fever.")
	assert.Contains(t, out, "jo@x.com")
	// bracketed user text is escaped so tview doesn't read it as a tag
	assert.Contains(t, out, "Jo [admin[]")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "héllo w...", truncate("héllo wörld!", 10))
	assert.Equal(t, "", truncate("abc", 0))
}

func TestIsFilterKey(t *testing.T) {
	assert.True(t, isFilterKey(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)))
	assert.True(t, isFilterKey(tcell.NewEventKey(tcell.KeyRune, 'F', tcell.ModShift)))
	assert.False(t, isFilterKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, isFilterKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)))
}
