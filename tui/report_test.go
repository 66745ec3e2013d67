package tui

import (
	"testing"

	"github.com/bassamadnan/triage/processor"
	"github.com/stretchr/testify/assert"
)

func TestRenderReport(t *testing.T) {
	t.Run("Should report an idle run", func(t *testing.T) {
		out := RenderReport(processor.Result{Rows: 4})
		assert.Contains(t, out, "No new inquiries.")
		assert.Contains(t, out, "Rows in sheet:")
		assert.NotContains(t, out, "All new entries processed.")
	})

	t.Run("Should list failed writes by row", func(t *testing.T) {
		out := RenderReport(processor.Result{
			Rows:                   5,
			Pending:                3,
			Updated:                3,
			ProcessedColumnCreated: true,
			MarkFailures:           []int{2, 4},
			ArchiveFailures:        []int{6},
		})
		assert.Contains(t, out, "All new entries processed.")
		assert.Contains(t, out, "Created the Processed column.")
		assert.Contains(t, out, "Not marked processed: rows 2, 4")
		assert.Contains(t, out, "Not archived: rows 6")
	})

	t.Run("Should omit failure lines on a clean run", func(t *testing.T) {
		out := RenderReport(processor.Result{Rows: 1, Pending: 1, Updated: 1})
		assert.NotContains(t, out, "Not marked")
		assert.NotContains(t, out, "Not archived")
	})
}
