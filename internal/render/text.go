package render

import (
	"github.com/gdamore/tcell/v2"

	"termfolio/internal/tasks"
)

// wrapLines word-wraps text to width columns without a line limit.
func wrapLines(text string, width int) []string {
	return tasks.Wrap(text, width, 0)
}

// writeLines writes lines starting at row, stopping at maxRow. Returns the
// row after the last line written.
func (e *Engine) writeLines(row, col, maxCol, maxRow int, lines []string, fg, bg tcell.Color) int {
	for _, line := range lines {
		if row >= maxRow {
			break
		}
		e.writeText(row, col, maxCol, line, fg, bg, false)
		row++
	}
	return row
}
