// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/service"
	"todoctl/internal/tasks"
)

// FormatTask formats a numbered task row.
// Format: "{N:>4}  [{x| }] {TEXT}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.IsComplete {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, mark, normalizeText(task.Text))
}

// FormatTasks formats a sequence of task rows numbered from 1.
func FormatTasks(w io.Writer, list []service.Task) {
	for i, t := range list {
		FormatTask(w, i+1, t)
	}
}

// FormatStats writes the aggregate line derived from the full list.
// Format: "{COMPLETED}/{TOTAL} done ({PCT}%), {REMAINING} remaining\n"
func FormatStats(w io.Writer, c tasks.Counts) {
	fmt.Fprintf(w, "%d/%d done (%.0f%%), %d remaining\n",
		c.Completed, c.Total, c.Progress(), c.Remaining)
}

// normalizeText normalizes task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
