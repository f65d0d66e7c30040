// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"notionhabit/internal/service"
)

// FormatHabitName formats one habit name line for the list action.
func FormatHabitName(w io.Writer, name string) {
	fmt.Fprintln(w, normalizeName(name))
}

// FormatUpdated formats the overdue-closing summary.
func FormatUpdated(w io.Writer, count int) {
	noun := "habits"
	if count == 1 {
		noun = "habit"
	}
	fmt.Fprintf(w, "%d %s updated\n", count, noun)
}

// FormatAnalysisHeader formats the section header printed above a habit's table.
func FormatAnalysisHeader(w io.Writer, name string, window service.Window) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)

	_, _ = title.Fprint(w, normalizeName(name))
	_, _ = faint.Fprintf(w, " - %s\n", window)
}

// FormatTable writes a rendered table followed by a blank line.
func FormatTable(w io.Writer, table string) {
	fmt.Fprintln(w, strings.TrimRight(table, "\n"))
	fmt.Fprintln(w)
}

// normalizeName normalizes a habit name for display.
// - Empty or whitespace-only names become "(untitled)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(untitled)"
	}
	return name
}
