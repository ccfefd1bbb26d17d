// Package output provides formatters for screen and CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskscreen/internal/store"
	"taskscreen/internal/task"
)

const (
	// EmptyList is shown instead of an empty task list.
	EmptyList = "La lista está vacía (⊙_⊙;)"

	// ListSeparator is the separator line around the input card.
	ListSeparator = "------------"

	// descriptionIndent lines the description up under the title.
	descriptionIndent = "      "
)

// FormatTask formats one task card.
// Format: "{ID:>4}  {TITLE} ({STATE})\n" followed, when the description
// is not blank, by "      {DESCRIPTION}\n".
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%4d  %s (%s)\n", t.ID, normalizeTitle(t.Title), t.State)
	if desc := normalizeText(t.Description); strings.TrimSpace(desc) != "" {
		fmt.Fprintf(w, "%s%s\n", descriptionIndent, desc)
	}
}

// FormatTasks formats the whole list, or EmptyList when there is nothing
// to show.
func FormatTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyList)
		return
	}
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// FormatPending formats the input card with the two pending fields.
func FormatPending(w io.Writer, p store.Pending) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "Título:      %s\n", p.Title)
	fmt.Fprintf(w, "Descripción: %s\n", p.Description)
	fmt.Fprintln(w, ListSeparator)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
