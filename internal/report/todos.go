package report

import (
	"sort"
	"strings"

	"specview/internal/storage"
)

// checkSeparator splits a note line into a description and the name of the check.
const checkSeparator = "->"

// Checks returns the sorted unique check names found in the notes: the
// trimmed text after the first "->" of each line.
func Checks(notes []*storage.Note) []string {
	seen := map[string]bool{}
	var checks []string
	for _, note := range notes {
		for _, line := range strings.Split(note.Body, "\n") {
			_, after, ok := strings.Cut(line, checkSeparator)
			if !ok {
				continue
			}
			check := strings.TrimSpace(after)
			if seen[check] {
				continue
			}
			seen[check] = true
			checks = append(checks, check)
		}
	}
	sort.Strings(checks)
	return checks
}

// NoteBodies indexes note bodies by call name.
func NoteBodies(notes []*storage.Note) map[string]string {
	out := make(map[string]string, len(notes))
	for _, note := range notes {
		out[note.CallName] = note.Body
	}
	return out
}

// Todos renders the overview of every note followed by the list of checks.
// Notes written against another document digest are marked stale.
func Todos(notes []*storage.Note, digest uint64) string {
	var sb strings.Builder
	sb.WriteString("## TODO\n\n")
	for _, note := range notes {
		sb.WriteString("### " + note.CallName)
		if note.Stale(digest) {
			sb.WriteString(" (stale)")
		}
		sb.WriteString("\n\n```\n" + strings.TrimRight(note.Body, "\n") + "\n```\n\n")
	}

	sb.WriteString("## List of todos\n\n")
	for _, check := range Checks(notes) {
		sb.WriteString("- " + check + "\n")
	}
	return sb.String()
}
