// Package printer formats taskd CLI output.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dyluth/taskd/pkg/taskstore"
	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
	cyan  = color.New(color.FgCyan)
	faint = color.New(color.Faint)

	stdout io.Writer = color.Output
	stderr io.Writer = color.Error
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

// SetOutput redirects normal and error output. Used by tests.
func SetOutput(out, errOut io.Writer) {
	stdout = out
	stderr = errOut
}

// Success prints a success line in green with a checkmark prefix
func Success(format string, a ...any) {
	green.Fprintf(stdout, "✓ %s\n", fmt.Sprintf(format, a...))
}

// Step prints a progress line in cyan
func Step(format string, a ...any) {
	cyan.Fprintf(stdout, "→ %s\n", fmt.Sprintf(format, a...))
}

// Task prints a task as aligned label/value lines. Empty values are shown
// as "(empty)" so they are not mistaken for missing output.
func Task(t *taskstore.Task) {
	rows := []struct{ label, value string }{
		{"ID", t.ID},
		{"Title", t.Title},
		{"Author", t.Author},
		{"Description", t.Description},
	}
	for _, row := range rows {
		cyan.Fprintf(stdout, "%-12s ", row.label+":")
		if row.value == "" {
			faint.Fprintln(stdout, "(empty)")
			continue
		}
		fmt.Fprintln(stdout, row.value)
	}
}

// TaskJSON prints a task as indented JSON
func TaskJSON(t *taskstore.Task) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Error prints a formatted error to stderr with a title, an explanation and
// numbered suggestions, and returns an error carrying only the title so
// cobra does not print it a second time.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(stderr, "%s\n\n", title)

	if explanation != "" {
		fmt.Fprintf(stderr, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}
