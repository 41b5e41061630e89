// pattern: Imperative Shell

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gt/internal/source"
)

// Reporter prints user-facing outcomes, one line per entity.
type Reporter struct {
	w      io.Writer
	styles *Styles
	plain  bool
}

// New creates a Reporter writing to w. When plain is set all styling is
// stripped regardless of what the terminal supports.
func New(w io.Writer, theme string, plain bool) *Reporter {
	return &Reporter{
		w:      w,
		styles: NewStyles(lipgloss.NewRenderer(w), theme),
		plain:  plain,
	}
}

func (r *Reporter) line(style lipgloss.Style, glyph, text string) {
	out := style.Render(glyph) + " " + text
	if r.plain {
		out = ansi.Strip(out)
	}
	fmt.Fprintln(r.w, out)
}

// Results prints each batch result in order.
func (r *Reporter) Results(results []source.Result) {
	for _, res := range results {
		r.Result(res)
	}
}

// Result prints a single entity outcome.
func (r *Reporter) Result(res source.Result) {
	desc := res.Entity.Describe()
	switch res.Status {
	case source.Created:
		r.line(r.styles.Success(), "✔", "Created "+desc)
	case source.Removed:
		r.line(r.styles.Removed(), "✔", "Removed "+desc)
	case source.Skipped:
		if res.Action == source.Create {
			r.line(r.styles.Skipped(), "✘", "Skipped "+desc+" (already exists)")
		} else {
			r.line(r.styles.Skipped(), "✘", "Skipped "+desc+" (does not exist)")
		}
	case source.Failed:
		verb := "create"
		if res.Action == source.Remove {
			verb = "remove"
		}
		r.line(r.styles.Error(), "✘", fmt.Sprintf("Failed to %s %s: %v", verb, desc, res.Err))
	}
}

// Success prints a completed action that is not tied to a source entity.
func (r *Reporter) Success(format string, args ...any) {
	r.line(r.styles.Success(), "✔", fmt.Sprintf(format, args...))
}

// Skip prints an action that was deliberately not performed.
func (r *Reporter) Skip(format string, args ...any) {
	r.line(r.styles.Skipped(), "✘", fmt.Sprintf(format, args...))
}

// Fail prints an action that failed.
func (r *Reporter) Fail(format string, args ...any) {
	r.line(r.styles.Error(), "✘", fmt.Sprintf(format, args...))
}

// Heading prints a section title such as "app:".
func (r *Reporter) Heading(text string) {
	out := r.styles.Heading().Render(text)
	if r.plain {
		out = ansi.Strip(out)
	}
	fmt.Fprintln(r.w, out)
}

// Marked prints a list item prefixed by a one-character marker.
func (r *Reporter) Marked(marker, text string) {
	r.line(r.styles.Accent(), marker, text)
}

// Println prints unstyled text.
func (r *Reporter) Println(text string) {
	fmt.Fprintln(r.w, text)
}

// Quote renders names as 'a', 'b', 'c'.
func Quote(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return strings.Join(quoted, ", ")
}

// NotValid renders "'x' is not a valid <noun>." or "'x', 'y' are not valid <noun>s."
func NotValid(names []string, noun string) string {
	if len(names) == 1 {
		return fmt.Sprintf("%s is not a valid %s.", Quote(names), noun)
	}
	return fmt.Sprintf("%s are not valid %ss.", Quote(names), noun)
}

// IncompleteSourceSets renders the notice for projects whose source set for
// lang is missing or incomplete. An empty lang means the whole source set.
func IncompleteSourceSets(projects []string, lang string) string {
	subject := "source set"
	if len(projects) > 1 {
		subject = "source sets"
	}
	if lang != "" {
		subject += " for the " + lang + " language"
	}
	verb := "is"
	if len(projects) > 1 {
		verb = "are"
	}
	return fmt.Sprintf("The %s in %s %s incomplete/missing.", subject, Quote(projects), verb)
}
