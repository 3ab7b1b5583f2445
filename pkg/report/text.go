package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type textStyles struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	section lipgloss.Style
	group   lipgloss.Style
	item    lipgloss.Style
}

func newTextStyles(r *lipgloss.Renderer) textStyles {
	return textStyles{
		title:   r.NewStyle().Bold(true),
		ok:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failed:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		section: r.NewStyle().Bold(true).Underline(true).MarginTop(1),
		group:   r.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("214")),
		item:    r.NewStyle().PaddingLeft(4),
	}
}

// WriteText renders rep for a terminal. Colours are applied only when w is a
// colour-capable terminal.
func WriteText(w io.Writer, rep Report) error {
	st := newTextStyles(lipgloss.NewRenderer(w))
	var lines []string

	lines = append(lines, st.title.Render("Validation report"))
	if rep.Valid {
		lines = append(lines, st.ok.Render("Status: VALID"))
	} else {
		lines = append(lines, st.failed.Render(fmt.Sprintf("Status: INVALID (%d %s)", rep.ErrorCount, plural(rep.ErrorCount, "error", "errors"))))
	}

	if len(rep.Form) > 0 || len(rep.Dataset) > 0 {
		lines = append(lines, st.section.Render("Dataset"))
		for _, msg := range append(append([]string(nil), rep.Form...), rep.Dataset...) {
			lines = append(lines, st.item.Render("- "+msg))
		}
	}

	if len(rep.Project) > 0 {
		lines = append(lines, st.section.Render("Project"))
		for _, e := range rep.Project {
			lines = append(lines, st.item.Render(fmt.Sprintf("- %s: %s", e.Label, strings.Join(e.Messages, "; "))))
		}
	}

	if len(rep.Samples) > 0 {
		lines = append(lines, st.section.Render("Samples"))
		for _, group := range rep.Samples {
			heading := fmt.Sprintf("Row %d", group.Row)
			if group.Name != "" {
				heading += " (" + group.Name + ")"
			}
			lines = append(lines, st.group.Render(heading))
			for _, e := range group.Entries {
				lines = append(lines, st.item.Render(fmt.Sprintf("- %s: %s", e.Label, strings.Join(e.Messages, "; "))))
			}
		}
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
