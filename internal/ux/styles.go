package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles bundles the lipgloss styles used for text output.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Verified lipgloss.Style
}

// DefaultStyles returns the standard CLI palette.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Value:    lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Verified: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	}
}

// KV renders one "Label: value" line.
func (s Styles) KV(label, value string) string {
	return s.Label.Render(label+":") + " " + s.Value.Render(value)
}

// Table renders rows with padded columns under a header line.
func (s Styles) Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(s.Label.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				b.WriteString(pad(cell, widths[i]))
			} else {
				b.WriteString(cell)
			}
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}
