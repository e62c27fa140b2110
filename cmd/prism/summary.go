package main

import (
	"io"

	"charm.land/lipgloss/v2"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD")).PaddingRight(1)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8F8F2"))
)

// printSummary writes one styled "label value" line per row.
func printSummary(w io.Writer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r[0]))
	}
	for _, r := range rows {
		label := labelStyle.Width(width + 1).Render(r[0])
		lipgloss.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, label, valueStyle.Render(r[1])))
	}
}
