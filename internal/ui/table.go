package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const tableSeparator = " "

func tableSeparatorWidth() int {
	return lipgloss.Width(tableSeparator)
}

func formatHeaderLabel(label string) string {
	return strings.ToUpper(label)
}

func renderActiveHeaderLabel(label string) string {
	return lipgloss.NewStyle().Underline(true).Render(label)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	parts := make([]string, 0, len(cells)*2)
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		if i > 0 {
			parts = append(parts, style.Render(tableSeparator))
		}
		parts = append(parts, style.Width(widths[i]).MaxWidth(widths[i]).Render(" "+cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}

func renderTableDivider(widths []int) string {
	total := 0
	for _, w := range widths {
		total += w
	}
	total += max(0, len(widths)-1) * tableSeparatorWidth()
	return MutedStyle.Render(strings.Repeat("─", total))
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}

const formLabelWidth = 14

// renderFormField renders one labelled input line, marking the focused one.
func renderFormField(label string, input textinput.Model, focused bool) string {
	return renderFormLine(label, input.View(), focused)
}

func renderFormArea(label string, area textarea.Model, focused bool) string {
	return renderFormLine(label, area.View(), focused)
}

func renderFormLine(label, body string, focused bool) string {
	marker := "  "
	labelStyle := MutedStyle
	if focused {
		marker = HelpKeyStyle.Render("▸ ")
		labelStyle = LabelStyle
	}
	head := marker + labelStyle.Width(formLabelWidth).Render(label)
	return lipgloss.JoinHorizontal(lipgloss.Top, head, body)
}
