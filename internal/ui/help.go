package ui

import (
	"strings"

	"recipebox/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch mode {
	case model.ModeInsert:
		return renderFormHelp(width)
	case model.ModeSearch:
		return renderSearchHelp(width)
	}

	switch screen {
	case model.ScreenRecipes:
		return renderRecipesHelp(width)
	case model.ScreenRecipeDetail:
		return renderRecipeDetailHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderRecipesHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("/", "search"),
		helpKey("[ ]", "category"),
		helpKey("1-5", "filters"),
		helpKey("x", "clear"),
		helpKey("enter", "details"),
		helpKey("a/e/d", "add/edit/delete"),
		helpKey("r", "reload"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderRecipeDetailHelp(width int) string {
	keys := []string{
		helpKey("h/esc", "back"),
		helpKey("j/k", "scroll"),
		helpKey("e", "edit"),
		helpKey("d", "delete"),
	}
	return renderHelpLine(keys, width)
}

func renderSearchHelp(width int) string {
	keys := []string{
		helpKey("type", "filter by title, description or tag"),
		helpKey("enter/esc", "done"),
	}
	return renderHelpLine(keys, width)
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("enter", "attach image file"),
		helpKey("ctrl+s", "save"),
		helpKey("esc", "close"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("h/l", "back/select"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg / G", "Jump to top / bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"l / → / enter", "Open recipe"},
			{"h / ← / esc", "Back to the list"},
			{"tab / shift+tab", "Cycle active column"},
			{"c / C", "Hide active column / show all"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}),
		titleSection("Filtering"),
		helpSection([]helpItem{
			{"/", "Search title, description and tags"},
			{"[ / ]", "Previous / next category"},
			{"1-5", "Toggle Vegetarian, Non-vegetarian, Indian, Italian, Asian"},
			{"x", "Clear diet and cuisine filters"},
		}),
		titleSection("Recipes"),
		helpSection([]helpItem{
			{"a", "Add recipe"},
			{"e", "Edit selected recipe"},
			{"d then y", "Delete selected recipe"},
			{"r", "Reload from the API"},
		}),
		titleSection("Form"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"enter", "Attach the image file path (image file field)"},
			{"ctrl+s", "Save"},
			{"esc", "Close without saving"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(helpKey("esc", "close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
