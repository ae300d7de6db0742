package ui

import (
	"fmt"
	"strings"

	"recipebox/internal/model"
	"recipebox/internal/recipe"
	"recipebox/internal/util"

	"github.com/charmbracelet/lipgloss"
)

// RecipeDetailModel represents the recipe detail screen.
type RecipeDetailModel struct {
	recipe model.Recipe
	scroll int
}

// NewRecipeDetailModel creates a new recipe detail model.
func NewRecipeDetailModel(r model.Recipe) *RecipeDetailModel {
	return &RecipeDetailModel{recipe: r}
}

// Recipe returns the recipe shown.
func (m *RecipeDetailModel) Recipe() model.Recipe {
	return m.recipe
}

func (m *RecipeDetailModel) ScrollDown() { m.scroll++ }

func (m *RecipeDetailModel) ScrollUp() {
	if m.scroll > 0 {
		m.scroll--
	}
}

// View renders the recipe detail.
func (m *RecipeDetailModel) View(width, height int) string {
	r := m.recipe

	shortcuts := HelpDescStyle.Render("e edit  d delete  h back")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	categories := r.Categories
	if len(categories) == 0 {
		categories = []string{r.Category}
	}
	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, recipe.CategoryLabel(c))
	}

	fields := []string{
		LabelStyle.Render(r.Title),
		"",
		renderField("Category", recipe.CategoryLabel(recipe.PrimaryCategory(&r))),
	}
	if len(labels) > 1 {
		fields = append(fields, renderField("Also in", strings.Join(labels[1:], ", ")))
	}
	fields = append(fields,
		renderField("Time", r.Duration),
		renderField("Difficulty", r.Difficulty),
		renderField("Diet", recipe.ExtraLabel(r.Diet)),
		renderField("Cuisine", recipe.ExtraLabel(r.Cuisine)),
		LabelStyle.Render("Tags:")+" "+TagStyle.Render(util.JoinTags(r.Tags)),
		renderField("Image", r.Image),
	)

	inner := width - 8
	sections := []string{strings.Join(fields, "\n")}
	if r.Description != "" {
		sections = append(sections, lipgloss.NewStyle().Width(inner).Render(r.Description))
	}

	divider := MutedStyle.Render(strings.Repeat("─", max(0, inner)))
	sections = append(sections, divider)

	if len(r.Steps) == 0 {
		sections = append(sections, HelpDescStyle.Render("No steps yet. Press 'e' to add some."))
	} else {
		steps := []string{LabelStyle.Render(util.Plural(len(r.Steps), "step") + ":")}
		stepStyle := NormalRowStyle.Width(max(10, inner-4))
		for i, s := range r.Steps {
			num := HelpKeyStyle.Render(fmt.Sprintf("%2d. ", i+1))
			steps = append(steps, lipgloss.JoinHorizontal(lipgloss.Top, num, stepStyle.Render(s)))
		}
		sections = append(sections, strings.Join(steps, "\n"))
	}

	body := strings.Join(sections, "\n\n")
	lines := strings.Split(body, "\n")
	visible := max(1, height-lipgloss.Height(header)-4)
	m.scroll = min(m.scroll, max(0, len(lines)-visible))
	end := min(len(lines), m.scroll+visible)

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(lines[m.scroll:end], "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}
