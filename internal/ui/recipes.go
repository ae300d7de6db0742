package ui

import (
	"fmt"
	"slices"
	"strings"

	"recipebox/internal/model"
	"recipebox/internal/recipe"
	"recipebox/internal/util"

	"github.com/charmbracelet/lipgloss"
)

type recipeColumn struct {
	key    string
	label  string
	width  int
	hidden bool
}

// RecipesModel is the recipe list: the filter bar and the table of recipes
// that pass the current filter.
type RecipesModel struct {
	all    []model.Recipe
	rows   []model.Recipe
	filter model.FilterState
	sample bool

	cursor int
	offset int

	viewportHeight int

	columns      []recipeColumn
	activeColumn int
}

// NewRecipesModel creates a new recipes model with the initial filter.
func NewRecipesModel(recipes []model.Recipe) *RecipesModel {
	m := &RecipesModel{
		filter: recipe.NewFilterState(),
		columns: []recipeColumn{
			{key: "title", label: "title", width: 26},
			{key: "category", label: "category", width: 10},
			{key: "duration", label: "time", width: 9},
			{key: "difficulty", label: "level", width: 8},
			{key: "diet", label: "diet", width: 14},
			{key: "cuisine", label: "cuisine", width: 9},
			{key: "tags", label: "tags", width: 20},
		},
	}
	m.SetRecipes(recipes, false)
	return m
}

// SetRecipes replaces the collection. The filter is kept and the cursor
// stays on the same recipe when it is still shown.
func (m *RecipesModel) SetRecipes(recipes []model.Recipe, sample bool) {
	selected, hadSelection := m.Selected()
	m.all = append([]model.Recipe(nil), recipes...)
	m.sample = sample
	m.rebuild()
	if !hadSelection {
		return
	}
	for i, r := range m.rows {
		if r.ID == selected.ID {
			m.cursor = i
			m.clampCursor()
			return
		}
	}
}

func (m *RecipesModel) rebuild() {
	m.rows = recipe.Filter(m.all, m.filter)
	m.clampCursor()
}

func (m *RecipesModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// Filter returns the current filter state.
func (m *RecipesModel) Filter() model.FilterState {
	f := m.filter
	f.Extras = append([]string(nil), m.filter.Extras...)
	return f
}

// Counts returns the number of shown and loaded recipes.
func (m *RecipesModel) Counts() (shown, total int) {
	return len(m.rows), len(m.all)
}

// Selected returns the recipe under the cursor.
func (m *RecipesModel) Selected() (model.Recipe, bool) {
	if len(m.rows) == 0 {
		return model.Recipe{}, false
	}
	return m.rows[m.cursor], true
}

// SetSearch updates the search term.
func (m *RecipesModel) SetSearch(term string) {
	if m.filter.Search == term {
		return
	}
	m.filter.Search = term
	m.rebuild()
}

// NextCategory selects the next category of the catalogue, wrapping around.
func (m *RecipesModel) NextCategory() string {
	return m.shiftCategory(1)
}

// PrevCategory selects the previous category of the catalogue, wrapping around.
func (m *RecipesModel) PrevCategory() string {
	return m.shiftCategory(-1)
}

func (m *RecipesModel) shiftCategory(delta int) string {
	idx := slices.IndexFunc(recipe.Categories, func(c model.Category) bool {
		return c.ID == m.filter.Category
	})
	if idx < 0 {
		idx = 0
	}
	n := len(recipe.Categories)
	next := recipe.Categories[((idx+delta)%n+n)%n]
	m.filter.Category = next.ID
	m.rebuild()
	return next.Label
}

// ToggleFacet flips the facet at the 1-based position of the facet
// catalogue. It reports the facet label and its new state.
func (m *RecipesModel) ToggleFacet(number int) (label string, on bool, ok bool) {
	if number < 1 || number > len(recipe.ExtraFilters) {
		return "", false, false
	}
	facet := recipe.ExtraFilters[number-1]
	on = !slices.Contains(m.filter.Extras, facet.ID)
	m.filter.Extras = recipe.ToggleExtra(m.filter.Extras, facet.ID, on)
	m.rebuild()
	return facet.Label, on, true
}

// ClearFacets removes every active facet.
func (m *RecipesModel) ClearFacets() bool {
	if len(m.filter.Extras) == 0 {
		return false
	}
	m.filter.Extras = nil
	m.rebuild()
	return true
}

func (m *RecipesModel) ApplyPrefs(prefs TablePrefs) {
	hidden := make(map[string]bool, len(prefs.HiddenColumns))
	for _, c := range prefs.HiddenColumns {
		hidden[c] = true
	}
	for i := range m.columns {
		m.columns[i].hidden = hidden[m.columns[i].key]
	}
	if prefs.ActiveColumn != "" {
		for i, c := range m.columns {
			if c.key == prefs.ActiveColumn {
				m.activeColumn = i
				break
			}
		}
	}
	m.ensureVisibleActiveColumn()
}

func (m *RecipesModel) Prefs() TablePrefs {
	var hidden []string
	for _, c := range m.columns {
		if c.hidden {
			hidden = append(hidden, c.key)
		}
	}
	return TablePrefs{
		HiddenColumns: hidden,
		ActiveColumn:  m.columns[m.activeColumn].key,
	}
}

func (m *RecipesModel) visibleColumnIndexes() []int {
	var idxs []int
	for i, c := range m.columns {
		if !c.hidden {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (m *RecipesModel) ensureVisibleActiveColumn() {
	if !m.columns[m.activeColumn].hidden {
		return
	}
	for i := range m.columns {
		if !m.columns[i].hidden {
			m.activeColumn = i
			return
		}
	}
	m.columns[0].hidden = false
	m.activeColumn = 0
}

func (m *RecipesModel) NextColumn() {
	start := m.activeColumn
	for {
		m.activeColumn = (m.activeColumn + 1) % len(m.columns)
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *RecipesModel) PrevColumn() {
	start := m.activeColumn
	for {
		m.activeColumn--
		if m.activeColumn < 0 {
			m.activeColumn = len(m.columns) - 1
		}
		if !m.columns[m.activeColumn].hidden || m.activeColumn == start {
			return
		}
	}
}

func (m *RecipesModel) HideActiveColumn() bool {
	if len(m.visibleColumnIndexes()) <= 1 {
		return false
	}
	m.columns[m.activeColumn].hidden = true
	m.ensureVisibleActiveColumn()
	return true
}

func (m *RecipesModel) ShowAllColumns() {
	for i := range m.columns {
		m.columns[i].hidden = false
	}
}

func (m *RecipesModel) TableMeta() string {
	return "col " + strings.ToUpper(m.columns[m.activeColumn].label)
}

func cellValue(r model.Recipe, key string) string {
	switch key {
	case "title":
		return r.Title
	case "category":
		return recipe.CategoryLabel(recipe.PrimaryCategory(&r))
	case "duration":
		return r.Duration
	case "difficulty":
		return r.Difficulty
	case "diet":
		return recipe.ExtraLabel(r.Diet)
	case "cuisine":
		return recipe.ExtraLabel(r.Cuisine)
	case "tags":
		return strings.Join(r.Tags, ", ")
	default:
		return ""
	}
}

// View renders the filter bar, the table and the status line.
func (m *RecipesModel) View(width, height int) string {
	bar := m.renderFilterBar(width)
	status := m.renderStatus()
	tableHeight := height - lipgloss.Height(bar) - lipgloss.Height(status)

	var table string
	switch {
	case len(m.all) == 0:
		table = EmptyStateStyle.Width(width).Render("No recipes yet.\nPress  a  to add your first recipe!")
	case len(m.rows) == 0:
		table = EmptyStateStyle.Width(width).Render("No recipes match the current filters.\nPress  x  to clear filters or  /  to change the search.")
	default:
		table = m.renderTable(width, tableHeight)
	}

	spacerHeight := max(0, tableHeight-lipgloss.Height(table))
	spacer := lipgloss.NewStyle().Height(spacerHeight).Render("")

	return lipgloss.JoinVertical(lipgloss.Left, bar, table, spacer, status)
}

func (m *RecipesModel) renderFilterBar(width int) string {
	categories := make([]string, 0, len(recipe.Categories))
	for _, c := range recipe.Categories {
		style := ChipStyle
		if c.ID == m.filter.Category {
			style = ChipActiveStyle
		}
		categories = append(categories, style.Render(c.Label))
	}

	facets := make([]string, 0, len(recipe.ExtraFilters))
	for i, f := range recipe.ExtraFilters {
		style := ChipStyle
		if slices.Contains(m.filter.Extras, f.ID) {
			style = ChipActiveStyle
		}
		facets = append(facets, HelpKeyStyle.Render(fmt.Sprintf("%d", i+1))+style.Render(f.Label))
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			MutedStyle.Render("[ ")+strings.Join(categories, " ")+MutedStyle.Render(" ]"),
			strings.Join(facets, " "),
		))
}

func (m *RecipesModel) renderTable(width, height int) string {
	visible := m.visibleColumnIndexes()

	widths := make([]int, 0, len(visible))
	headers := make([]string, 0, len(visible))
	total := 0
	for _, idx := range visible {
		col := m.columns[idx]
		label := formatHeaderLabel(col.label)
		if idx == m.activeColumn {
			label = renderActiveHeaderLabel(label)
		}
		cellWidth := max(col.width+2, lipgloss.Width(label)+2)
		total += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}
	if extra := width - total - (len(widths)-1)*tableSeparatorWidth(); extra > 0 && len(widths) > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)
	divider := renderTableDivider(widths)

	visibleHeight := max(1, height-2)
	m.viewportHeight = visibleHeight
	if m.cursor >= m.offset+visibleHeight {
		m.offset = m.cursor - visibleHeight + 1
	}

	lines := []string{header, divider}
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		row := m.rows[i]
		style := NormalRowStyle
		if i == m.cursor {
			style = SelectedRowStyle
		}
		cells := make([]string, 0, len(visible))
		for j, idx := range visible {
			col := m.columns[idx]
			cells = append(cells, util.TruncateString(util.OrDash(cellValue(row, col.key)), widths[j]-2))
		}
		lines = append(lines, renderTableRow(cells, widths, style))
	}
	return strings.Join(lines, "\n")
}

func (m *RecipesModel) renderStatus() string {
	shown, total := m.Counts()
	parts := []string{util.CountLabel(shown, total) + " recipes"}
	if shown > 0 {
		parts = append(parts, fmt.Sprintf("row %d/%d", m.cursor+1, shown))
	}
	if term := strings.TrimSpace(m.filter.Search); term != "" {
		parts = append(parts, fmt.Sprintf("search %q", term))
	}
	if len(m.filter.Extras) > 0 {
		labels := make([]string, 0, len(m.filter.Extras))
		for _, id := range m.filter.Extras {
			labels = append(labels, recipe.ExtraLabel(id))
		}
		parts = append(parts, "filters "+strings.Join(labels, "+"))
	}
	parts = append(parts, m.TableMeta())
	if m.sample {
		parts = append(parts, "sample recipes")
	}
	return StatusBarStyle.Render(strings.Join(parts, "  ·  "))
}

// MoveDown moves the cursor down.
func (m *RecipesModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		if m.cursor >= m.offset+m.pageHeight() {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *RecipesModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first item.
func (m *RecipesModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last item.
func (m *RecipesModel) JumpToBottom() {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = len(m.rows) - 1
	if vh := m.pageHeight(); m.cursor >= vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageDown moves down half a page.
func (m *RecipesModel) HalfPageDown(pageSize int) {
	m.cursor = min(m.cursor+pageSize/2, len(m.rows)-1)
	m.clampCursor()
	if vh := m.pageHeight(); m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

// HalfPageUp moves up half a page.
func (m *RecipesModel) HalfPageUp(pageSize int) {
	m.cursor = max(m.cursor-pageSize/2, 0)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m *RecipesModel) pageHeight() int {
	if m.viewportHeight == 0 {
		return 10
	}
	return m.viewportHeight
}
