package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"recipebox/internal/form"
	"recipebox/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecipeStore is the recipe collection shown by the UI.
type RecipeStore interface {
	Recipes() []model.Recipe
	IsSample() bool
	Reload(ctx context.Context) ([]model.Recipe, error)
	Delete(ctx context.Context, id int64) ([]model.Recipe, error)
}

// Options wires the root model.
type Options struct {
	Store     RecipeStore
	Submitter RecipeSubmitter
	Logger    *slog.Logger
	ConfigDir string // ui_prefs.json lives here; empty disables persistence
}

// Model is the root Bubble Tea model.
type Model struct {
	store     RecipeStore
	submitter RecipeSubmitter
	logger    *slog.Logger
	prefsPath string

	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool
	loading     bool

	// Screen models
	recipes *RecipesModel
	detail  *RecipeDetailModel
	form    *RecipeFormModel

	search        textinput.Model
	formReturn    model.Screen
	formSeq       uint64
	pendingDelete *model.Recipe

	keys  KeyMap
	prefs UIPreferences
}

// New creates a new root model.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path := prefsPath(opts.ConfigDir)
	prefs, err := loadUIPreferences(path)
	if err != nil {
		logger.Warn("ignoring ui preferences", "path", path, "error", err)
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search title, description or tags"
	search.CharLimit = 100

	recipes := NewRecipesModel(nil)
	recipes.ApplyPrefs(prefs.Recipes)

	return Model{
		store:     opts.Store,
		submitter: opts.Submitter,
		logger:    logger,
		prefsPath: path,
		screen:    model.ScreenRecipes,
		mode:      model.ModeNav,
		gState:    GStateIdle,
		loading:   true,
		recipes:   recipes,
		search:    search,
		keys:      DefaultKeyMap(),
		prefs:     prefs,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return reloadCmd(m.store)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.pendingDelete != nil {
			return m.handleDeleteConfirm(msg)
		}

		if m.mode == model.ModeNav && key.Matches(msg, m.keys.Help) {
			m.showingHelp = !m.showingHelp
			return m, nil
		}

		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "q" {
				m.showingHelp = false
			}
			return m, nil
		}

		switch m.mode {
		case model.ModeInsert:
			return m.handleInsertMode(msg)
		case model.ModeSearch:
			return m.handleSearchMode(msg)
		}
		return m.handleNavMode(msg)

	case model.ErrorMsg:
		m.logger.Error("ui error", "error", msg.Err)
		m.error = msg.Err.Error()
		return m, nil

	case model.RecipesLoadedMsg:
		m.loading = false
		m.applyRecipes(msg.Recipes, msg.Sample)
		if msg.Err != nil {
			m.error = "Could not load recipes, showing samples: " + msg.Err.Error()
		} else {
			m.error = ""
		}
		return m, nil

	case model.RecipeDeletedMsg:
		m.applyRecipes(msg.Recipes, msg.Sample)
		if msg.Err != nil {
			m.info = ""
			m.error = "Could not delete recipe: " + msg.Err.Error()
			return m, nil
		}
		m.error = ""
		m.info = fmt.Sprintf("Deleted %q", msg.Title)
		if m.screen == model.ScreenRecipeDetail {
			m.screen = model.ScreenRecipes
			m.detail = nil
		}
		return m, nil

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case previewLoadedMsg:
		if !m.isCurrentSession(msg.sessionID) {
			m.logger.Debug("dropping preview for closed form", "session", msg.sessionID, "path", msg.path)
			return m, nil
		}
		m.form.applyPreview(msg)
		return m, nil

	case model.FormCancelledMsg:
		m.closeForm()
		return m, nil
	}

	// Pass everything else (cursor blink, spinner ticks) to the focused input.
	switch m.mode {
	case model.ModeInsert:
		return m.handleInsertMode(msg)
	case model.ModeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	current := m.isCurrentSession(msg.sessionID)

	if msg.err != nil {
		var verr *form.ValidationError
		if errors.As(msg.err, &verr) {
			if current {
				m.form.showErrors(verr.Messages)
			}
			return m, nil
		}
		m.logger.Error("failed to save recipe", "op", msg.mode.String(), "session", msg.sessionID, "error", msg.err)
		if current {
			m.form.submitFailed(msg.err)
		}
		return m, nil
	}

	m.logger.Info("recipe saved", "op", msg.mode.String(), "session", msg.sessionID, "id", msg.result.RecipeID)
	if current {
		m.closeForm()
		m.error = ""
		m.info = fmt.Sprintf("Saved %q", msg.result.Payload.Title)
	} else {
		m.logger.Debug("save finished after its form closed", "session", msg.sessionID)
	}

	// The mutation happened either way.
	m.loading = true
	return m, reloadCmd(m.store)
}

func (m *Model) isCurrentSession(id uint64) bool {
	return m.form != nil && m.form.SessionID() == id
}

func (m *Model) applyRecipes(recipes []model.Recipe, sample bool) {
	m.recipes.SetRecipes(recipes, sample)
	if m.detail == nil {
		return
	}
	id := m.detail.Recipe().ID
	for _, r := range recipes {
		if r.ID == id {
			m.detail.recipe = r
			return
		}
	}
	m.detail = nil
	if m.screen == model.ScreenRecipeDetail {
		m.screen = model.ScreenRecipes
	}
}

func (m *Model) nextSessionID() uint64 {
	m.formSeq++
	return m.formSeq
}

func (m Model) openForm(s form.Session) (tea.Model, tea.Cmd) {
	m.formReturn = m.screen
	m.form = NewRecipeFormModel(m.submitter, s)
	m.screen = model.ScreenRecipeForm
	m.mode = model.ModeInsert
	m.error = ""
	m.info = ""
	return m, textinput.Blink
}

func (m *Model) closeForm() {
	m.form = nil
	m.mode = model.ModeNav
	m.screen = m.formReturn
	if m.screen == model.ScreenRecipeDetail && m.detail == nil {
		m.screen = model.ScreenRecipes
	}
	if m.screen == model.ScreenRecipeForm {
		m.screen = model.ScreenRecipes
	}
}

func (m *Model) confirmDelete(r model.Recipe) {
	m.pendingDelete = &r
	m.error = ""
	m.info = fmt.Sprintf("Delete recipe? This will remove %q. (y/n)", r.Title)
}

func (m Model) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := *m.pendingDelete
	m.pendingDelete = nil
	if !key.Matches(msg, m.keys.Confirm) {
		m.info = "Delete cancelled"
		return m, nil
	}
	m.info = fmt.Sprintf("Deleting %q...", r.Title)
	return m, deleteCmd(m.store, r)
}

// handleInsertMode routes input to the open form.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = model.ModeNav
		return m, nil
	}
	newForm, cmd := m.form.Update(msg)
	m.form = &newForm
	return m, cmd
}

func (m Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = model.ModeNav
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.recipes.SetSearch(m.search.Value())
	return m, cmd
}

// handleNavMode handles navigation mode input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Top) {
		m.gState = GStateIdle
	}

	switch m.screen {
	case model.ScreenRecipes:
		return m.handleRecipesNav(msg)
	case model.ScreenRecipeDetail:
		return m.handleRecipeDetailNav(msg)
	}
	return m, nil
}

func (m *Model) currentTable() tableController {
	if m.screen == model.ScreenRecipes {
		return m.recipes
	}
	return nil
}

func (m *Model) currentCursor() tableCursor {
	if m.screen == model.ScreenRecipes {
		return m.recipes
	}
	return nil
}

func (m *Model) persistCurrentTablePrefs() {
	t := m.currentTable()
	if t == nil {
		return
	}
	m.prefs.Recipes = t.Prefs()
	if err := saveUIPreferences(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("failed to save ui preferences", "path", m.prefsPath, "error", err)
	}
}

func (m Model) handleTableControls(msg tea.KeyMsg) (bool, Model) {
	t := m.currentTable()
	if t == nil {
		return false, m
	}
	switch {
	case key.Matches(msg, m.keys.NextColumn):
		t.NextColumn()
	case key.Matches(msg, m.keys.PrevColumn):
		t.PrevColumn()
	case key.Matches(msg, m.keys.HideColumn):
		if !t.HideActiveColumn() {
			m.info = "Cannot hide the last visible column"
			return true, m
		}
	case key.Matches(msg, m.keys.ShowColumns):
		t.ShowAllColumns()
	default:
		return false, m
	}
	m.info = t.TableMeta()
	m.persistCurrentTablePrefs()
	return true, m
}

func (m Model) handleMovement(msg tea.KeyMsg) (bool, Model) {
	c := m.currentCursor()
	if c == nil {
		return false, m
	}
	page := max(2, m.height-10)
	switch {
	case key.Matches(msg, m.keys.Down):
		c.MoveDown()
	case key.Matches(msg, m.keys.Up):
		c.MoveUp()
	case key.Matches(msg, m.keys.Top):
		if m.gState == GStateFirstG {
			m.gState = GStateIdle
			c.JumpToTop()
		} else {
			m.gState = GStateFirstG
		}
	case key.Matches(msg, m.keys.Bottom):
		c.JumpToBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		c.HalfPageDown(page)
	case key.Matches(msg, m.keys.HalfPageUp):
		c.HalfPageUp(page)
	default:
		return false, m
	}
	return true, m
}

func (m Model) handleRecipesNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if ok, next := m.handleMovement(msg); ok {
		return next, nil
	}
	if ok, next := m.handleTableControls(msg); ok {
		return next, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.mode = model.ModeSearch
		m.info = ""
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.PrevCategory):
		m.info = "Category: " + m.recipes.PrevCategory()
	case key.Matches(msg, m.keys.NextCategory):
		m.info = "Category: " + m.recipes.NextCategory()
	case key.Matches(msg, m.keys.ToggleFacet):
		n, _ := strconv.Atoi(msg.String())
		if label, on, ok := m.recipes.ToggleFacet(n); ok {
			state := "off"
			if on {
				state = "on"
			}
			m.info = fmt.Sprintf("%s filter %s", label, state)
		}
	case key.Matches(msg, m.keys.ClearFacets):
		if m.recipes.ClearFacets() {
			m.info = "Filters cleared"
		} else {
			m.info = "No filters to clear"
		}
	case key.Matches(msg, m.keys.Select):
		if r, ok := m.recipes.Selected(); ok {
			m.detail = NewRecipeDetailModel(r)
			m.screen = model.ScreenRecipeDetail
			m.info = ""
		}
	case key.Matches(msg, m.keys.Add):
		return m.openForm(form.OpenAdd(m.nextSessionID()))
	case key.Matches(msg, m.keys.Edit):
		if r, ok := m.recipes.Selected(); ok {
			return m.openForm(form.OpenEdit(m.nextSessionID(), r))
		}
	case key.Matches(msg, m.keys.Delete):
		if r, ok := m.recipes.Selected(); ok {
			m.confirmDelete(r)
		}
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		m.info = "Reloading recipes..."
		return m, reloadCmd(m.store)
	case msg.Type == tea.KeyEsc:
		m.error = ""
		m.info = ""
	}
	return m, nil
}

func (m Model) handleRecipeDetailNav(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		m.screen = model.ScreenRecipes
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.screen = model.ScreenRecipes
		m.detail = nil
	case key.Matches(msg, m.keys.Down):
		m.detail.ScrollDown()
	case key.Matches(msg, m.keys.Up):
		m.detail.ScrollUp()
	case key.Matches(msg, m.keys.Edit):
		return m.openForm(form.OpenEdit(m.nextSessionID(), m.detail.Recipe()))
	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete(m.detail.Recipe())
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	var breadcrumbParts []string
	switch m.screen {
	case model.ScreenRecipes:
		breadcrumbParts = []string{"Recipes"}
	case model.ScreenRecipeDetail:
		breadcrumbParts = []string{"Recipes", "Detail"}
		if m.detail != nil {
			breadcrumbParts = []string{"Recipes", m.detail.Recipe().Title}
		}
	case model.ScreenRecipeForm:
		breadcrumbParts = []string{"Recipes", "New"}
		if m.form != nil && m.form.session.Mode == model.FormEdit {
			breadcrumbParts = []string{"Recipes", "Edit"}
		}
	}

	header := renderHeader(breadcrumbParts, m.loading, m.width)
	footer := RenderHelp(m.screen, m.mode, m.width)

	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		style := SuccessStyle
		if m.pendingDelete != nil {
			style = WarnStyle
		}
		banners = append(banners, style.Width(m.width).Render(m.info))
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	for _, b := range banners {
		contentHeight -= lipgloss.Height(b)
	}
	contentHeight = max(3, contentHeight)

	var content string
	switch m.screen {
	case model.ScreenRecipes:
		content = m.renderRecipes(contentHeight)
	case model.ScreenRecipeDetail:
		if m.detail != nil {
			content = m.detail.View(m.width, contentHeight)
		}
	case model.ScreenRecipeForm:
		if m.form != nil {
			content = m.form.View(m.width, contentHeight)
		}
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	parts := append([]string{header}, banners...)
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderRecipes(height int) string {
	_, total := m.recipes.Counts()
	if m.loading && total == 0 {
		return EmptyStateStyle.Width(m.width).Render("Loading recipes...")
	}

	var bar string
	switch {
	case m.mode == model.ModeSearch:
		bar = m.search.View()
	case strings.TrimSpace(m.recipes.Filter().Search) != "":
		bar = HelpKeyStyle.Render("/ ") + NormalRowStyle.Render(m.recipes.Filter().Search)
	default:
		bar = MutedStyle.Render("/ search")
	}
	bar = lipgloss.NewStyle().Padding(0, 1).Render(bar)

	return lipgloss.JoinVertical(lipgloss.Left, bar, m.recipes.View(m.width, height-lipgloss.Height(bar)))
}

func renderHeader(breadcrumbParts []string, loading bool, width int) string {
	title := HeaderStyle.Render("recipebox")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "
	if loading {
		right = BreadcrumbStyle.Render("loading…") + "  " + right
	}

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func reloadCmd(store RecipeStore) tea.Cmd {
	return func() tea.Msg {
		recipes, err := store.Reload(context.Background())
		return model.RecipesLoadedMsg{Recipes: recipes, Sample: store.IsSample(), Err: err}
	}
}

func deleteCmd(store RecipeStore, r model.Recipe) tea.Cmd {
	return func() tea.Msg {
		recipes, err := store.Delete(context.Background(), r.ID)
		return model.RecipeDeletedMsg{
			ID:      r.ID,
			Title:   r.Title,
			Recipes: recipes,
			Sample:  store.IsSample(),
			Err:     err,
		}
	}
}
