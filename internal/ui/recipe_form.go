package ui

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"recipebox/internal/form"
	"recipebox/internal/model"
	"recipebox/internal/recipe"
	"recipebox/internal/util"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecipeSubmitter sends a form session to the API.
type RecipeSubmitter interface {
	Submit(ctx context.Context, s form.Session) (form.Result, error)
}

// submitDoneMsg reports the outcome of a submit dispatched for a session.
type submitDoneMsg struct {
	sessionID uint64
	mode      model.FormMode
	result    form.Result
	err       error
}

// previewLoadedMsg carries an image file read for a session's preview.
type previewLoadedMsg struct {
	sessionID uint64
	path      string
	preview   form.Preview
	err       error
}

const (
	fieldTitle = iota
	fieldDescription
	fieldCategories
	fieldDuration
	fieldDifficulty
	fieldDiet
	fieldCuisine
	fieldImage
	fieldImageFile
	fieldTags
	fieldSteps
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title *",
	"Description",
	"Categories *",
	"Time",
	"Difficulty",
	"Diet",
	"Cuisine",
	"Image URL",
	"Image file",
	"Tags *",
	"Steps",
}

// RecipeFormModel represents the add/edit recipe form.
type RecipeFormModel struct {
	submitter    RecipeSubmitter
	session      form.Session
	inputs       []textinput.Model
	steps        textarea.Model
	focusedField int
	keys         FormKeyMap

	spinner    spinner.Model
	submitting bool
	previewing bool
	thumbnail  image.Image
	error      string
}

// NewRecipeFormModel creates a form for session s.
func NewRecipeFormModel(submitter RecipeSubmitter, s form.Session) *RecipeFormModel {
	inputs := make([]textinput.Model, fieldSteps)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Prompt = ""
		inputs[i].CharLimit = 200
	}

	inputs[fieldTitle].Placeholder = "Recipe title"
	inputs[fieldDescription].Placeholder = "Short description"
	inputs[fieldDescription].CharLimit = 500
	inputs[fieldCategories].Placeholder = "dinner, snack"
	inputs[fieldDuration].Placeholder = "25 mins"
	inputs[fieldDuration].CharLimit = 40
	inputs[fieldDifficulty].Placeholder = "Easy, Medium or Hard"
	inputs[fieldDifficulty].CharLimit = 40
	inputs[fieldDiet].Placeholder = "vegetarian or non-vegetarian"
	inputs[fieldDiet].CharLimit = 40
	inputs[fieldCuisine].Placeholder = "indian, italian, asian"
	inputs[fieldCuisine].CharLimit = 40
	inputs[fieldImage].Placeholder = "https://..."
	inputs[fieldImage].CharLimit = 2000
	inputs[fieldImageFile].Placeholder = "path to a local image, enter to attach"
	inputs[fieldImageFile].CharLimit = 1000
	inputs[fieldTags].Placeholder = "quick, comfort"

	d := s.Draft
	inputs[fieldTitle].SetValue(d.Title)
	inputs[fieldDescription].SetValue(d.Description)
	inputs[fieldCategories].SetValue(strings.Join(d.Categories, ", "))
	inputs[fieldDuration].SetValue(d.Duration)
	inputs[fieldDifficulty].SetValue(d.Difficulty)
	inputs[fieldDiet].SetValue(d.Diet)
	inputs[fieldCuisine].SetValue(d.Cuisine)
	inputs[fieldImage].SetValue(d.Image)
	inputs[fieldTags].SetValue(d.Tags)
	if s.File != nil {
		inputs[fieldImageFile].SetValue(s.File.Path)
	}
	inputs[fieldTitle].Focus()

	steps := textarea.New()
	steps.Placeholder = "One step per line"
	steps.ShowLineNumbers = true
	steps.CharLimit = 5000
	steps.SetHeight(6)
	steps.SetValue(d.Steps)
	steps.Blur()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return &RecipeFormModel{
		submitter: submitter,
		session:   s,
		inputs:    inputs,
		steps:     steps,
		keys:      DefaultFormKeyMap(),
		spinner:   sp,
	}
}

// SessionID returns the id of the session the form edits.
func (m *RecipeFormModel) SessionID() uint64 {
	return m.session.ID
}

// Session returns the session with the current field values.
func (m *RecipeFormModel) Session() form.Session {
	return m.session.WithDraft(m.draft())
}

// Submitting reports whether a submit is in flight.
func (m *RecipeFormModel) Submitting() bool {
	return m.submitting
}

func (m *RecipeFormModel) draft() form.Draft {
	return form.Draft{
		Title:       m.inputs[fieldTitle].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Categories:  recipe.SplitComma(m.inputs[fieldCategories].Value()),
		Duration:    strings.TrimSpace(m.inputs[fieldDuration].Value()),
		Difficulty:  strings.TrimSpace(m.inputs[fieldDifficulty].Value()),
		Diet:        strings.TrimSpace(m.inputs[fieldDiet].Value()),
		Cuisine:     strings.TrimSpace(m.inputs[fieldCuisine].Value()),
		Image:       strings.TrimSpace(m.inputs[fieldImage].Value()),
		Tags:        m.inputs[fieldTags].Value(),
		Steps:       m.steps.Value(),
	}
}

// Update handles input.
func (m RecipeFormModel) Update(msg tea.Msg) (RecipeFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.submitting && !m.previewing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.focusedField == fieldSteps {
		m.steps, cmd = m.steps.Update(msg)
	} else {
		m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	}
	return m, cmd
}

func (m RecipeFormModel) handleKey(msg tea.KeyMsg) (RecipeFormModel, tea.Cmd) {
	if key.Matches(msg, m.keys.Cancel) {
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	}
	if m.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Save):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		return m, m.focus(m.focusedField + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, m.focus(m.focusedField - 1)
	case key.Matches(msg, m.keys.Attach) && m.focusedField == fieldImageFile:
		return m.attach()
	case msg.Type == tea.KeyEnter && m.focusedField != fieldSteps:
		return m, m.focus(m.focusedField + 1)
	}

	var cmd tea.Cmd
	if m.focusedField == fieldSteps {
		m.steps, cmd = m.steps.Update(msg)
	} else {
		m.inputs[m.focusedField], cmd = m.inputs[m.focusedField].Update(msg)
	}
	return m, cmd
}

func (m *RecipeFormModel) focus(field int) tea.Cmd {
	if m.focusedField == fieldSteps {
		m.steps.Blur()
	} else {
		m.inputs[m.focusedField].Blur()
	}
	m.focusedField = (field%fieldCount + fieldCount) % fieldCount
	if m.focusedField == fieldSteps {
		return m.steps.Focus()
	}
	return m.inputs[m.focusedField].Focus()
}

func (m RecipeFormModel) submit() (RecipeFormModel, tea.Cmd) {
	s := m.Session()
	if errs := s.Validate(); len(errs) > 0 {
		m.session = s.WithErrors(errs)
		m.error = ""
		return m, nil
	}
	m.session = s.WithErrors(nil)
	m.error = ""
	m.submitting = true
	return m, tea.Batch(m.spinner.Tick, submitCmd(m.submitter, m.session))
}

func (m RecipeFormModel) attach() (RecipeFormModel, tea.Cmd) {
	path := expandHome(strings.TrimSpace(m.inputs[fieldImageFile].Value()))
	if path == "" {
		m.error = "Enter the path of an image file to attach."
		return m, nil
	}
	m.session = m.session.WithImageFile(form.NewImageFile(path))
	m.previewing = true
	m.error = ""
	return m, tea.Batch(m.spinner.Tick, previewCmd(m.session.ID, path))
}

// applyPreview shows a preview read for this session.
func (m *RecipeFormModel) applyPreview(msg previewLoadedMsg) {
	m.previewing = false
	if msg.err != nil {
		m.session.File = nil
		m.thumbnail = nil
		m.error = fmt.Sprintf("Could not read %s: %v", filepath.Base(msg.path), msg.err)
		return
	}
	m.session = m.session.WithPreview(msg.preview.DataURL)
	m.thumbnail = msg.preview.Thumbnail
	m.error = ""
}

// submitFailed keeps the form open with the error shown.
func (m *RecipeFormModel) submitFailed(err error) {
	m.submitting = false
	m.error = "Could not save recipe: " + err.Error()
}

// showErrors shows validation messages returned for a submit.
func (m *RecipeFormModel) showErrors(msgs []string) {
	m.submitting = false
	m.session = m.session.WithErrors(msgs)
}

func submitCmd(submitter RecipeSubmitter, s form.Session) tea.Cmd {
	return func() tea.Msg {
		res, err := submitter.Submit(context.Background(), s)
		return submitDoneMsg{sessionID: s.ID, mode: s.Mode, result: res, err: err}
	}
}

func previewCmd(sessionID uint64, path string) tea.Cmd {
	return func() tea.Msg {
		p, err := form.ReadPreview(path)
		return previewLoadedMsg{sessionID: sessionID, path: path, preview: p, err: err}
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// View renders the form.
func (m *RecipeFormModel) View(width, height int) string {
	previewWidth := 0
	if width >= 100 {
		previewWidth = min(48, width/3)
	}
	fieldWidth := width - previewWidth - 8 - formLabelWidth - 2
	for i := range m.inputs {
		m.inputs[i].Width = max(10, fieldWidth)
	}
	m.steps.SetWidth(max(10, fieldWidth))

	fields := make([]string, 0, fieldCount+4)
	title := "New recipe"
	if m.session.Mode == model.FormEdit {
		title = fmt.Sprintf("Edit recipe #%d", m.session.TargetID)
	}
	fields = append(fields, LabelStyle.Render(title), "")
	for i := 0; i < fieldSteps; i++ {
		fields = append(fields, renderFormField(fieldLabels[i], m.inputs[i], m.focusedField == i))
	}
	fields = append(fields, renderFormArea(fieldLabels[fieldSteps], m.steps, m.focusedField == fieldSteps))

	if len(m.session.Errors) > 0 {
		fields = append(fields, "")
		for _, e := range m.session.Errors {
			fields = append(fields, ErrorStyle.Render("• "+e))
		}
	}
	if m.error != "" {
		fields = append(fields, "", ErrorStyle.Render(m.error))
	}
	switch {
	case m.submitting:
		fields = append(fields, "", m.spinner.View()+" "+MutedStyle.Render("Saving recipe..."))
	case m.previewing:
		fields = append(fields, "", m.spinner.View()+" "+MutedStyle.Render("Reading image..."))
	}

	left := strings.Join(fields, "\n")
	if previewWidth == 0 {
		return PanelStyle.Width(width - 4).Render(left)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		PanelStyle.Width(width-previewWidth-4).Render(left),
		m.renderPreview(previewWidth, height-2),
	)
}

func (m *RecipeFormModel) renderPreview(width, height int) string {
	lines := []string{LabelStyle.Render("Preview")}
	switch {
	case m.thumbnail != nil:
		lines = append(lines, renderThumbnail(m.thumbnail, width-6, max(4, height-8)))
		if m.session.File != nil {
			lines = append(lines, MutedStyle.Render(util.TruncateString(m.session.File.Name, width-6)))
		}
	case m.session.Preview != "":
		lines = append(lines, MutedStyle.Width(width-6).Render(util.TruncateString(m.session.Preview, (width-6)*3)))
	default:
		lines = append(lines, MutedStyle.Render("No image"))
	}
	return PanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}
