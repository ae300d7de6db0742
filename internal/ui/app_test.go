package ui

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"recipebox/internal/form"
	"recipebox/internal/model"
	"recipebox/internal/recipe"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu        sync.Mutex
	recipes   []model.Recipe
	sample    bool
	reloadErr error
	deleteErr error
	reloads   int
	deleted   []int64
}

func (s *fakeStore) Recipes() []model.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Recipe(nil), s.recipes...)
}

func (s *fakeStore) IsSample() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sample
}

func (s *fakeStore) Reload(ctx context.Context) ([]model.Recipe, error) {
	s.mu.Lock()
	s.reloads++
	err := s.reloadErr
	if err != nil {
		s.recipes = recipe.SampleRecipes()
		s.sample = true
	}
	s.mu.Unlock()
	return s.Recipes(), err
}

func (s *fakeStore) Delete(ctx context.Context, id int64) ([]model.Recipe, error) {
	s.mu.Lock()
	if s.deleteErr != nil {
		s.mu.Unlock()
		return s.Recipes(), s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	kept := s.recipes[:0:0]
	for _, r := range s.recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.recipes = kept
	s.mu.Unlock()
	return s.Recipes(), nil
}

type fakeSubmitter struct {
	mu       sync.Mutex
	sessions []form.Session
	err      error
}

func (f *fakeSubmitter) Submit(ctx context.Context, s form.Session) (form.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, s)
	if f.err != nil {
		return form.Result{}, f.err
	}
	return form.Result{SessionID: s.ID, Mode: s.Mode, RecipeID: 42, Payload: s.Payload("", "http://api.test")}, nil
}

func newTestModel(t *testing.T) (Model, *fakeStore, *fakeSubmitter) {
	t.Helper()
	st := &fakeStore{recipes: recipe.SampleRecipes()}
	sub := &fakeSubmitter{}
	m := New(Options{
		Store:     st,
		Submitter: sub,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ConfigDir: t.TempDir(),
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	m = send(t, m, model.RecipesLoadedMsg{Recipes: st.Recipes()})
	return m, st, sub
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

// runCmd executes cmd and flattens batches into the messages they produce.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T among %d messages", zero, len(msgs))
	return zero
}

func TestInit_LoadsRecipes(t *testing.T) {
	st := &fakeStore{recipes: recipe.SampleRecipes()[:2]}
	m := New(Options{Store: st, Submitter: &fakeSubmitter{}})
	assert.True(t, m.loading)

	msg := findMsg[model.RecipesLoadedMsg](t, runCmd(m.Init()))
	assert.Len(t, msg.Recipes, 2)
	assert.Equal(t, 1, st.reloads)

	m = send(t, m, msg)
	assert.False(t, m.loading)
	_, total := m.recipes.Counts()
	assert.Equal(t, 2, total)
}

func TestRecipesLoaded_FallbackShowsError(t *testing.T) {
	m, st, _ := newTestModel(t)
	st.reloadErr = errors.New("connection refused")

	m, cmd := press(t, m, "r")
	assert.True(t, m.loading)
	m = send(t, m, findMsg[model.RecipesLoadedMsg](t, runCmd(cmd)))

	assert.Contains(t, m.error, "showing samples")
	assert.True(t, m.recipes.sample)
	assert.Contains(t, m.View(), "sample recipes")
}

func TestSearchAndFacets(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "/")
	assert.Equal(t, model.ModeSearch, m.mode)
	m, _ = press(t, m, "g", "a", "r", "l", "i", "c")
	assert.Equal(t, "garlic", m.recipes.Filter().Search)
	shown, _ := m.recipes.Counts()
	assert.Equal(t, 1, shown)

	m, _ = press(t, m, "enter")
	assert.Equal(t, model.ModeNav, m.mode)
	assert.Equal(t, "garlic", m.recipes.Filter().Search, "search survives leaving the box")

	m, _ = press(t, m, "/", "esc")
	assert.Equal(t, model.ModeNav, m.mode)

	m, _ = press(t, m, "]")
	assert.Equal(t, "breakfast", m.recipes.Filter().Category)
	assert.Equal(t, "Category: Breakfast", m.info)

	m, _ = press(t, m, "[", "3")
	assert.Equal(t, []string{"indian"}, m.recipes.Filter().Extras)
	assert.Equal(t, "Indian filter on", m.info)

	m, _ = press(t, m, "x")
	assert.Empty(t, m.recipes.Filter().Extras)
	assert.Equal(t, "Filters cleared", m.info)
}

func TestFilterSurvivesReload(t *testing.T) {
	m, st, _ := newTestModel(t)
	m, _ = press(t, m, "]", "]", "]") // dinner

	m, cmd := press(t, m, "r")
	m = send(t, m, findMsg[model.RecipesLoadedMsg](t, runCmd(cmd)))

	assert.Equal(t, "dinner", m.recipes.Filter().Category)
	assert.Equal(t, 1, st.reloads)
	shown, total := m.recipes.Counts()
	assert.Equal(t, 2, shown)
	assert.Equal(t, 6, total)
}

func TestDetailNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "j", "enter")
	require.Equal(t, model.ScreenRecipeDetail, m.screen)
	assert.Equal(t, "Berry Yogurt Bowl", m.detail.Recipe().Title)
	assert.Contains(t, m.View(), "Spoon yogurt into a bowl.")

	m, _ = press(t, m, "esc")
	assert.Equal(t, model.ScreenRecipes, m.screen)
	assert.Nil(t, m.detail)
}

func TestMovement_GG(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "G")
	assert.Equal(t, 5, m.recipes.cursor)
	m, _ = press(t, m, "g")
	assert.Equal(t, 5, m.recipes.cursor, "single g waits for the second")
	m, _ = press(t, m, "g")
	assert.Equal(t, 0, m.recipes.cursor)

	m, _ = press(t, m, "G", "g", "j", "g")
	assert.Equal(t, 5, m.recipes.cursor, "interrupted gg does nothing")
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	m, st, _ := newTestModel(t)

	m, cmd := press(t, m, "d")
	assert.Nil(t, cmd)
	require.NotNil(t, m.pendingDelete)
	assert.Equal(t, `Delete recipe? This will remove "Creamy Garlic Pasta". (y/n)`, m.info)

	m, cmd = press(t, m, "n")
	assert.Nil(t, cmd)
	assert.Nil(t, m.pendingDelete)
	assert.Equal(t, "Delete cancelled", m.info)
	assert.Empty(t, st.deleted)

	m, _ = press(t, m, "enter", "d")
	require.Equal(t, model.ScreenRecipeDetail, m.screen)
	m, cmd = press(t, m, "y")
	require.NotNil(t, cmd)

	msg := findMsg[model.RecipeDeletedMsg](t, runCmd(cmd))
	assert.Equal(t, []int64{1}, st.deleted)

	m = send(t, m, msg)
	assert.Equal(t, model.ScreenRecipes, m.screen)
	assert.Equal(t, `Deleted "Creamy Garlic Pasta"`, m.info)
	_, total := m.recipes.Counts()
	assert.Equal(t, 5, total)
}

func TestDelete_FailureKeepsCollection(t *testing.T) {
	m, st, _ := newTestModel(t)
	st.deleteErr = errors.New("status 500")

	m, cmd := press(t, m, "d", "y")
	m = send(t, m, findMsg[model.RecipeDeletedMsg](t, runCmd(cmd)))

	assert.Contains(t, m.error, "Could not delete recipe")
	_, total := m.recipes.Counts()
	assert.Equal(t, 6, total)
}

func TestForm_OpenAndCancel(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "a")
	require.NotNil(t, m.form)
	assert.Equal(t, model.ScreenRecipeForm, m.screen)
	assert.Equal(t, model.ModeInsert, m.mode)
	assert.Equal(t, uint64(1), m.form.SessionID())
	assert.Equal(t, "dinner", m.form.inputs[fieldCategories].Value())
	assert.Contains(t, m.View(), "New recipe")

	m, cmd := press(t, m, "esc")
	m = send(t, m, findMsg[model.FormCancelledMsg](t, runCmd(cmd)))
	assert.Nil(t, m.form)
	assert.Equal(t, model.ScreenRecipes, m.screen)
	assert.Equal(t, model.ModeNav, m.mode)

	m, _ = press(t, m, "e")
	require.NotNil(t, m.form)
	assert.Equal(t, uint64(2), m.form.SessionID(), "every open gets a new session")
	assert.Equal(t, "Creamy Garlic Pasta", m.form.inputs[fieldTitle].Value())
	assert.Equal(t, "Cook linguine until al dente.\nSaute garlic in butter and olive oil.\nAdd cream and parmesan, then toss pasta.\nFinish with herbs and pepper.", m.form.steps.Value())
}

func TestForm_ValidationNeverSubmits(t *testing.T) {
	m, _, sub := newTestModel(t)

	m, _ = press(t, m, "a")
	m, cmd := press(t, m, "ctrl+s")

	assert.Nil(t, cmd)
	assert.Equal(t, []string{form.MsgTitleRequired, form.MsgTagRequired}, m.form.session.Errors)
	assert.False(t, m.form.Submitting())
	assert.Empty(t, sub.sessions)
	assert.Contains(t, m.View(), form.MsgTitleRequired)
}

func TestForm_SubmitSuccessClosesAndReloads(t *testing.T) {
	m, st, sub := newTestModel(t)

	m, _ = press(t, m, "a", "S", "o", "u", "p")
	m.form.inputs[fieldTags].SetValue("warm, quick")
	m.form.steps.SetValue("chop\nsimmer")

	m, cmd := press(t, m, "ctrl+s")
	require.True(t, m.form.Submitting())
	done := findMsg[submitDoneMsg](t, runCmd(cmd))
	require.Len(t, sub.sessions, 1)
	assert.Equal(t, "Soup", sub.sessions[0].Draft.Title)
	assert.Equal(t, []string{"chop", "simmer"}, sub.sessions[0].Steps())

	next, cmd := m.Update(done)
	m = next.(Model)
	assert.Nil(t, m.form)
	assert.Equal(t, model.ScreenRecipes, m.screen)
	assert.Equal(t, `Saved "Soup"`, m.info)

	findMsg[model.RecipesLoadedMsg](t, runCmd(cmd))
	assert.Equal(t, 1, st.reloads)
}

func TestForm_TransportFailureKeepsFormOpen(t *testing.T) {
	m, st, sub := newTestModel(t)
	sub.err = errors.New("create recipe: API error: status 500")

	m, _ = press(t, m, "a", "P", "i", "e")
	m.form.inputs[fieldTags].SetValue("sweet")
	m, cmd := press(t, m, "ctrl+s")

	next, cmd := m.Update(findMsg[submitDoneMsg](t, runCmd(cmd)))
	m = next.(Model)
	assert.Nil(t, cmd)
	require.NotNil(t, m.form)
	assert.False(t, m.form.Submitting())
	assert.Contains(t, m.form.error, "status 500")
	assert.Equal(t, "Pie", m.form.inputs[fieldTitle].Value(), "draft is kept")
	assert.Equal(t, 0, st.reloads)
}

func TestForm_StaleResultsAreDropped(t *testing.T) {
	m, st, _ := newTestModel(t)

	m, _ = press(t, m, "a", "A")
	m.form.inputs[fieldTags].SetValue("t")
	m, cmd := press(t, m, "ctrl+s")
	first := findMsg[submitDoneMsg](t, runCmd(cmd))

	// Close the first form and open a second one before the result lands.
	m = send(t, m, model.FormCancelledMsg{})
	m, _ = press(t, m, "a")
	require.Equal(t, uint64(2), m.form.SessionID())

	next, cmd := m.Update(first)
	m = next.(Model)
	require.NotNil(t, m.form, "the second form stays open")
	assert.Equal(t, uint64(2), m.form.SessionID())
	assert.Empty(t, m.info)

	findMsg[model.RecipesLoadedMsg](t, runCmd(cmd))
	assert.Equal(t, 1, st.reloads, "the mutation still reloads the store")

	stale := submitDoneMsg{sessionID: 1, err: errors.New("boom")}
	m = send(t, m, stale)
	assert.Empty(t, m.form.error)

	m = send(t, m, previewLoadedMsg{sessionID: 1, path: "/tmp/x.png", preview: form.Preview{DataURL: "data:image/png;base64,AA"}})
	assert.Empty(t, m.form.session.Preview)
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for x := 0; x < 16; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(y * 30), B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, "dish.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestForm_AttachImageFile(t *testing.T) {
	m, _, _ := newTestModel(t)
	path := writePNG(t, t.TempDir())

	m, _ = press(t, m, "a")
	m.form.focus(fieldImageFile)
	m.form.inputs[fieldImageFile].SetValue(path)

	m, cmd := press(t, m, "enter")
	require.NotNil(t, m.form.session.File)
	assert.Equal(t, "dish.png", m.form.session.File.Name)

	m = send(t, m, findMsg[previewLoadedMsg](t, runCmd(cmd)))
	assert.True(t, strings.HasPrefix(m.form.session.Preview, "data:image/png;base64,"))
	assert.NotNil(t, m.form.thumbnail)
	assert.Contains(t, m.View(), "dish.png")

	m.form.inputs[fieldImageFile].SetValue(filepath.Join(t.TempDir(), "missing.png"))
	m, cmd = press(t, m, "enter")
	m = send(t, m, findMsg[previewLoadedMsg](t, runCmd(cmd)))
	assert.Nil(t, m.form.session.File)
	assert.Contains(t, m.form.error, "Could not read missing.png")
}

func TestColumnPrefsPersist(t *testing.T) {
	dir := t.TempDir()
	st := &fakeStore{recipes: recipe.SampleRecipes()}
	m := New(Options{Store: st, Submitter: &fakeSubmitter{}, ConfigDir: dir})
	m = send(t, m, model.RecipesLoadedMsg{Recipes: st.Recipes()})

	m, _ = press(t, m, "tab", "c")
	assert.Equal(t, "col TITLE", m.info)

	again := New(Options{Store: st, Submitter: &fakeSubmitter{}, ConfigDir: dir})
	assert.Equal(t, []string{"category"}, again.recipes.Prefs().HiddenColumns)

	m, _ = press(t, m, "C")
	again = New(Options{Store: st, Submitter: &fakeSubmitter{}, ConfigDir: dir})
	assert.Empty(t, again.recipes.Prefs().HiddenColumns)
}

func TestHelpAndQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "?")
	assert.True(t, m.showingHelp)
	assert.Contains(t, m.View(), "Filtering")
	m, _ = press(t, m, "esc")
	assert.False(t, m.showingHelp)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
