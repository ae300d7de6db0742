package ui

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"recipebox/internal/model"
	"recipebox/internal/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(rs []model.Recipe) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Title)
	}
	return out
}

func TestRecipesModel_Filtering(t *testing.T) {
	m := NewRecipesModel(recipe.SampleRecipes())

	shown, total := m.Counts()
	assert.Equal(t, 6, shown)
	assert.Equal(t, 6, total)

	assert.Equal(t, "Breakfast", m.NextCategory())
	assert.Equal(t, []string{"Berry Yogurt Bowl"}, titles(m.rows))

	assert.Equal(t, "All", m.PrevCategory())
	assert.Equal(t, "Snack", m.PrevCategory(), "wraps around")
	assert.Empty(t, m.rows)
	m.NextCategory()

	label, on, ok := m.ToggleFacet(4)
	require.True(t, ok)
	assert.Equal(t, "Italian", label)
	assert.True(t, on)
	assert.Equal(t, []string{"Creamy Garlic Pasta", "Roasted Veggie Quinoa"}, titles(m.rows))

	m.SetSearch("QUINOA")
	assert.Equal(t, []string{"Roasted Veggie Quinoa"}, titles(m.rows))

	_, on, _ = m.ToggleFacet(4)
	assert.False(t, on)
	assert.False(t, m.ClearFacets(), "nothing left to clear")

	_, _, ok = m.ToggleFacet(9)
	assert.False(t, ok)

	m.ToggleFacet(2)
	assert.Empty(t, m.rows, "all samples are vegetarian")
	assert.True(t, m.ClearFacets())
	assert.Len(t, m.rows, 1)
}

func TestRecipesModel_SetRecipesKeepsFilterAndSelection(t *testing.T) {
	m := NewRecipesModel(recipe.SampleRecipes())
	m.SetSearch("a")
	m.MoveDown()
	selected, ok := m.Selected()
	require.True(t, ok)

	reloaded := recipe.SampleRecipes()
	reloaded = append(reloaded[:2], reloaded[3:]...) // drop id 3
	m.SetRecipes(reloaded, true)

	assert.Equal(t, "a", m.Filter().Search)
	again, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, selected.ID, again.ID)
	assert.True(t, m.sample)

	m.SetRecipes(nil, false)
	_, ok = m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(100, 20), "No recipes yet")
}

func TestRecipesModel_FilterIsACopy(t *testing.T) {
	m := NewRecipesModel(recipe.SampleRecipes())
	m.ToggleFacet(1)
	f := m.Filter()
	f.Extras[0] = "changed"
	assert.Equal(t, []string{"vegetarian"}, m.Filter().Extras)
}

func TestRecipesModel_Columns(t *testing.T) {
	m := NewRecipesModel(recipe.SampleRecipes())

	m.NextColumn()
	assert.Equal(t, "col CATEGORY", m.TableMeta())
	require.True(t, m.HideActiveColumn())
	assert.Equal(t, "col TITLE", m.TableMeta(), "falls back to the first visible column")

	m.NextColumn()
	assert.Equal(t, "col TIME", m.TableMeta(), "skips hidden columns")

	prefs := m.Prefs()
	assert.Equal(t, []string{"category"}, prefs.HiddenColumns)
	assert.Equal(t, "duration", prefs.ActiveColumn)

	m.PrevColumn()
	assert.Equal(t, "col TITLE", m.TableMeta())

	other := NewRecipesModel(nil)
	other.ApplyPrefs(prefs)
	assert.Equal(t, prefs, other.Prefs())

	for i := 0; i < len(m.columns); i++ {
		m.HideActiveColumn()
	}
	assert.Len(t, m.visibleColumnIndexes(), 1, "last column stays visible")
	assert.False(t, m.HideActiveColumn())

	m.ShowAllColumns()
	assert.Len(t, m.visibleColumnIndexes(), len(m.columns))
}

func TestRecipesModel_Movement(t *testing.T) {
	m := NewRecipesModel(recipe.SampleRecipes())

	m.MoveUp()
	assert.Equal(t, 0, m.cursor)
	m.JumpToBottom()
	assert.Equal(t, 5, m.cursor)
	m.MoveDown()
	assert.Equal(t, 5, m.cursor)
	m.HalfPageUp(6)
	assert.Equal(t, 2, m.cursor)
	m.HalfPageDown(20)
	assert.Equal(t, 5, m.cursor)
	m.JumpToTop()
	assert.Equal(t, 0, m.cursor)
}

func TestRecipesModel_View(t *testing.T) {
	m := NewRecipesModel(recipe.SampleRecipes())
	out := m.View(140, 20)

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Creamy Garlic Pasta")
	assert.Contains(t, out, "6/6 recipes")
	assert.Contains(t, out, "Vegetarian")

	m.SetSearch("nothing matches this")
	assert.Contains(t, m.View(140, 20), "No recipes match")
	assert.Contains(t, m.View(140, 20), "0/6 recipes")
}

func TestUIPreferences_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := prefsPath(dir)
	assert.Equal(t, filepath.Join(dir, "ui_prefs.json"), path)

	prefs, err := loadUIPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, UIPreferences{}, prefs)

	want := UIPreferences{Recipes: TablePrefs{HiddenColumns: []string{"tags"}, ActiveColumn: "diet"}}
	require.NoError(t, saveUIPreferences(path, want))

	got, err := loadUIPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.NoError(t, saveUIPreferences("", want), "empty path disables persistence")
}

func TestRenderThumbnail(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: 80, B: 40, A: 255})
		}
	}

	assert.NotEmpty(t, renderThumbnail(img, 20, 10))
	assert.Empty(t, renderThumbnail(nil, 20, 10))
	assert.Empty(t, renderThumbnail(img, 0, 10))
}
