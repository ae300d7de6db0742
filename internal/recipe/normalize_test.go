package recipe

import (
	"encoding/json"
	"testing"

	"recipebox/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "https://h"

func decodeRaw(t *testing.T, body string) model.RawRecipe {
	t.Helper()
	var raw model.RawRecipe
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestNormalize_Defaults(t *testing.T) {
	r := Normalize(decodeRaw(t, `{}`), testOrigin)

	assert.Equal(t, int64(0), r.ID)
	assert.Equal(t, "Untitled", r.Title)
	assert.Equal(t, "", r.Description)
	assert.Equal(t, "dinner", r.Category)
	assert.Equal(t, []string{}, r.Categories)
	assert.Equal(t, "N/A", r.Duration)
	assert.Equal(t, "Easy", r.Difficulty)
	assert.Equal(t, "vegetarian", r.Diet)
	assert.Equal(t, "", r.Cuisine)
	assert.Equal(t, "", r.Image)
	assert.Equal(t, []string{}, r.Tags)
	assert.Equal(t, []string{}, r.Steps)
}

func TestNormalize_MalformedFields(t *testing.T) {
	r := Normalize(decodeRaw(t, `{
		"id": "42",
		"title": null,
		"categories": "dessert",
		"tags": {"a": 1},
		"steps": 7,
		"diet": false
	}`), testOrigin)

	assert.Equal(t, int64(42), r.ID)
	assert.Equal(t, "Untitled", r.Title)
	assert.Equal(t, []string{}, r.Categories, "non-array categories are dropped, not merged with category")
	assert.Equal(t, []string{}, r.Tags)
	assert.Equal(t, []string{}, r.Steps)
	assert.Equal(t, "vegetarian", r.Diet)
}

func TestNormalize_StepsAsString(t *testing.T) {
	r := Normalize(decodeRaw(t, `{"steps": "  Boil water \r\n\n Add pasta\n  "}`), testOrigin)
	assert.Equal(t, []string{"Boil water", "Add pasta"}, r.Steps)
}

func TestNormalize_ImagePreference(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"image_url wins", `{"image": "https://cdn/a.png", "image_url": "/img/b.png"}`, "https://h/img/b.png"},
		{"image fallback", `{"image": "/img/a.png"}`, "https://h/img/a.png"},
		{"absolute kept", `{"image_url": "http://other/x.jpg"}`, "http://other/x.jpg"},
		{"none", `{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(decodeRaw(t, tt.body), testOrigin).Image)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"id": 3, "title": "Soup", "categories": ["lunch", "dinner"], "tags": ["hot"], "steps": "a\nb", "image": "/x.png"}`,
		`{"id": "7", "image_url": "/u/1.png", "image": "https://elsewhere/2.png", "steps": ["one", "two"]}`,
		`{"title": "", "category": "", "diet": "non-vegetarian", "cuisine": "asian", "tags": [1, "two", null]}`,
	}
	for _, body := range bodies {
		once := Normalize(decodeRaw(t, body), testOrigin)
		twice := Normalize(once.Raw(), testOrigin)
		assert.Equal(t, once, twice, body)
	}
}

func TestNormalizeImageURL(t *testing.T) {
	assert.Equal(t, "https://h/img/x.png", NormalizeImageURL("/img/x.png", "https://h"))
	assert.Equal(t, "https://h/img/x.png", NormalizeImageURL("/img/x.png", "https://h/"))
	assert.Equal(t, "https://h/img/x.png", NormalizeImageURL("img/x.png", "https://h"))
	assert.Equal(t, "https://cdn.example/x.png", NormalizeImageURL("https://cdn.example/x.png", "https://h"))
	assert.Equal(t, "http://cdn.example/x.png", NormalizeImageURL("http://cdn.example/x.png", "https://h"))
	assert.Equal(t, "", NormalizeImageURL("", "https://h"))
	assert.Equal(t, "data:image/png;base64,AA", NormalizeImageURL("data:image/png;base64,AA", "https://h"))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/a.png"))
	assert.True(t, IsValidURL("ftp://files.example.com/a.png"))
	assert.False(t, IsValidURL("/relative/a.png"))
	assert.False(t, IsValidURL("example.com/a.png"))
	assert.False(t, IsValidURL("not a url"))
	assert.False(t, IsValidURL("https://"))
}

func TestPrimaryCategory(t *testing.T) {
	assert.Equal(t, "", PrimaryCategory(nil))
	assert.Equal(t, "lunch", PrimaryCategory(&model.Recipe{Category: "dinner", Categories: []string{"lunch", "snack"}}))
	assert.Equal(t, "dinner", PrimaryCategory(&model.Recipe{Category: "dinner"}))
}

func TestSplitHelpers(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitComma("a, b"))
	assert.Equal(t, []string{"a", "b"}, SplitComma(" a ,, b , "))
	assert.Equal(t, []string{}, SplitComma("  ,  "))
	assert.Equal(t, []string{"x", "y"}, SplitLines("x\r\ny\n\n"))
}

func TestSampleRecipes(t *testing.T) {
	samples := SampleRecipes()
	require.Len(t, samples, 6)

	samples[0].Tags[0] = "changed"
	assert.Equal(t, "One-pot", SampleRecipes()[0].Tags[0], "each call returns fresh data")

	for _, s := range SampleRecipes() {
		assert.Equal(t, s, Normalize(s.Raw(), testOrigin), s.Title)
	}
}
