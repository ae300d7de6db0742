package form

import (
	"testing"

	"recipebox/internal/model"
	"recipebox/internal/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAdd_Defaults(t *testing.T) {
	s := OpenAdd(7)

	assert.Equal(t, uint64(7), s.ID)
	assert.Equal(t, model.FormAdd, s.Mode)
	assert.Zero(t, s.TargetID)
	assert.Equal(t, []string{"dinner"}, s.Draft.Categories)
	assert.Equal(t, "Easy", s.Draft.Difficulty)
	assert.Equal(t, "vegetarian", s.Draft.Diet)
	assert.Equal(t, "indian", s.Draft.Cuisine)
	assert.Empty(t, s.Preview)
	assert.Nil(t, s.File)
	assert.Empty(t, s.Errors)
}

func TestOpenEdit_Hydrates(t *testing.T) {
	r := model.Recipe{
		ID: 12, Title: "Dal", Description: "Lentils", Category: "dinner",
		Duration: "30 mins", Difficulty: "Medium", Diet: "vegetarian", Cuisine: "indian",
		ImageURL: "https://h/u/dal.png",
		Tags:     []string{"a", "b"}, Steps: []string{"rinse", "boil"},
	}
	s := OpenEdit(3, r)

	assert.Equal(t, model.FormEdit, s.Mode)
	assert.Equal(t, int64(12), s.TargetID)
	assert.Equal(t, []string{"dinner"}, s.Draft.Categories, "falls back to the legacy category")
	assert.Equal(t, "https://h/u/dal.png", s.Draft.Image)
	assert.Equal(t, "https://h/u/dal.png", s.Preview)
	assert.Equal(t, "a, b", s.Draft.Tags)
	assert.Equal(t, "rinse\nboil", s.Draft.Steps)

	r.Categories = []string{"lunch", "snack"}
	s = OpenEdit(4, r)
	assert.Equal(t, []string{"lunch", "snack"}, s.Draft.Categories)
	s.Draft.Categories[0] = "changed"
	assert.Equal(t, "lunch", r.Categories[0], "categories are copied")
}

func TestValidate(t *testing.T) {
	valid := OpenAdd(1)
	valid.Draft.Title = "Soup"
	valid.Draft.Tags = "warm"

	tests := []struct {
		name   string
		mutate func(d *Draft)
		want   []string
	}{
		{"valid", func(d *Draft) {}, nil},
		{"empty title and tags", func(d *Draft) { d.Title = "  "; d.Tags = " , " }, []string{MsgTitleRequired, MsgTagRequired}},
		{"no categories", func(d *Draft) { d.Categories = nil }, []string{MsgCategoryRequired}},
		{"relative image", func(d *Draft) { d.Image = "/img/a.png" }, []string{MsgImageInvalid}},
		{"absolute image", func(d *Draft) { d.Image = "https://cdn.example/a.png" }, nil},
		{"data url image", func(d *Draft) { d.Image = "data:image/png;base64,AAAA" }, nil},
		{
			"everything missing",
			func(d *Draft) { *d = Draft{Image: "nope"} },
			[]string{MsgTitleRequired, MsgCategoryRequired, MsgTagRequired, MsgImageInvalid},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid.Draft
			d.Categories = append([]string(nil), valid.Draft.Categories...)
			tt.mutate(&d)
			assert.Equal(t, tt.want, valid.WithDraft(d).Validate())
		})
	}
}

func TestResolveImage(t *testing.T) {
	s := OpenAdd(1)
	s.Draft.Image = "https://typed/a.png"

	assert.Equal(t, "https://typed/a.png", s.ResolveImage(""))

	withPreview := s.WithPreview("https://preview/b.png")
	assert.Equal(t, "https://preview/b.png", withPreview.ResolveImage(""))

	dataPreview := s.WithPreview("data:image/png;base64,AAAA")
	assert.Equal(t, "https://typed/a.png", dataPreview.ResolveImage(""))

	withFile := dataPreview.WithImageFile(NewImageFile("/tmp/pic.png"))
	assert.Equal(t, "/uploads/c.png", withFile.ResolveImage("/uploads/c.png"))
	assert.Equal(t, "https://typed/a.png", withFile.ResolveImage(""), "empty upload url keeps the typed image")
}

func TestPayload(t *testing.T) {
	s := OpenAdd(1)
	s.Draft.Title = "  Soup  "
	s.Draft.Description = " hot "
	s.Draft.Categories = []string{"lunch", "dinner"}
	s.Draft.Tags = "a, b,,"
	s.Draft.Steps = "one\r\n\n two "
	s.Draft.Difficulty = ""

	p := s.Payload("/img/x.png", "https://h")

	assert.Equal(t, model.Payload{
		Title:       "Soup",
		Description: "hot",
		Category:    "lunch",
		Categories:  []string{"lunch", "dinner"},
		Duration:    "N/A",
		Difficulty:  "Easy",
		Diet:        "vegetarian",
		Cuisine:     "indian",
		ImageURL:    "https://h/img/x.png",
		Tags:        []string{"a", "b"},
		Steps:       []string{"one", "two"},
	}, p)

	s.Draft.Categories = nil
	assert.Equal(t, "dinner", s.Payload("", "https://h").Category)
	assert.Equal(t, "", s.Payload("", "https://h").ImageURL)
}

func TestEditRoundTrip(t *testing.T) {
	for _, r := range recipe.SampleRecipes() {
		r.Categories = []string{r.Category, "snack"}
		s := OpenEdit(1, r)
		require.Empty(t, s.Validate(), r.Title)

		p := s.Payload(s.ResolveImage(""), "https://h")
		assert.Equal(t, r.Title, p.Title)
		assert.Equal(t, r.Categories, p.Categories)
		assert.Equal(t, r.Category, p.Category)
		assert.Equal(t, r.Diet, p.Diet)
		assert.Equal(t, r.Cuisine, p.Cuisine)
		assert.Equal(t, r.Tags, p.Tags)
		assert.Equal(t, r.Steps, p.Steps)
		assert.Equal(t, r.Image, p.ImageURL)
	}
}

func TestSessionIsAValue(t *testing.T) {
	a := OpenAdd(1)
	b := a.WithImageFile(NewImageFile("/tmp/x.jpg")).WithPreview("data:image/jpeg;base64,AA")

	assert.Nil(t, a.File)
	assert.Empty(t, a.Preview)
	require.NotNil(t, b.File)
	assert.Equal(t, "x.jpg", b.File.Name)
}
