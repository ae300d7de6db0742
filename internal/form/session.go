// Package form owns the add/edit recipe form: the draft, its validation and
// its conversion into an API payload.
//
// A Session is a value. Every operation returns a new Session instead of
// mutating shared state, and every asynchronous result produced for a session
// carries its ID so that results arriving after the session was closed or
// replaced can be recognised and dropped.
package form

import (
	"path/filepath"
	"strings"

	"recipebox/internal/model"
	"recipebox/internal/recipe"
)

// Validation messages.
const (
	MsgTitleRequired    = "Title is required."
	MsgCategoryRequired = "At least one category is required."
	MsgTagRequired      = "At least one tag is required."
	MsgImageInvalid     = "Image URL looks invalid. Paste a full URL or upload an image."
)

// Draft holds the raw text of the form fields.
type Draft struct {
	Title       string
	Description string
	Categories  []string
	Duration    string
	Difficulty  string
	Diet        string
	Cuisine     string
	Image       string // URL typed by the user
	Tags        string // comma separated
	Steps       string // one step per line
}

// EmptyDraft returns the defaults of a new recipe.
func EmptyDraft() Draft {
	return Draft{
		Categories: []string{recipe.DefaultCategory},
		Difficulty: recipe.DefaultDifficulty,
		Diet:       recipe.DefaultDiet,
		Cuisine:    "indian",
	}
}

// ImageFile is a local image picked for upload on submit.
type ImageFile struct {
	Path string
	Name string
}

// NewImageFile references the file at path.
func NewImageFile(path string) ImageFile {
	return ImageFile{Path: path, Name: filepath.Base(path)}
}

// Session is one open add or edit form.
type Session struct {
	ID       uint64
	Mode     model.FormMode
	TargetID int64 // recipe being edited, 0 in add mode
	Draft    Draft
	Preview  string     // image shown in the form: a URL or a data: URL
	File     *ImageFile // pending upload
	Errors   []string
}

// OpenAdd starts an add session with the default draft.
func OpenAdd(id uint64) Session {
	return Session{
		ID:    id,
		Mode:  model.FormAdd,
		Draft: EmptyDraft(),
	}
}

// OpenEdit starts an edit session populated from r.
func OpenEdit(id uint64, r model.Recipe) Session {
	categories := append([]string(nil), r.Categories...)
	if len(categories) == 0 {
		categories = []string{r.Category}
	}

	image := r.Image
	if image == "" {
		image = r.ImageURL
	}

	return Session{
		ID:       id,
		Mode:     model.FormEdit,
		TargetID: r.ID,
		Draft: Draft{
			Title:       r.Title,
			Description: r.Description,
			Categories:  categories,
			Duration:    r.Duration,
			Difficulty:  r.Difficulty,
			Diet:        r.Diet,
			Cuisine:     r.Cuisine,
			Image:       image,
			Tags:        strings.Join(r.Tags, ", "),
			Steps:       strings.Join(r.Steps, "\n"),
		},
		Preview: image,
	}
}

// WithDraft replaces the draft.
func (s Session) WithDraft(d Draft) Session {
	s.Draft = d
	return s
}

// WithImageFile records f as the pending upload. Reading the preview is up to
// the caller (see ReadPreview); nothing touches the network here.
func (s Session) WithImageFile(f ImageFile) Session {
	s.File = &f
	return s
}

// WithPreview sets the image preview.
func (s Session) WithPreview(preview string) Session {
	s.Preview = preview
	return s
}

// WithErrors sets the messages shown under the form.
func (s Session) WithErrors(errs []string) Session {
	s.Errors = errs
	return s
}

// Tags parses the comma separated tags field.
func (s Session) Tags() []string {
	return recipe.SplitComma(s.Draft.Tags)
}

// Steps parses the steps field, one step per line.
func (s Session) Steps() []string {
	return recipe.SplitLines(s.Draft.Steps)
}

// Validate returns one message per unmet requirement, in field order.
func (s Session) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Draft.Title) == "" {
		errs = append(errs, MsgTitleRequired)
	}
	if len(s.Draft.Categories) == 0 {
		errs = append(errs, MsgCategoryRequired)
	}
	if len(s.Tags()) == 0 {
		errs = append(errs, MsgTagRequired)
	}
	if img := s.Draft.Image; img != "" && !recipe.IsDataURL(img) && !recipe.IsValidURL(img) {
		errs = append(errs, MsgImageInvalid)
	}
	return errs
}

// ResolveImage picks the image reference to submit. uploaded is the URL
// returned for the pending file, if one was uploaded.
func (s Session) ResolveImage(uploaded string) string {
	switch {
	case s.File != nil && uploaded != "":
		return uploaded
	case s.File == nil && s.Preview != "" && !recipe.IsDataURL(s.Preview):
		return s.Preview
	default:
		return s.Draft.Image
	}
}

// Payload builds the request body for the session. imageRef is the
// reference returned by ResolveImage; it is made absolute against origin.
func (s Session) Payload(imageRef, origin string) model.Payload {
	d := s.Draft

	category := recipe.DefaultCategory
	if len(d.Categories) > 0 && d.Categories[0] != "" {
		category = d.Categories[0]
	}
	duration := d.Duration
	if duration == "" {
		duration = recipe.DefaultDuration
	}
	difficulty := d.Difficulty
	if difficulty == "" {
		difficulty = recipe.DefaultDifficulty
	}

	return model.Payload{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Category:    category,
		Categories:  append([]string{}, d.Categories...),
		Duration:    duration,
		Difficulty:  difficulty,
		Diet:        d.Diet,
		Cuisine:     d.Cuisine,
		ImageURL:    recipe.NormalizeImageURL(imageRef, origin),
		Tags:        s.Tags(),
		Steps:       s.Steps(),
	}
}
