package model

// Recipe is a normalized recipe record as held by the store.
type Recipe struct {
	ID          int64 // 0 until persisted
	Title       string
	Description string
	Category    string   // legacy single category
	Categories  []string // first element is the primary category
	Duration    string
	Difficulty  string
	Diet        string
	Cuisine     string
	Image       string // absolute display URL or ""
	ImageURL    string // image_url exactly as the API returned it
	Tags        []string
	Steps       []string
}

// Raw converts a normalized recipe back into its wire shape.
func (r Recipe) Raw() RawRecipe {
	return RawRecipe{
		ID:          FlexID(r.ID),
		Title:       FlexString(r.Title),
		Description: FlexString(r.Description),
		Category:    FlexString(r.Category),
		Categories:  FlexList{Items: append([]string(nil), r.Categories...), IsList: true},
		Duration:    FlexString(r.Duration),
		Difficulty:  FlexString(r.Difficulty),
		Diet:        FlexString(r.Diet),
		Cuisine:     FlexString(r.Cuisine),
		Image:       FlexString(r.Image),
		ImageURL:    FlexString(r.ImageURL),
		Tags:        FlexList{Items: append([]string(nil), r.Tags...), IsList: true},
		Steps:       FlexSteps{List: append([]string(nil), r.Steps...), IsList: true},
	}
}

// Payload is the body sent on create and update.
type Payload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Categories  []string `json:"categories"`
	Duration    string   `json:"duration"`
	Difficulty  string   `json:"difficulty"`
	Diet        string   `json:"diet"`
	Cuisine     string   `json:"cuisine"`
	ImageURL    string   `json:"image_url"`
	Tags        []string `json:"tags"`
	Steps       []string `json:"steps"`
}

// RecipeRecord is a persisted recipe as served by the gateway.
type RecipeRecord struct {
	ID int64 `json:"id"`
	Payload
}

// CreateResponse is the body returned by POST /recipes.
type CreateResponse struct {
	ID FlexID `json:"id"`
}

// UploadResponse is the body returned by POST /upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// Category is an entry of the primary category filter.
type Category struct {
	ID    string
	Label string
}

// ExtraFilter is a togglable diet or cuisine facet.
type ExtraFilter struct {
	ID    string
	Label string
	Type  string // diet, cuisine
}

// FilterState is the current list filter.
type FilterState struct {
	Search   string
	Category string
	Extras   []string
}

// FormMode distinguishes an add session from an edit session.
type FormMode int

const (
	FormAdd FormMode = iota
	FormEdit
)

func (m FormMode) String() string {
	if m == FormEdit {
		return "edit"
	}
	return "add"
}
