// Package recipe holds the recipe rules shared by the client: record
// normalization, image URL handling and the list filter.
package recipe

import (
	"net/url"
	"regexp"
	"strings"

	"recipebox/internal/model"
)

// Field defaults applied when the API omits a value.
const (
	DefaultTitle      = "Untitled"
	DefaultCategory   = "dinner"
	DefaultDuration   = "N/A"
	DefaultDifficulty = "Easy"
	DefaultDiet       = "vegetarian"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Normalize turns a raw API record into a well-formed Recipe. origin is the
// API origin used to absolutize relative image paths.
//
// Normalize is idempotent: Normalize(Normalize(x).Raw()) == Normalize(x).
func Normalize(raw model.RawRecipe, origin string) model.Recipe {
	r := model.Recipe{
		ID:          int64(raw.ID),
		Title:       orDefault(string(raw.Title), DefaultTitle),
		Description: string(raw.Description),
		Category:    orDefault(string(raw.Category), DefaultCategory),
		Categories:  []string{},
		Duration:    orDefault(string(raw.Duration), DefaultDuration),
		Difficulty:  orDefault(string(raw.Difficulty), DefaultDifficulty),
		Diet:        orDefault(string(raw.Diet), DefaultDiet),
		Cuisine:     string(raw.Cuisine),
		ImageURL:    string(raw.ImageURL),
		Tags:        []string{},
		Steps:       []string{},
	}

	if raw.Categories.IsList {
		r.Categories = append(r.Categories, raw.Categories.Items...)
	}
	if raw.Tags.IsList {
		r.Tags = append(r.Tags, raw.Tags.Items...)
	}

	image := string(raw.ImageURL)
	if image == "" {
		image = string(raw.Image)
	}
	r.Image = NormalizeImageURL(image, origin)

	switch {
	case raw.Steps.IsList:
		r.Steps = append(r.Steps, raw.Steps.List...)
	case raw.Steps.IsText:
		r.Steps = SplitLines(raw.Steps.Text)
	}

	return r
}

// NormalizeAll normalizes every record, preserving order.
func NormalizeAll(raws []model.RawRecipe, origin string) []model.Recipe {
	out := make([]model.Recipe, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Normalize(raw, origin))
	}
	return out
}

// NormalizeImageURL makes an image reference absolute. Absolute http(s) URLs
// and data: URLs are returned unchanged, empty input stays empty and anything
// else is prefixed with origin.
func NormalizeImageURL(ref, origin string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || IsDataURL(ref) {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return strings.TrimSuffix(origin, "/") + ref
}

// IsValidURL reports whether s parses as an absolute URL with both a scheme
// and a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsDataURL reports whether s is an inline data: URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// PrimaryCategory returns the first of r.Categories, falling back to
// r.Category.
func PrimaryCategory(r *model.Recipe) string {
	if r == nil {
		return ""
	}
	if len(r.Categories) > 0 {
		return r.Categories[0]
	}
	return r.Category
}

// SplitLines splits on line breaks, trims each line and drops empty ones.
func SplitLines(s string) []string {
	return compact(lineBreak.Split(s, -1))
}

// SplitComma splits on commas, trims each item and drops empty ones.
func SplitComma(s string) []string {
	return compact(strings.Split(s, ","))
}

func compact(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
