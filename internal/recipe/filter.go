package recipe

import (
	"slices"
	"strings"

	"recipebox/internal/model"

	"golang.org/x/text/cases"
)

// AllCategories is the category id that disables the category predicate.
const AllCategories = "all"

// Categories is the primary category catalogue, in display order.
var Categories = []model.Category{
	{ID: AllCategories, Label: "All"},
	{ID: "breakfast", Label: "Breakfast"},
	{ID: "lunch", Label: "Lunch"},
	{ID: "dinner", Label: "Dinner"},
	{ID: "dessert", Label: "Dessert"},
	{ID: "drinks", Label: "Drinks"},
	{ID: "snack", Label: "Snack"},
}

// ExtraFilters is the facet catalogue, in display order.
var ExtraFilters = []model.ExtraFilter{
	{ID: "vegetarian", Label: "Vegetarian", Type: "diet"},
	{ID: "non-vegetarian", Label: "Non-vegetarian", Type: "diet"},
	{ID: "indian", Label: "Indian", Type: "cuisine"},
	{ID: "italian", Label: "Italian", Type: "cuisine"},
	{ID: "asian", Label: "Asian", Type: "cuisine"},
}

// NewFilterState returns the initial filter: no search, all categories, no facets.
func NewFilterState() model.FilterState {
	return model.FilterState{Category: AllCategories}
}

// Filter returns the recipes matching state, in their original order.
func Filter(recipes []model.Recipe, state model.FilterState) []model.Recipe {
	term := fold(strings.TrimSpace(state.Search))
	out := make([]model.Recipe, 0, len(recipes))
	for i := range recipes {
		if matches(&recipes[i], state, term) {
			out = append(out, recipes[i])
		}
	}
	return out
}

// Matches reports whether r passes the category, facet and text predicates.
func Matches(r model.Recipe, state model.FilterState) bool {
	return matches(&r, state, fold(strings.TrimSpace(state.Search)))
}

func matches(r *model.Recipe, state model.FilterState, term string) bool {
	return MatchesCategory(r, state.Category) &&
		MatchesExtras(r, state.Extras) &&
		matchesText(r, term)
}

// MatchesCategory is the category predicate.
func MatchesCategory(r *model.Recipe, category string) bool {
	return category == AllCategories ||
		r.Category == category ||
		slices.Contains(r.Categories, category)
}

// MatchesExtras requires every active facet to match.
func MatchesExtras(r *model.Recipe, extras []string) bool {
	for _, id := range extras {
		if !MatchesExtra(r, id) {
			return false
		}
	}
	return true
}

// MatchesExtra checks a single facet. Unknown facet ids always match.
func MatchesExtra(r *model.Recipe, id string) bool {
	switch id {
	case "vegetarian", "non-vegetarian":
		return r.Diet == id
	case "indian", "italian", "asian":
		return r.Cuisine == id
	default:
		return true
	}
}

// MatchesText is the search predicate: an empty term matches everything,
// otherwise title, description or any tag must contain it, ignoring case.
func MatchesText(r *model.Recipe, search string) bool {
	return matchesText(r, fold(strings.TrimSpace(search)))
}

func matchesText(r *model.Recipe, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(fold(r.Title), term) || strings.Contains(fold(r.Description), term) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(fold(tag), term) {
			return true
		}
	}
	return false
}

// ToggleExtra returns extras with id added or removed. The input is not modified.
func ToggleExtra(extras []string, id string, on bool) []string {
	out := make([]string, 0, len(extras)+1)
	for _, e := range extras {
		if e != id {
			out = append(out, e)
		}
	}
	if on {
		out = append(out, id)
	}
	return out
}

// CategoryLabel returns the display label of a category id, or the id itself.
func CategoryLabel(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// ExtraLabel returns the display label of a facet id, or the id itself.
func ExtraLabel(id string) string {
	for _, e := range ExtraFilters {
		if e.ID == id {
			return e.Label
		}
	}
	return id
}

func fold(s string) string {
	return cases.Fold().String(s)
}
