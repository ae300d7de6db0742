package model

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// RecipesLoadedMsg is sent when a store reload finishes. Recipes is always
// the collection to show; Err is set when the samples stand in for a failed
// load.
type RecipesLoadedMsg struct {
	Recipes []Recipe
	Sample  bool
	Err     error
}

// RecipeDeletedMsg is sent when a delete finishes. On failure Recipes is the
// unchanged collection.
type RecipeDeletedMsg struct {
	ID      int64
	Title   string
	Recipes []Recipe
	Sample  bool
	Err     error
}

// FormCancelledMsg is sent when a form is cancelled.
type FormCancelledMsg struct{}

// Screen represents different app screens.
type Screen int

const (
	ScreenRecipes Screen = iota
	ScreenRecipeDetail
	ScreenRecipeForm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
	ModeSearch
)
