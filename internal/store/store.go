// Package store holds the recipes loaded from the API.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"recipebox/internal/model"
	"recipebox/internal/recipe"
)

// Gateway is the part of the API the store needs.
type Gateway interface {
	List(ctx context.Context) ([]model.RawRecipe, error)
	Delete(ctx context.Context, id int64) error
}

// Store is the in-memory recipe collection. Every mutation goes through the
// API and is followed by a full reload.
type Store struct {
	mu      sync.RWMutex
	gateway Gateway
	origin  string
	logger  *slog.Logger
	recipes []model.Recipe
	sample  bool
}

// New creates an empty store.
func New(gateway Gateway, origin string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		gateway: gateway,
		origin:  origin,
		logger:  logger,
		recipes: []model.Recipe{},
	}
}

// Recipes returns a copy of the current collection.
func (s *Store) Recipes() []model.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Len returns the number of recipes held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// IsSample reports whether the store currently holds the built-in samples.
func (s *Store) IsSample() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sample
}

// Find returns the recipe with the given id.
func (s *Store) Find(id int64) (model.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Recipe{}, false
}

// Reload fetches and normalizes the list. An empty list or a failed fetch
// leaves the store holding the sample recipes; the fetch error is logged and
// returned.
func (s *Store) Reload(ctx context.Context) ([]model.Recipe, error) {
	raws, err := s.gateway.List(ctx)
	if err != nil {
		s.logger.Error("failed to load recipes", "op", "reload", "error", err)
		s.set(recipe.SampleRecipes(), true)
		return s.Recipes(), fmt.Errorf("load recipes: %w", err)
	}

	recipes := recipe.NormalizeAll(raws, s.origin)
	if len(recipes) == 0 {
		s.logger.Info("no recipes returned, using samples", "op", "reload")
		s.set(recipe.SampleRecipes(), true)
		return s.Recipes(), nil
	}

	s.logger.Debug("recipes loaded", "op", "reload", "count", len(recipes))
	s.set(recipes, false)
	return s.Recipes(), nil
}

// Delete removes the recipe with the given id and reloads. An id of 0 is a
// no-op. On failure the collection is left unchanged.
func (s *Store) Delete(ctx context.Context, id int64) ([]model.Recipe, error) {
	if id == 0 {
		return s.Recipes(), nil
	}
	if err := s.gateway.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete recipe", "op", "delete", "id", id, "error", err)
		return s.Recipes(), fmt.Errorf("delete recipe %d: %w", id, err)
	}
	s.logger.Info("recipe deleted", "op", "delete", "id", id)
	return s.Reload(ctx)
}

func (s *Store) set(recipes []model.Recipe, sample bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = recipes
	s.sample = sample
}
