package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"recipebox/internal/model"
)

// ErrNotFound is returned when no recipe has the requested id.
var ErrNotFound = errors.New("recipe not found")

const recipeColumns = `id, title, description, category, categories, duration, difficulty, diet, cuisine, image_url, tags, steps`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListRecipes returns every recipe in id order.
func ListRecipes(ctx context.Context, db *sql.DB) ([]model.RecipeRecord, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	results := []model.RecipeRecord{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipe rows: %w", err)
	}

	return results, nil
}

// GetRecipe retrieves a single recipe by ID.
func GetRecipe(ctx context.Context, db *sql.DB, id int64) (model.RecipeRecord, error) {
	row := db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RecipeRecord{}, ErrNotFound
	}
	return r, err
}

// InsertRecipe stores a new recipe and returns its id.
func InsertRecipe(ctx context.Context, db *sql.DB, p model.Payload) (int64, error) {
	args, err := payloadArgs(p)
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO recipes (title, description, category, categories, duration, difficulty, diet, cuisine, image_url, tags, steps)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert recipe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert id: %w", err)
	}
	return id, nil
}

// UpdateRecipe replaces every field of the recipe with the given id.
func UpdateRecipe(ctx context.Context, db *sql.DB, id int64, p model.Payload) error {
	args, err := payloadArgs(p)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `
		UPDATE recipes
		SET title = ?, description = ?, category = ?, categories = ?, duration = ?, difficulty = ?,
		    diet = ?, cuisine = ?, image_url = ?, tags = ?, steps = ?,
		    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		WHERE id = ?
	`, append(args, id)...)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return expectOneRow(result)
}

// DeleteRecipe removes the recipe with the given id.
func DeleteRecipe(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return expectOneRow(result)
}

func expectOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecipe(row rowScanner) (model.RecipeRecord, error) {
	var r model.RecipeRecord
	var categories, tags, steps string
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.Category, &categories, &r.Duration,
		&r.Difficulty, &r.Diet, &r.Cuisine, &r.ImageURL, &tags, &steps,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("failed to scan recipe row: %w", err)
	}

	if r.Categories, err = decodeList(categories); err != nil {
		return r, fmt.Errorf("recipe %d categories: %w", r.ID, err)
	}
	if r.Tags, err = decodeList(tags); err != nil {
		return r, fmt.Errorf("recipe %d tags: %w", r.ID, err)
	}
	if r.Steps, err = decodeList(steps); err != nil {
		return r, fmt.Errorf("recipe %d steps: %w", r.ID, err)
	}
	return r, nil
}

func payloadArgs(p model.Payload) ([]any, error) {
	categories, err := encodeList(p.Categories)
	if err != nil {
		return nil, err
	}
	tags, err := encodeList(p.Tags)
	if err != nil {
		return nil, err
	}
	steps, err := encodeList(p.Steps)
	if err != nil {
		return nil, err
	}
	return []any{
		p.Title, p.Description, p.Category, categories, p.Duration, p.Difficulty,
		p.Diet, p.Cuisine, p.ImageURL, tags, steps,
	}, nil
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(data), nil
}

func decodeList(s string) ([]string, error) {
	items := []string{}
	if s == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
