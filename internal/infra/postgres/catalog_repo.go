package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saverfox/saverfox/internal/module/shop"
)

// CatalogRepository implements catalog reads using PostgreSQL
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository creates a new PostgreSQL catalog repository
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListCharacters returns all characters ordered by price asc, name asc
func (r *CatalogRepository) ListCharacters(ctx context.Context) ([]*shop.Character, error) {
	query := `
		SELECT id, name, image_url, is_starter, price
		FROM characters
		ORDER BY price ASC, name ASC
	`
	return r.queryCharacters(ctx, query)
}

// ListStarterCharacters returns characters with is_starter = true
func (r *CatalogRepository) ListStarterCharacters(ctx context.Context) ([]*shop.Character, error) {
	query := `
		SELECT id, name, image_url, is_starter, price
		FROM characters
		WHERE is_starter = TRUE
		ORDER BY price ASC, name ASC
	`
	return r.queryCharacters(ctx, query)
}

func (r *CatalogRepository) queryCharacters(ctx context.Context, query string) ([]*shop.Character, error) {
	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	var characters []*shop.Character
	for rows.Next() {
		c := &shop.Character{}
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.IsStarter, &c.Price); err != nil {
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, c)
	}
	return characters, rows.Err()
}

// GetCharacter returns a character by ID
func (r *CatalogRepository) GetCharacter(ctx context.Context, id uuid.UUID) (*shop.Character, error) {
	query := `
		SELECT id, name, image_url, is_starter, price
		FROM characters
		WHERE id = $1
	`

	c := &shop.Character{}
	err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.ImageURL, &c.IsStarter, &c.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shop.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to scan character: %w", err)
	}
	return c, nil
}

// ListFoods returns all foods ordered by price asc, name asc
func (r *CatalogRepository) ListFoods(ctx context.Context) ([]*shop.Food, error) {
	query := `
		SELECT id, name, nutrition_value, price, image_url
		FROM foods
		ORDER BY price ASC, name ASC
	`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	defer rows.Close()

	var foods []*shop.Food
	for rows.Next() {
		f := &shop.Food{}
		if err := rows.Scan(&f.ID, &f.Name, &f.NutritionValue, &f.Price, &f.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

// GetFood returns a food by ID
func (r *CatalogRepository) GetFood(ctx context.Context, id uuid.UUID) (*shop.Food, error) {
	query := `
		SELECT id, name, nutrition_value, price, image_url
		FROM foods
		WHERE id = $1
	`

	f := &shop.Food{}
	err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, id).Scan(&f.ID, &f.Name, &f.NutritionValue, &f.Price, &f.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shop.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to scan food: %w", err)
	}
	return f, nil
}
