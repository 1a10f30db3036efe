package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saverfox/saverfox/internal/module/tamagotchi"
)

// TamagotchiRepository implements tamagotchi persistence using PostgreSQL
type TamagotchiRepository struct {
	pool *pgxpool.Pool
}

// NewTamagotchiRepository creates a new PostgreSQL tamagotchi repository
func NewTamagotchiRepository(pool *pgxpool.Pool) *TamagotchiRepository {
	return &TamagotchiRepository{pool: pool}
}

const tamagotchiColumns = `id, user_id, character_id, name, hunger, happiness, health, last_fed_at, created_at, updated_at`

// GetByUserID returns the user's pet, or nil when none exists
func (r *TamagotchiRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*tamagotchi.Tamagotchi, error) {
	return r.get(ctx, userID, false)
}

// GetByUserIDForUpdate is GetByUserID with a row-level lock for the
// surrounding transaction
func (r *TamagotchiRepository) GetByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*tamagotchi.Tamagotchi, error) {
	return r.get(ctx, userID, true)
}

func (r *TamagotchiRepository) get(ctx context.Context, userID uuid.UUID, forUpdate bool) (*tamagotchi.Tamagotchi, error) {
	query := `SELECT ` + tamagotchiColumns + ` FROM tamagotchis WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	t := &tamagotchi.Tamagotchi{}
	err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, userID).Scan(
		&t.ID, &t.UserID, &t.CharacterID, &t.Name,
		&t.Hunger, &t.Happiness, &t.Health,
		&t.LastFedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan tamagotchi: %w", err)
	}
	return t, nil
}

// Create inserts a new pet
func (r *TamagotchiRepository) Create(ctx context.Context, t *tamagotchi.Tamagotchi) error {
	query := `
		INSERT INTO tamagotchis (id, user_id, character_id, name, hunger, happiness, health, last_fed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		t.ID, t.UserID, t.CharacterID, t.Name,
		t.Hunger, t.Happiness, t.Health,
		t.LastFedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return tamagotchi.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create tamagotchi: %w", err)
	}
	return nil
}

// Update persists stats, name and last_fed_at
func (r *TamagotchiRepository) Update(ctx context.Context, t *tamagotchi.Tamagotchi) error {
	query := `
		UPDATE tamagotchis
		SET name = $2, hunger = $3, happiness = $4, health = $5, last_fed_at = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		t.ID, t.Name, t.Hunger, t.Happiness, t.Health, t.LastFedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update tamagotchi: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tamagotchi.ErrNotFound
	}
	return nil
}
