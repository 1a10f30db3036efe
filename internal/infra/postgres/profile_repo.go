package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saverfox/saverfox/internal/platform/profile"
)

// ProfileRepository implements the profile repository using PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create inserts a new profile
func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, age, allowance, currency, onboarding_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Age,
		p.Allowance,
		p.Currency,
		p.OnboardingCompleted,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return profile.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByUserID returns the user's profile, or nil when absent
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT id, user_id, age, allowance, currency, onboarding_completed, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	p := &profile.Profile{}
	err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Age,
		&p.Allowance,
		&p.Currency,
		&p.OnboardingCompleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	// CHAR(3) columns come back space-padded
	p.Currency = strings.TrimSpace(p.Currency)
	return p, nil
}

// Update persists allowance, currency and onboarding_completed
func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) error {
	query := `
		UPDATE profiles
		SET allowance = $2, currency = $3, onboarding_completed = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		p.ID,
		p.Allowance,
		p.Currency,
		p.OnboardingCompleted,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrNotFound
	}
	return nil
}
