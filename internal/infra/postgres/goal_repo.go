package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saverfox/saverfox/internal/module/goal"
)

// GoalRepository implements goal persistence using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new PostgreSQL goal repository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, title, description, target_amount, current_amount, completed, completed_at, created_at, updated_at`

// Create inserts a new goal
func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		g.ID, g.UserID, g.Title, g.Description,
		g.TargetAmount, g.CurrentAmount,
		g.Completed, g.CompletedAt, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// Get returns the goal scoped to (id, userID), or nil when absent
func (r *GoalRepository) Get(ctx context.Context, id, userID uuid.UUID) (*goal.Goal, error) {
	return r.get(ctx, id, userID, false)
}

// GetForUpdate is Get with a row-level lock for the surrounding
// transaction
func (r *GoalRepository) GetForUpdate(ctx context.Context, id, userID uuid.UUID) (*goal.Goal, error) {
	return r.get(ctx, id, userID, true)
}

func (r *GoalRepository) get(ctx context.Context, id, userID uuid.UUID, forUpdate bool) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	g := &goal.Goal{}
	err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, id, userID).Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description,
		&g.TargetAmount, &g.CurrentAmount,
		&g.Completed, &g.CompletedAt, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}
	return g, nil
}

// List returns the user's goals, newest first. The completed filter
// is applied when non-nil.
func (r *GoalRepository) List(ctx context.Context, userID uuid.UUID, completed *bool) ([]*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`
	args := []any{userID}
	if completed != nil {
		query += ` AND completed = $2`
		args = append(args, *completed)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		g := &goal.Goal{}
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Title, &g.Description,
			&g.TargetAmount, &g.CurrentAmount,
			&g.Completed, &g.CompletedAt, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Update persists current_amount, completed and completed_at
func (r *GoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET current_amount = $2, completed = $3, completed_at = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		g.ID, g.CurrentAmount, g.Completed, g.CompletedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return goal.ErrNotFound
	}
	return nil
}

// Delete removes the goal scoped to (id, userID). Reports whether a
// row was deleted.
func (r *GoalRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
