package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saverfox/saverfox/internal/module/mission"
)

// MissionRepository implements mission, progress and activity
// persistence using PostgreSQL
type MissionRepository struct {
	pool *pgxpool.Pool
}

// NewMissionRepository creates a new PostgreSQL mission repository
func NewMissionRepository(pool *pgxpool.Pool) *MissionRepository {
	return &MissionRepository{pool: pool}
}

// GetByActiveDate returns the mission active on the given UTC day, or
// nil when none is scheduled
func (r *MissionRepository) GetByActiveDate(ctx context.Context, day time.Time) (*mission.Mission, error) {
	query := `
		SELECT id, title, description, mission_type, requirements, reward_coins, active_date
		FROM missions
		WHERE active_date = $1
	`

	m := &mission.Mission{}
	err := queryerFrom(ctx, r.pool).QueryRow(ctx, query, day).Scan(
		&m.ID, &m.Title, &m.Description, &m.MissionType, &m.Requirements, &m.RewardCoins, &m.ActiveDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan mission: %w", err)
	}
	return m, nil
}

const userMissionColumns = `id, user_id, mission_id, progress, completed, completed_at, created_at`

// GetOrCreateUserMission upserts the user's progress row with empty
// progress and returns it
func (r *MissionRepository) GetOrCreateUserMission(ctx context.Context, userID, missionID uuid.UUID) (*mission.UserMission, error) {
	return r.getOrCreateUserMission(ctx, userID, missionID, false)
}

// GetOrCreateUserMissionForUpdate is GetOrCreateUserMission with a
// row-level lock for the surrounding transaction
func (r *MissionRepository) GetOrCreateUserMissionForUpdate(ctx context.Context, userID, missionID uuid.UUID) (*mission.UserMission, error) {
	return r.getOrCreateUserMission(ctx, userID, missionID, true)
}

func (r *MissionRepository) getOrCreateUserMission(ctx context.Context, userID, missionID uuid.UUID, forUpdate bool) (*mission.UserMission, error) {
	q := queryerFrom(ctx, r.pool)

	insert := `
		INSERT INTO user_missions (id, user_id, mission_id, progress, created_at)
		VALUES ($1, $2, $3, '{}', $4)
		ON CONFLICT (user_id, mission_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, uuid.New(), userID, missionID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to upsert user mission: %w", err)
	}

	query := `SELECT ` + userMissionColumns + ` FROM user_missions WHERE user_id = $1 AND mission_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	um := &mission.UserMission{}
	err := q.QueryRow(ctx, query, userID, missionID).Scan(
		&um.ID, &um.UserID, &um.MissionID, &um.Progress, &um.Completed, &um.CompletedAt, &um.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan user mission: %w", err)
	}
	return um, nil
}

// UpdateUserMission persists progress, completed and completed_at.
// Completed is monotonic: the guard keeps a completed row from ever
// flipping back.
func (r *MissionRepository) UpdateUserMission(ctx context.Context, um *mission.UserMission) error {
	query := `
		UPDATE user_missions
		SET progress = $2, completed = $3, completed_at = $4
		WHERE id = $1 AND NOT (completed AND NOT $3)
	`

	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, query, um.ID, um.Progress, um.Completed, um.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update user mission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return mission.ErrMissionNotFound
	}
	return nil
}

// InsertExpense appends an expense row
func (r *MissionRepository) InsertExpense(ctx context.Context, e *mission.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, amount, category, description, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query, e.ID, e.UserID, e.Amount, e.Category, e.Description, e.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// InsertSaving appends a saving row
func (r *MissionRepository) InsertSaving(ctx context.Context, s *mission.Saving) error {
	query := `
		INSERT INTO savings (id, user_id, amount, source, logged_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query, s.ID, s.UserID, s.Amount, s.Source, s.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to insert saving: %w", err)
	}
	return nil
}

// ListExpenses returns the user's expenses, newest first
func (r *MissionRepository) ListExpenses(ctx context.Context, userID uuid.UUID, limit int) ([]*mission.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, description, logged_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY logged_at DESC
		LIMIT $2
	`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*mission.Expense
	for rows.Next() {
		e := &mission.Expense{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ListSavings returns the user's savings, newest first
func (r *MissionRepository) ListSavings(ctx context.Context, userID uuid.UUID, limit int) ([]*mission.Saving, error) {
	query := `
		SELECT id, user_id, amount, source, logged_at
		FROM savings
		WHERE user_id = $1
		ORDER BY logged_at DESC
		LIMIT $2
	`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings: %w", err)
	}
	defer rows.Close()

	var savings []*mission.Saving
	for rows.Next() {
		s := &mission.Saving{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Amount, &s.Source, &s.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan saving: %w", err)
		}
		savings = append(savings, s)
	}
	return savings, rows.Err()
}

// ListRecentActivities returns the newest expense and saving rows
// merged into one list, newest first
func (r *MissionRepository) ListRecentActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*mission.Activity, error) {
	query := `
		SELECT kind, amount, label, logged_at FROM (
			SELECT 'expense' AS kind, amount, category AS label, logged_at FROM expenses WHERE user_id = $1
			UNION ALL
			SELECT 'saving' AS kind, amount, source AS label, logged_at FROM savings WHERE user_id = $1
		) activities
		ORDER BY logged_at DESC
		LIMIT $2
	`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*mission.Activity
	for rows.Next() {
		a := &mission.Activity{}
		if err := rows.Scan(&a.Kind, &a.Amount, &a.Label, &a.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
