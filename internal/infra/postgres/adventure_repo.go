package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saverfox/saverfox/internal/module/adventure"
)

// AdventureRepository implements adventure persistence using PostgreSQL
type AdventureRepository struct {
	pool *pgxpool.Pool
}

// NewAdventureRepository creates a new PostgreSQL adventure repository
func NewAdventureRepository(pool *pgxpool.Pool) *AdventureRepository {
	return &AdventureRepository{pool: pool}
}

const adventureColumns = `id, user_id, scenario, choices, selected_choice_index, feedback, scores, generation_trace_id, evaluation_trace_id, created_at, evaluated_at`

// Create inserts a new unsubmitted adventure
func (r *AdventureRepository) Create(ctx context.Context, a *adventure.Adventure) error {
	query := `
		INSERT INTO adventures (id, user_id, scenario, choices, generation_trace_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		a.ID, a.UserID, a.Scenario, a.Choices, a.GenerationTraceID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create adventure: %w", err)
	}
	return nil
}

// Get returns the adventure scoped to (id, userID), or nil when absent
func (r *AdventureRepository) Get(ctx context.Context, id, userID uuid.UUID) (*adventure.Adventure, error) {
	query := `SELECT ` + adventureColumns + ` FROM adventures WHERE id = $1 AND user_id = $2`
	return r.scanOne(queryerFrom(ctx, r.pool).QueryRow(ctx, query, id, userID))
}

// List returns the user's adventures, newest first
func (r *AdventureRepository) List(ctx context.Context, userID uuid.UUID, limit int) ([]*adventure.Adventure, error) {
	query := `
		SELECT ` + adventureColumns + `
		FROM adventures
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := queryerFrom(ctx, r.pool).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list adventures: %w", err)
	}
	defer rows.Close()

	var adventures []*adventure.Adventure
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		adventures = append(adventures, a)
	}
	return adventures, rows.Err()
}

// MarkEvaluated persists the evaluation in one write guarded on the
// unsubmitted state, so concurrent submissions cannot both win.
func (r *AdventureRepository) MarkEvaluated(ctx context.Context, id uuid.UUID, ev *adventure.Evaluation) (bool, error) {
	query := `
		UPDATE adventures
		SET selected_choice_index = $2, feedback = $3, scores = $4, evaluation_trace_id = $5, evaluated_at = $6
		WHERE id = $1 AND selected_choice_index IS NULL
	`

	tag, err := queryerFrom(ctx, r.pool).Exec(ctx, query,
		id, ev.ChoiceIndex, ev.Feedback, ev.Scores, ev.TraceID, ev.EvaluatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark adventure evaluated: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AdventureRepository) scanOne(row pgx.Row) (*adventure.Adventure, error) {
	a, err := r.scan(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan adventure: %w", err)
	}
	return a, nil
}

func (r *AdventureRepository) scanRow(rows pgx.Rows) (*adventure.Adventure, error) {
	a, err := r.scan(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to scan adventure: %w", err)
	}
	return a, nil
}

func (r *AdventureRepository) scan(scan func(dest ...any) error) (*adventure.Adventure, error) {
	a := &adventure.Adventure{}
	var feedback, evalTraceID *string
	err := scan(
		&a.ID, &a.UserID, &a.Scenario, &a.Choices,
		&a.SelectedChoiceIndex, &feedback, &a.Scores,
		&a.GenerationTraceID, &evalTraceID,
		&a.CreatedAt, &a.EvaluatedAt,
	)
	if err != nil {
		return nil, err
	}
	if feedback != nil {
		a.Feedback = *feedback
	}
	if evalTraceID != nil {
		a.EvaluationTraceID = *evalTraceID
	}
	return a, nil
}
