package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/tasktrail/internal/domain"
)

// ActivityRepository handles database operations for the activity log.
// Events are append-only and purely chronological.
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

// Create appends an activity event within the mutation's transaction.
// The timestamp is assigned at write time.
func (r *ActivityRepository) Create(
	ctx context.Context,
	tx pgx.Tx,
	event *domain.ActivityEvent,
) error {
	query, args, err := psql.
		Insert("activity_events").
		Columns("task_id", "activity_type", "performed_by_id", "details").
		Values(event.TaskID, event.ActivityType, event.PerformedByID, event.Details).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("create activity event: %w", err)
	}

	return nil
}

// ListByTaskID retrieves all events for a task in chronological order.
func (r *ActivityRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.ActivityEvent, error) {
	query, args, err := psql.
		Select("id", "task_id", "activity_type", "performed_by_id", "details", "created_at").
		From("activity_events").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	defer rows.Close()

	var events []*domain.ActivityEvent
	for rows.Next() {
		var event domain.ActivityEvent
		err := rows.Scan(
			&event.ID,
			&event.TaskID,
			&event.ActivityType,
			&event.PerformedByID,
			&event.Details,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return events, nil
}
