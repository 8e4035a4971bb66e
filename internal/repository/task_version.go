package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/tasktrail/internal/domain"
)

// TaskVersionRepository handles database operations for task version snapshots.
// The table is append-only; no update or delete paths exist.
type TaskVersionRepository struct {
	pool *pgxpool.Pool
}

// NewTaskVersionRepository creates a new TaskVersionRepository.
func NewTaskVersionRepository(pool *pgxpool.Pool) *TaskVersionRepository {
	return &TaskVersionRepository{pool: pool}
}

// Create appends a version snapshot within the mutation's transaction.
func (r *TaskVersionRepository) Create(
	ctx context.Context,
	tx pgx.Tx,
	version *domain.TaskVersion,
) error {
	query, args, err := psql.
		Insert("task_versions").
		Columns(
			"task_id", "version_number", "title", "description", "status",
			"priority", "assigned_to_id", "due_date", "created_at", "updated_at",
		).
		Values(
			version.TaskID,
			version.VersionNumber,
			version.Title,
			version.Description,
			version.Status,
			version.Priority,
			version.AssignedToID,
			version.DueDate,
			version.CreatedAt,
			version.UpdatedAt,
		).
		Suffix("RETURNING id, recorded_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&version.ID, &version.RecordedAt)
	if err != nil {
		return fmt.Errorf("create task version: %w", err)
	}

	return nil
}

// ListByTaskID retrieves all snapshots for a task, newest version first.
func (r *TaskVersionRepository) ListByTaskID(ctx context.Context, taskID string) ([]*domain.TaskVersion, error) {
	query, args, err := psql.
		Select(
			"id", "task_id", "version_number", "title", "description", "status",
			"priority", "assigned_to_id", "due_date", "created_at", "updated_at", "recorded_at",
		).
		From("task_versions").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("version_number DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.TaskVersion
	for rows.Next() {
		var version domain.TaskVersion
		err := rows.Scan(
			&version.ID,
			&version.TaskID,
			&version.VersionNumber,
			&version.Title,
			&version.Description,
			&version.Status,
			&version.Priority,
			&version.AssignedToID,
			&version.DueDate,
			&version.CreatedAt,
			&version.UpdatedAt,
			&version.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task version: %w", err)
		}
		versions = append(versions, &version)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return versions, nil
}

// CountByTaskID counts snapshots for a task.
func (r *TaskVersionRepository) CountByTaskID(ctx context.Context, taskID string) (int, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("task_versions").
		Where(sq.Eq{"task_id": taskID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count task versions: %w", err)
	}
	return count, nil
}
