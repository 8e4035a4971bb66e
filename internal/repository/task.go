package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/tasktrail/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "version", "title", "description", "status", "priority",
	"created_by_id", "assigned_to_id", "due_date", "tags",
	"created_at", "updated_at",
}

// TaskRepository handles database operations for the task current-state rows.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Version,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.CreatedByID,
		&task.AssignedToID,
		&task.DueDate,
		&task.Tags,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDTx retrieves a task by ID within a transaction. The read carries no
// lock; writers detect interleaved mutations through the version condition
// in Update.
func (r *TaskRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDTx query for task %s: %w", taskID, err)
	}

	return scanTask(tx.QueryRow(ctx, query, args...))
}

// Create creates a new task in the database within a transaction.
// Returns the created task with ID, Version, CreatedAt, and UpdatedAt populated.
func (r *TaskRepository) Create(ctx context.Context, tx pgx.Tx, task *domain.Task) (*domain.Task, error) {
	if task.Tags == nil {
		task.Tags = []string{}
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "description", "status", "priority",
			"created_by_id", "assigned_to_id", "due_date", "tags",
		).
		Values(
			task.Title,
			task.Description,
			task.Status,
			task.Priority,
			task.CreatedByID,
			task.AssignedToID,
			task.DueDate,
			task.Tags,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&task.ID, &task.Version, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Update writes the task's mutable fields with optimistic locking: the update
// is conditioned on expectedVersion and bumps version by exactly one. Returns
// the refreshed row. RowsAffected==0 is resolved to ErrTaskNotFound when the
// row is gone, ErrVersionConflict when another writer got there first.
func (r *TaskRepository) Update(
	ctx context.Context,
	tx pgx.Tx,
	task *domain.Task,
	expectedVersion int,
) (*domain.Task, error) {
	query, args, err := psql.
		Update("tasks").
		Set("status", task.Status).
		Set("priority", task.Priority).
		Set("assigned_to_id", task.AssignedToID).
		Set("due_date", task.DueDate).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":      task.ID,
			"version": expectedVersion,
		}).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for task %s: %w", task.ID, err)
	}

	updated, err := scanTask(tx.QueryRow(ctx, query, args...))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, err
	}

	// No row matched: distinguish a deleted task from a stale version.
	var exists bool
	if checkErr := tx.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)", task.ID,
	).Scan(&exists); checkErr != nil {
		return nil, fmt.Errorf("check task existence: %w", checkErr)
	}
	if exists {
		return nil, fmt.Errorf("%w: task %s expected version %d", domain.ErrVersionConflict, task.ID, expectedVersion)
	}
	return nil, domain.ErrTaskNotFound
}

// CountActiveAssignedTo counts OPEN and IN_PROGRESS tasks assigned to a user.
// This is the hook guarding user deactivation.
func (r *TaskRepository) CountActiveAssignedTo(ctx context.Context, userID string) (int, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("tasks").
		Where(sq.Eq{
			"assigned_to_id": userID,
			"status": []domain.TaskStatus{
				domain.TaskStatusOpen,
				domain.TaskStatusInProgress,
			},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build CountActiveAssignedTo query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active assigned tasks: %w", err)
	}
	return count, nil
}
