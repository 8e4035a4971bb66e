package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mtlprog/tasktrail/internal/domain"
)

// priorityRankExpr orders priorities by their urgency rank, most urgent first.
const priorityRankExpr = "CASE priority WHEN 'CRITICAL' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 1 END DESC"

// TaskListFilters holds the supported filters for task listing.
type TaskListFilters struct {
	Statuses     []string // Optional: filter by status
	Priorities   []string // Optional: filter by priority
	AssignedToID *string  // Optional: filter by assignee
	Unassigned   bool     // Optional: show only unassigned
	CreatedByID  *string  // Optional: filter by creator
	Overdue      bool     // Optional: due date in the past, task still active
	Tag          *string  // Optional: tasks carrying the tag
}

// List retrieves tasks matching the filters, ordered by urgency rank then
// creation time.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, error) {
	qb := psql.Select(taskColumns...).From("tasks")

	if len(filters.Statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": filters.Statuses})
	}
	if len(filters.Priorities) > 0 {
		qb = qb.Where(sq.Eq{"priority": filters.Priorities})
	}
	if filters.Unassigned {
		qb = qb.Where(sq.Eq{"assigned_to_id": nil})
	} else if filters.AssignedToID != nil {
		qb = qb.Where(sq.Eq{"assigned_to_id": *filters.AssignedToID})
	}
	if filters.CreatedByID != nil {
		qb = qb.Where(sq.Eq{"created_by_id": *filters.CreatedByID})
	}
	if filters.Overdue {
		qb = qb.Where("due_date < CURRENT_DATE").
			Where(sq.Eq{"status": []domain.TaskStatus{
				domain.TaskStatusOpen,
				domain.TaskStatusInProgress,
			}})
	}
	if filters.Tag != nil {
		qb = qb.Where("? = ANY(tags)", *filters.Tag)
	}

	qb = qb.OrderBy(priorityRankExpr).OrderBy("created_at ASC")

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	return scanTasks(rows)
}
