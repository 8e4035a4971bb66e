package repository

import (
	"context"
	"fmt"
)

// UserAssignmentCount holds the number of active tasks assigned to one user.
type UserAssignmentCount struct {
	UserID      string
	UserName    string
	ActiveTasks int
}

// StatusCounts returns the number of tasks in each status.
func (r *TaskRepository) StatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, "SELECT status, COUNT(*) FROM tasks GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("query status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return counts, nil
}

// OverdueCount returns the number of active tasks past their due date.
func (r *TaskRepository) OverdueCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks
		WHERE due_date < CURRENT_DATE
		  AND status IN ('OPEN', 'IN_PROGRESS')
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overdue tasks: %w", err)
	}
	return count, nil
}

// ActiveAssignmentCounts returns, per active user, the number of active tasks
// currently assigned to them.
func (r *TaskRepository) ActiveAssignmentCounts(ctx context.Context) ([]UserAssignmentCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name,
		       COUNT(t.id) FILTER (WHERE t.status IN ('OPEN', 'IN_PROGRESS')) AS active_tasks
		FROM users u
		LEFT JOIN tasks t ON t.assigned_to_id = u.id
		WHERE u.is_active = true
		GROUP BY u.id, u.name
		ORDER BY u.name
	`)
	if err != nil {
		return nil, fmt.Errorf("query assignment counts: %w", err)
	}
	defer rows.Close()

	var counts []UserAssignmentCount
	for rows.Next() {
		var c UserAssignmentCount
		if err := rows.Scan(&c.UserID, &c.UserName, &c.ActiveTasks); err != nil {
			return nil, fmt.Errorf("scan assignment count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return counts, nil
}
