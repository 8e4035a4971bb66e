package domain

import "time"

// ActivityType represents the kind of semantic action recorded for a task.
type ActivityType string

const (
	ActivityTaskCreated     ActivityType = "TASK_CREATED"
	ActivityStatusChanged   ActivityType = "STATUS_CHANGED"
	ActivityAssigneeChanged ActivityType = "ASSIGNEE_CHANGED"
	ActivityPriorityChanged ActivityType = "PRIORITY_CHANGED"
	ActivityDueDateChanged  ActivityType = "DUE_DATE_CHANGED"
	ActivityCommentAdded    ActivityType = "COMMENT_ADDED"
)

// ActivityEvent is an append-only audit record: who did what to a task, when.
// Events are chronological and independent of version snapshots.
type ActivityEvent struct {
	ID            string
	TaskID        string
	ActivityType  ActivityType
	PerformedByID string
	Details       string
	CreatedAt     time.Time
}
