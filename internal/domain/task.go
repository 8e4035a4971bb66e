package domain

import "time"

// TaskStatus represents the status of a task in the state machine.
type TaskStatus string

const (
	TaskStatusOpen       TaskStatus = "OPEN"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive returns true if the task still demands work from its assignee.
func (s TaskStatus) IsActive() bool {
	return s == TaskStatusOpen || s == TaskStatusInProgress
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "LOW"
	TaskPriorityMedium   TaskPriority = "MEDIUM"
	TaskPriorityHigh     TaskPriority = "HIGH"
	TaskPriorityCritical TaskPriority = "CRITICAL"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	default:
		return false
	}
}

// UrgencyRank returns the fixed urgency rank of the priority (1-4).
// Used only for ordering; business rules never branch on it.
func (p TaskPriority) UrgencyRank() int {
	switch p {
	case TaskPriorityLow:
		return 1
	case TaskPriorityMedium:
		return 2
	case TaskPriorityHigh:
		return 3
	case TaskPriorityCritical:
		return 4
	default:
		return 0
	}
}

// Task is the central work item. The current-state row is owned exclusively by
// the lifecycle service; every successful mutation bumps Version and leaves an
// immutable TaskVersion snapshot behind.
type Task struct {
	ID           string
	Version      int
	Title        string
	Description  string
	Status       TaskStatus
	Priority     TaskPriority
	CreatedByID  string
	AssignedToID *string
	DueDate      *time.Time
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAssignedTo checks if the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}
