package domain

import "time"

// TaskVersion is an immutable snapshot of a task's versioned fields, written
// once per mutation and never updated or deleted.
type TaskVersion struct {
	ID            string
	TaskID        string
	VersionNumber int
	Title         string
	Description   string
	Status        TaskStatus
	Priority      TaskPriority
	AssignedToID  *string
	DueDate       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	RecordedAt    time.Time
}

// SnapshotOf captures the versioned fields of a task at its current version.
func SnapshotOf(task *Task) *TaskVersion {
	return &TaskVersion{
		TaskID:        task.ID,
		VersionNumber: task.Version,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		Priority:      task.Priority,
		AssignedToID:  task.AssignedToID,
		DueDate:       task.DueDate,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}
