package dto

import (
	"time"

	"github.com/mtlprog/tasktrail/internal/domain"
)

// TaskResponse is the task representation returned by every task endpoint.
type TaskResponse struct {
	ID           string     `json:"id"`
	Version      int        `json:"version"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	CreatedByID  string     `json:"created_by_id"`
	AssignedToID *string    `json:"assigned_to_id"`
	DueDate      *string    `json:"due_date"`
	Tags         []string   `json:"tags"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToTaskResponse converts a domain task.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Version:      task.Version,
		Title:        task.Title,
		Description:  task.Description,
		Status:       string(task.Status),
		Priority:     string(task.Priority),
		CreatedByID:  task.CreatedByID,
		AssignedToID: task.AssignedToID,
		DueDate:      formatDate(task.DueDate),
		Tags:         task.Tags,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}

// TaskDetailResponse is the task plus its activity feed.
type TaskDetailResponse struct {
	Task   TaskResponse        `json:"task"`
	Events []ActivityEventInfo `json:"events"`
}

// ActivityEventInfo is one activity log entry in a task detail response.
type ActivityEventInfo struct {
	ID            string    `json:"id"`
	ActivityType  string    `json:"activity_type"`
	PerformedByID string    `json:"performed_by_id"`
	Details       string    `json:"details"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToActivityEventInfo converts a domain activity event.
func ToActivityEventInfo(event *domain.ActivityEvent) ActivityEventInfo {
	return ActivityEventInfo{
		ID:            event.ID,
		ActivityType:  string(event.ActivityType),
		PerformedByID: event.PerformedByID,
		Details:       event.Details,
		CreatedAt:     event.CreatedAt,
	}
}

// TaskVersionResponse is one version snapshot in a history response.
type TaskVersionResponse struct {
	VersionNumber int       `json:"version_number"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	AssignedToID  *string   `json:"assigned_to_id"`
	DueDate       *string   `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToTaskVersionResponse converts a domain task version snapshot.
func ToTaskVersionResponse(v *domain.TaskVersion) TaskVersionResponse {
	return TaskVersionResponse{
		VersionNumber: v.VersionNumber,
		Title:         v.Title,
		Description:   v.Description,
		Status:        string(v.Status),
		Priority:      string(v.Priority),
		AssignedToID:  v.AssignedToID,
		DueDate:       formatDate(v.DueDate),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// CommentResponse is one comment in a comment listing.
type CommentResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCommentResponse converts a domain comment.
func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Text:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

// UserResponse is the user representation returned by user endpoints.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain user.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// TaskListResponse wraps a task listing.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// StatsResponse holds the read-only task counters.
type StatsResponse struct {
	TasksByStatus     map[string]int        `json:"tasks_by_status"`
	OverdueCount      int                   `json:"overdue_count"`
	ActiveAssignments []UserAssignmentStats `json:"active_assignments"`
}

// UserAssignmentStats is one user's active assignment count.
type UserAssignmentStats struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	ActiveTasks int    `json:"active_tasks"`
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
