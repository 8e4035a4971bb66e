package dto

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	CreatedByID  string   `json:"created_by_id"`
	AssignedToID *string  `json:"assigned_to_id,omitempty"`
	DueDate      *string  `json:"due_date,omitempty"` // YYYY-MM-DD
	Tags         []string `json:"tags,omitempty"`
}

// UpdateStatusRequest represents the request body for PATCH /tasks/:id/status.
type UpdateStatusRequest struct {
	Status        string `json:"status"`
	PerformedByID string `json:"performed_by_id"`
}

// AssignRequest represents the request body for PATCH /tasks/:id/assignee.
// A null assigned_to_id unassigns the task.
type AssignRequest struct {
	AssignedToID  *string `json:"assigned_to_id"`
	PerformedByID string  `json:"performed_by_id"`
}

// UpdatePriorityRequest represents the request body for PATCH /tasks/:id/priority.
type UpdatePriorityRequest struct {
	Priority      string `json:"priority"`
	PerformedByID string `json:"performed_by_id"`
}

// UpdateDueDateRequest represents the request body for PATCH /tasks/:id/due-date.
// A null due_date clears the due date.
type UpdateDueDateRequest struct {
	DueDate       *string `json:"due_date"` // YYYY-MM-DD
	PerformedByID string  `json:"performed_by_id"`
}

// CreateCommentRequest represents the request body for POST /tasks/:id/comments.
type CreateCommentRequest struct {
	Text     string `json:"text"`
	AuthorID string `json:"author_id"`
}

// CreateUserRequest represents the request body for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// UpdateUserRequest represents the request body for PUT /users/:id.
type UpdateUserRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
