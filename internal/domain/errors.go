package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrVersionConflict   = errors.New("task was modified concurrently")

	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already exists")
	ErrUserHasTasks   = errors.New("user has active assigned tasks")
	ErrInvalidRole    = errors.New("invalid user role")
	ErrEmptyUserName  = errors.New("name is required")
	ErrEmptyUserEmail = errors.New("email is required")

	// Validation errors
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
	ErrEmptyComment     = errors.New("comment text is required")
)
