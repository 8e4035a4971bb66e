package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mtlprog/tasktrail/internal/domain"
	"github.com/mtlprog/tasktrail/internal/repository"
)

// UserService handles user directory operations: CRUD plus soft delete.
// Deletion is guarded by the lifecycle engine's hook: a user with active
// assigned tasks cannot be deactivated.
type UserService struct {
	userRepo *repository.UserRepository
	taskRepo *repository.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, taskRepo *repository.TaskRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
}

// CreateUser creates a new active user. Emails are unique across active and
// deactivated users.
func (s *UserService) CreateUser(ctx context.Context, name, email string, role domain.UserRole) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyUserName
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.ErrEmptyUserEmail
	}
	if role == "" {
		role = domain.UserRoleMember
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmailTaken, email)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Name:  name,
		Email: email,
		Role:  role,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID, "role", user.Role)

	return user, nil
}

// GetUser retrieves an active user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetActiveByID(ctx, userID)
}

// ListUsers retrieves users, optionally filtered by role.
func (s *UserService) ListUsers(ctx context.Context, role *domain.UserRole, activeOnly bool) ([]*domain.User, error) {
	if role != nil && !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, *role)
	}
	return s.userRepo.List(ctx, role, activeOnly)
}

// UpdateUser updates a user's name and role.
func (s *UserService) UpdateUser(ctx context.Context, userID, name string, role domain.UserRole) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrEmptyUserName
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}
	return s.userRepo.Update(ctx, userID, name, role)
}

// DeleteUser soft-deletes a user. Fails if the user still holds active task
// assignments; the row survives so historical references stay resolvable.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.userRepo.GetActiveByID(ctx, userID); err != nil {
		return err
	}

	count, err := s.taskRepo.CountActiveAssignedTo(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d active tasks", domain.ErrUserHasTasks, count)
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}

	slog.Info("user deactivated", "user_id", userID)

	return nil
}
