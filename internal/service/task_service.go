package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mtlprog/tasktrail/internal/domain"
	"github.com/mtlprog/tasktrail/internal/repository"
)

// TaskService is the task lifecycle engine. It owns every mutation of the
// task current-state row: each public operation runs in a single transaction
// and, on success, bumps the version, appends one TaskVersion snapshot, and
// appends one ActivityEvent. Comments are the exception: they never touch the
// version counter.
type TaskService struct {
	pool         *pgxpool.Pool
	taskRepo     *repository.TaskRepository
	versionRepo  *repository.TaskVersionRepository
	activityRepo *repository.ActivityRepository
	commentRepo  *repository.CommentRepository
	userRepo     *repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	versionRepo *repository.TaskVersionRepository,
	activityRepo *repository.ActivityRepository,
	commentRepo *repository.CommentRepository,
	userRepo *repository.UserRepository,
) *TaskService {
	return &TaskService{
		pool:         pool,
		taskRepo:     taskRepo,
		versionRepo:  versionRepo,
		activityRepo: activityRepo,
		commentRepo:  commentRepo,
		userRepo:     userRepo,
	}
}

// CreateTaskParams holds the inputs for CreateTask.
type CreateTaskParams struct {
	Title        string
	Description  string
	CreatedByID  string
	AssignedToID *string
	DueDate      *time.Time
	Tags         []string
}

// begin opens a transaction with the standard deferred-rollback cleanup.
func (s *TaskService) begin(ctx context.Context) (pgx.Tx, func(), error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	rollback := func() {
		if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}
	return tx, rollback, nil
}

// resolveUser fetches an active user by ID. Absent and deactivated users are
// both not found.
func (s *TaskService) resolveUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetActiveByID(ctx, userID)
}

// recordMutationAndCommit persists the version snapshot and the activity
// event for a completed mutation, then commits. The snapshot, the event, and
// the task update share the transaction: all three land or none do.
func (s *TaskService) recordMutationAndCommit(
	ctx context.Context,
	tx pgx.Tx,
	task *domain.Task,
	event *domain.ActivityEvent,
) error {
	if err := s.versionRepo.Create(ctx, tx, domain.SnapshotOf(task)); err != nil {
		return fmt.Errorf("create version snapshot: %w", err)
	}
	if err := s.activityRepo.Create(ctx, tx, event); err != nil {
		return fmt.Errorf("create activity event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CreateTask creates a task at version 1 in OPEN status with MEDIUM priority.
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}
	if strings.TrimSpace(params.Description) == "" {
		return nil, domain.ErrEmptyDescription
	}

	if _, err := s.resolveUser(ctx, params.CreatedByID); err != nil {
		return nil, fmt.Errorf("createdBy user: %w", err)
	}
	if params.AssignedToID != nil {
		if _, err := s.resolveUser(ctx, *params.AssignedToID); err != nil {
			return nil, fmt.Errorf("assignedTo user: %w", err)
		}
	}

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	task, err := s.taskRepo.Create(ctx, tx, &domain.Task{
		Title:        params.Title,
		Description:  params.Description,
		Status:       domain.TaskStatusOpen,
		Priority:     domain.TaskPriorityMedium,
		CreatedByID:  params.CreatedByID,
		AssignedToID: params.AssignedToID,
		DueDate:      params.DueDate,
		Tags:         params.Tags,
	})
	if err != nil {
		return nil, err
	}

	event := &domain.ActivityEvent{
		TaskID:        task.ID,
		ActivityType:  domain.ActivityTaskCreated,
		PerformedByID: params.CreatedByID,
		Details:       "Task created",
	}
	if err := s.recordMutationAndCommit(ctx, tx, task, event); err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", task.ID,
		"created_by", params.CreatedByID,
		"version", task.Version,
	)

	return task, nil
}

// GetTask retrieves a task by ID. Read-only, no side effects.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID)
}

// ChangeStatus transitions a task to a new status. Transitioning to the
// current status is a no-op: the task is returned unchanged, no version is
// written and no event is logged. All other attempts are checked against the
// state machine.
func (s *TaskService) ChangeStatus(
	ctx context.Context,
	taskID string,
	newStatus domain.TaskStatus,
	performedByID string,
) (*domain.Task, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, newStatus)
	}

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	task, err := s.taskRepo.GetByIDTx(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveUser(ctx, performedByID); err != nil {
		return nil, fmt.Errorf("performedBy user: %w", err)
	}

	if task.Status == newStatus {
		return task, nil
	}

	oldStatus := task.Status
	if !domain.CanTransition(oldStatus, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, oldStatus, newStatus)
	}

	expectedVersion := task.Version
	task.Status = newStatus
	updated, err := s.taskRepo.Update(ctx, tx, task, expectedVersion)
	if err != nil {
		return nil, err
	}

	event := &domain.ActivityEvent{
		TaskID:        updated.ID,
		ActivityType:  domain.ActivityStatusChanged,
		PerformedByID: performedByID,
		Details:       fmt.Sprintf("Status changed: %s -> %s", oldStatus, newStatus),
	}
	if err := s.recordMutationAndCommit(ctx, tx, updated, event); err != nil {
		return nil, err
	}

	slog.Info("task status changed",
		"task_id", updated.ID,
		"performed_by", performedByID,
		"old_status", oldStatus,
		"new_status", newStatus,
		"version", updated.Version,
	)

	return updated, nil
}

// Reassign changes the task's assignee. A nil assignedToID unassigns the
// task. Reassignment always bumps the version, even to the same user.
func (s *TaskService) Reassign(
	ctx context.Context,
	taskID string,
	assignedToID *string,
	performedByID string,
) (*domain.Task, error) {
	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	task, err := s.taskRepo.GetByIDTx(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveUser(ctx, performedByID); err != nil {
		return nil, fmt.Errorf("performedBy user: %w", err)
	}
	if assignedToID != nil {
		if _, err := s.resolveUser(ctx, *assignedToID); err != nil {
			return nil, fmt.Errorf("assignedTo user: %w", err)
		}
	}

	expectedVersion := task.Version
	task.AssignedToID = assignedToID
	updated, err := s.taskRepo.Update(ctx, tx, task, expectedVersion)
	if err != nil {
		return nil, err
	}

	details := "Assignee changed to unassigned"
	if assignedToID != nil {
		details = "Assignee changed to " + *assignedToID
	}
	event := &domain.ActivityEvent{
		TaskID:        updated.ID,
		ActivityType:  domain.ActivityAssigneeChanged,
		PerformedByID: performedByID,
		Details:       details,
	}
	if err := s.recordMutationAndCommit(ctx, tx, updated, event); err != nil {
		return nil, err
	}

	slog.Info("task reassigned",
		"task_id", updated.ID,
		"performed_by", performedByID,
		"version", updated.Version,
	)

	return updated, nil
}

// ChangePriority sets the task's priority. Always bumps the version.
func (s *TaskService) ChangePriority(
	ctx context.Context,
	taskID string,
	priority domain.TaskPriority,
	performedByID string,
) (*domain.Task, error) {
	if !priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPriority, priority)
	}

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	task, err := s.taskRepo.GetByIDTx(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveUser(ctx, performedByID); err != nil {
		return nil, fmt.Errorf("performedBy user: %w", err)
	}

	expectedVersion := task.Version
	task.Priority = priority
	updated, err := s.taskRepo.Update(ctx, tx, task, expectedVersion)
	if err != nil {
		return nil, err
	}

	event := &domain.ActivityEvent{
		TaskID:        updated.ID,
		ActivityType:  domain.ActivityPriorityChanged,
		PerformedByID: performedByID,
		Details:       fmt.Sprintf("Priority changed to %s", priority),
	}
	if err := s.recordMutationAndCommit(ctx, tx, updated, event); err != nil {
		return nil, err
	}

	slog.Info("task priority changed",
		"task_id", updated.ID,
		"performed_by", performedByID,
		"priority", priority,
		"version", updated.Version,
	)

	return updated, nil
}

// ChangeDueDate sets or clears the task's due date. Always bumps the version.
func (s *TaskService) ChangeDueDate(
	ctx context.Context,
	taskID string,
	dueDate *time.Time,
	performedByID string,
) (*domain.Task, error) {
	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	task, err := s.taskRepo.GetByIDTx(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveUser(ctx, performedByID); err != nil {
		return nil, fmt.Errorf("performedBy user: %w", err)
	}

	expectedVersion := task.Version
	task.DueDate = dueDate
	updated, err := s.taskRepo.Update(ctx, tx, task, expectedVersion)
	if err != nil {
		return nil, err
	}

	details := "Due date cleared"
	if dueDate != nil {
		details = "Due date changed to " + dueDate.Format("2006-01-02")
	}
	event := &domain.ActivityEvent{
		TaskID:        updated.ID,
		ActivityType:  domain.ActivityDueDateChanged,
		PerformedByID: performedByID,
		Details:       details,
	}
	if err := s.recordMutationAndCommit(ctx, tx, updated, event); err != nil {
		return nil, err
	}

	slog.Info("task due date changed",
		"task_id", updated.ID,
		"performed_by", performedByID,
		"version", updated.Version,
	)

	return updated, nil
}

// AddComment appends a comment to a task. Comments are discussion, not
// content history: the version counter is untouched and no snapshot is
// written, but a COMMENT_ADDED event still lands in the activity log.
func (s *TaskService) AddComment(ctx context.Context, taskID, body, authorID string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, domain.ErrEmptyComment
	}

	tx, rollback, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer rollback()

	task, err := s.taskRepo.GetByIDTx(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if _, err := s.resolveUser(ctx, authorID); err != nil {
		return nil, fmt.Errorf("author user: %w", err)
	}

	comment := &domain.Comment{
		TaskID:   task.ID,
		AuthorID: authorID,
		Body:     body,
	}
	if err := s.commentRepo.Create(ctx, tx, comment); err != nil {
		return nil, err
	}

	event := &domain.ActivityEvent{
		TaskID:        task.ID,
		ActivityType:  domain.ActivityCommentAdded,
		PerformedByID: authorID,
		Details:       "Comment added",
	}
	if err := s.activityRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("comment added",
		"task_id", task.ID,
		"author", authorID,
		"comment_id", comment.ID,
	)

	return comment, nil
}

// History returns the task's version snapshots, newest first.
func (s *TaskService) History(ctx context.Context, taskID string) ([]*domain.TaskVersion, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.versionRepo.ListByTaskID(ctx, taskID)
}

// ListComments returns the task's comments, oldest first.
func (s *TaskService) ListComments(ctx context.Context, taskID string) ([]*domain.Comment, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByTaskID(ctx, taskID)
}
