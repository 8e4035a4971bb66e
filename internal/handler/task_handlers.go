package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mtlprog/tasktrail/internal/domain"
	"github.com/mtlprog/tasktrail/internal/handler/dto"
	"github.com/mtlprog/tasktrail/internal/repository"
	"github.com/mtlprog/tasktrail/internal/service"
)

// parseDueDate parses an optional YYYY-MM-DD due date.
// Returns (nil, true) for an absent date, (nil, false) for a malformed one
// (error already sent to client).
func parseDueDate(w http.ResponseWriter, raw *string) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "due_date must be formatted as YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

// handleCreateTask creates a new task.
// @Summary Create a new task
// @Description Creates a task at version 1 in OPEN status with MEDIUM priority.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if req.CreatedByID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "created_by_id is required")
		return
	}

	dueDate, ok := parseDueDate(w, req.DueDate)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(ctx, service.CreateTaskParams{
		Title:        req.Title,
		Description:  req.Description,
		CreatedByID:  req.CreatedByID,
		AssignedToID: req.AssignedToID,
		DueDate:      dueDate,
		Tags:         req.Tags,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleGetTask retrieves task details with the activity feed.
// @Summary Get task details
// @Description Get full task details including the activity event feed
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	events, err := h.activityRepo.ListByTaskID(ctx, taskID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch events")
		return
	}

	response := dto.TaskDetailResponse{
		Task:   dto.ToTaskResponse(task),
		Events: make([]dto.ActivityEventInfo, len(events)),
	}
	for i, event := range events {
		response.Events[i] = dto.ToActivityEventInfo(event)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleListTasks lists tasks with simple attribute filters.
// @Summary List tasks
// @Description List tasks filtered by status, priority, assignee, creator, overdue, or tag, ordered by urgency
// @Tags tasks
// @Produce json
// @Param status query string false "Comma-separated statuses"
// @Param priority query string false "Comma-separated priorities"
// @Param assignee query string false "Assignee user ID"
// @Param unassigned query bool false "Only unassigned tasks"
// @Param creator query string false "Creator user ID"
// @Param overdue query bool false "Only overdue active tasks"
// @Param tag query string false "Tag filter"
// @Success 200 {object} dto.TaskListResponse
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filters := repository.TaskListFilters{
		Unassigned: q.Get("unassigned") == "true",
		Overdue:    q.Get("overdue") == "true",
	}
	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if !domain.TaskStatus(s).IsValid() {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid status: "+s)
				return
			}
			filters.Statuses = append(filters.Statuses, s)
		}
	}
	if raw := q.Get("priority"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if !domain.TaskPriority(p).IsValid() {
				respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid priority: "+p)
				return
			}
			filters.Priorities = append(filters.Priorities, p)
		}
	}
	if assignee := q.Get("assignee"); assignee != "" {
		filters.AssignedToID = &assignee
	}
	if creator := q.Get("creator"); creator != "" {
		filters.CreatedByID = &creator
	}
	if tag := q.Get("tag"); tag != "" {
		filters.Tag = &tag
	}

	tasks, err := h.taskRepo.List(ctx, filters)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := dto.TaskListResponse{Tasks: make([]dto.TaskResponse, len(tasks))}
	for i, task := range tasks {
		response.Tasks[i] = dto.ToTaskResponse(task)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleUpdateStatus changes task status.
// @Summary Transition task status
// @Description Change task status through the state machine. Transitioning to the current status is a no-op.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateStatusRequest true "Status update request"
// @Success 200 {object} dto.TaskResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id}/status [patch]
func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Status == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "status is required")
		return
	}
	if req.PerformedByID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "performed_by_id is required")
		return
	}

	task, err := h.taskService.ChangeStatus(ctx, taskID, domain.TaskStatus(req.Status), req.PerformedByID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleAssign changes the task assignee.
// @Summary Reassign task
// @Description Assign the task to a user, or unassign with a null assigned_to_id. Always bumps the version.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.AssignRequest true "Assign request"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id}/assignee [patch]
func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	var req dto.AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.PerformedByID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "performed_by_id is required")
		return
	}

	task, err := h.taskService.Reassign(ctx, taskID, req.AssignedToID, req.PerformedByID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleUpdatePriority changes the task priority.
// @Summary Change task priority
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdatePriorityRequest true "Priority update request"
// @Success 200 {object} dto.TaskResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id}/priority [patch]
func (h *Handler) handleUpdatePriority(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	var req dto.UpdatePriorityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Priority == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "priority is required")
		return
	}
	if req.PerformedByID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "performed_by_id is required")
		return
	}

	task, err := h.taskService.ChangePriority(ctx, taskID, domain.TaskPriority(req.Priority), req.PerformedByID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleUpdateDueDate changes or clears the task due date.
// @Summary Change task due date
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateDueDateRequest true "Due date update request"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id}/due-date [patch]
func (h *Handler) handleUpdateDueDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	var req dto.UpdateDueDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.PerformedByID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "performed_by_id is required")
		return
	}

	dueDate, ok := parseDueDate(w, req.DueDate)
	if !ok {
		return
	}

	task, err := h.taskService.ChangeDueDate(ctx, taskID, dueDate, req.PerformedByID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleAddComment appends a comment to a task.
// @Summary Add a comment
// @Description Appends a comment. Comments never bump the task version.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.CreateCommentRequest true "Comment request"
// @Success 201 {object} dto.CommentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id}/comments [post]
func (h *Handler) handleAddComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.AuthorID == "" {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "author_id is required")
		return
	}

	comment, err := h.taskService.AddComment(ctx, taskID, req.Text, req.AuthorID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToCommentResponse(comment))
}

// handleListComments lists a task's comments, oldest first.
// @Summary List comments
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id}/comments [get]
func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	comments, err := h.taskService.ListComments(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := make([]dto.CommentResponse, len(comments))
	for i, comment := range comments {
		response[i] = dto.ToCommentResponse(comment)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleHistory lists a task's version snapshots, newest first.
// @Summary Get task history
// @Description Version snapshots ordered by version number descending
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} dto.TaskVersionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id}/history [get]
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractID(w, r, "task")
	if !ok {
		return
	}

	versions, err := h.taskService.History(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := make([]dto.TaskVersionResponse, len(versions))
	for i, version := range versions {
		response[i] = dto.ToTaskVersionResponse(version)
	}

	respondJSON(w, http.StatusOK, response)
}
