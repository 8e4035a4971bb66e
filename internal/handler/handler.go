package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/mtlprog/tasktrail/docs" // Import generated docs
	"github.com/mtlprog/tasktrail/internal/handler/dto"
	"github.com/mtlprog/tasktrail/internal/middleware"
	"github.com/mtlprog/tasktrail/internal/repository"
	"github.com/mtlprog/tasktrail/internal/service"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool         *pgxpool.Pool
	taskService  *service.TaskService
	userService  *service.UserService
	taskRepo     *repository.TaskRepository
	activityRepo *repository.ActivityRepository
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	taskRepo := repository.NewTaskRepository(pool)
	versionRepo := repository.NewTaskVersionRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	taskService := service.NewTaskService(pool, taskRepo, versionRepo, activityRepo, commentRepo, userRepo)
	userService := service.NewUserService(userRepo, taskRepo)

	return &Handler{
		pool:         pool,
		taskService:  taskService,
		userService:  userService,
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	logged := middleware.RequestLogger

	// Tasks
	mux.Handle("POST /api/v1/tasks", logged(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("GET /api/v1/tasks", logged(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("GET /api/v1/tasks/{id}", logged(http.HandlerFunc(h.handleGetTask)))
	mux.Handle("PATCH /api/v1/tasks/{id}/status", logged(http.HandlerFunc(h.handleUpdateStatus)))
	mux.Handle("PATCH /api/v1/tasks/{id}/assignee", logged(http.HandlerFunc(h.handleAssign)))
	mux.Handle("PATCH /api/v1/tasks/{id}/priority", logged(http.HandlerFunc(h.handleUpdatePriority)))
	mux.Handle("PATCH /api/v1/tasks/{id}/due-date", logged(http.HandlerFunc(h.handleUpdateDueDate)))
	mux.Handle("POST /api/v1/tasks/{id}/comments", logged(http.HandlerFunc(h.handleAddComment)))
	mux.Handle("GET /api/v1/tasks/{id}/comments", logged(http.HandlerFunc(h.handleListComments)))
	mux.Handle("GET /api/v1/tasks/{id}/history", logged(http.HandlerFunc(h.handleHistory)))

	// Stats
	mux.Handle("GET /api/v1/stats", logged(http.HandlerFunc(h.handleGetStats)))

	// Users
	mux.Handle("POST /api/v1/users", logged(http.HandlerFunc(h.handleCreateUser)))
	mux.Handle("GET /api/v1/users", logged(http.HandlerFunc(h.handleListUsers)))
	mux.Handle("GET /api/v1/users/{id}", logged(http.HandlerFunc(h.handleGetUser)))
	mux.Handle("PUT /api/v1/users/{id}", logged(http.HandlerFunc(h.handleUpdateUser)))
	mux.Handle("DELETE /api/v1/users/{id}", logged(http.HandlerFunc(h.handleDeleteUser)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes the error response.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}

// extractID extracts and validates a UUID path parameter.
// Returns (id, true) if valid, ("", false) if invalid (error already sent to client).
func extractID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+" id is required")
		return "", false
	}

	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", name+"_id must be a valid UUID")
		return "", false
	}

	return id, true
}
