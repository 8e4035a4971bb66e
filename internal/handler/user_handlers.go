package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mtlprog/tasktrail/internal/domain"
	"github.com/mtlprog/tasktrail/internal/handler/dto"
)

// handleCreateUser creates a new user.
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User creation request"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(ctx, req.Name, req.Email, domain.UserRole(req.Role))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// handleGetUser retrieves an active user.
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := extractID(w, r, "user")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(ctx, userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleListUsers lists users.
// @Summary List users
// @Tags users
// @Produce json
// @Param role query string false "Filter by role"
// @Param active_only query bool false "Only active users (default true)"
// @Success 200 {array} dto.UserResponse
// @Router /users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var role *domain.UserRole
	if raw := q.Get("role"); raw != "" {
		parsed := domain.UserRole(raw)
		role = &parsed
	}
	activeOnly := q.Get("active_only") != "false"

	users, err := h.userService.ListUsers(ctx, role, activeOnly)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i, user := range users {
		response[i] = dto.ToUserResponse(user)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleUpdateUser updates a user's name and role.
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "User update request"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := extractID(w, r, "user")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(ctx, userID, req.Name, domain.UserRole(req.Role))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// handleDeleteUser soft-deletes a user.
// @Summary Delete a user
// @Description Soft delete. Fails while the user still has active assigned tasks.
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := extractID(w, r, "user")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
