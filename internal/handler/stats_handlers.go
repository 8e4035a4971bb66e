package handler

import (
	"net/http"

	"github.com/mtlprog/tasktrail/internal/handler/dto"
)

// handleGetStats returns the read-only task counters.
// @Summary Get task statistics
// @Description Task counts by status, overdue count, and active assignments per user
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	byStatus, err := h.taskRepo.StatusCounts(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	overdue, err := h.taskRepo.OverdueCount(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	assignments, err := h.taskRepo.ActiveAssignmentCounts(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch stats")
		return
	}

	response := dto.StatsResponse{
		TasksByStatus:     byStatus,
		OverdueCount:      overdue,
		ActiveAssignments: make([]dto.UserAssignmentStats, len(assignments)),
	}
	for i, a := range assignments {
		response.ActiveAssignments[i] = dto.UserAssignmentStats{
			UserID:      a.UserID,
			UserName:    a.UserName,
			ActiveTasks: a.ActiveTasks,
		}
	}

	respondJSON(w, http.StatusOK, response)
}
