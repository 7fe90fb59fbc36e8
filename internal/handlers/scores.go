package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sortrush/leaderboard-api/internal/models"
	"github.com/sortrush/leaderboard-api/internal/store"
)

// SubmitScore handles POST /api/v1/scores
// @Summary Submit Score
// @Description Persists one score and returns the stored entry with its rank
// @Tags Leaderboards
// @Accept json
// @Produce json
// @Param body body models.SubmitRequest true "Submission"
// @Success 201 {object} models.SubmitResult "Stored entry and rank"
// @Failure 400 {object} map[string]string "Validation failure"
// @Failure 409 {object} map[string]string "Write conflict, safe to retry"
// @Failure 504 {object} map[string]string "Store timeout, safe to retry"
// @Router /scores [post]
func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	result, err := h.leaderboard.Submit(r.Context(), req)
	if err != nil {
		switch {
		case models.IsValidation(err):
			h.errorResponse(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrWriteConflict):
			h.logger.Warnw("Submission lost write conflict", "mode", req.GameMode)
			h.errorResponse(w, http.StatusConflict, "Write conflict, please retry")
		case errors.Is(err, store.ErrTimeout):
			h.logger.Errorw("Submission timed out at the store", "mode", req.GameMode)
			h.errorResponse(w, http.StatusGatewayTimeout, "Store timeout, please retry")
		default:
			h.logger.Errorw("Submission failed", "mode", req.GameMode, "error", err)
			h.errorResponse(w, http.StatusInternalServerError, "Submission failed")
		}
		return
	}

	h.jsonResponse(w, http.StatusCreated, result)
}
