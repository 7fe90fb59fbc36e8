package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sortrush/leaderboard-api/internal/models"
)

// GetLeaderboard handles GET /api/v1/leaderboard/{mode}
// @Summary Get Leaderboard
// @Description Top entries for one mode, or the cross-mode aggregate via "all"
// @Tags Leaderboards
// @Produce json
// @Param mode path string true "Game mode or all"
// @Param limit query int false "Limit" default(25)
// @Success 200 {object} map[string]interface{} "Leaderboard"
// @Failure 400 {object} map[string]string "Unknown mode"
// @Router /leaderboard/{mode} [get]
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode, err := models.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Unknown game mode")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"), DefaultQueryLimit)

	entries, err := h.leaderboard.Query(r.Context(), mode, limit)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Unknown game mode")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"gameMode": mode,
		"entries":  entries,
	})
}

// GetOverview handles GET /api/v1/overview
// @Summary Cross-Mode Overview
// @Description Top entries of every registered mode in one response
// @Tags Leaderboards
// @Produce json
// @Param limit query int false "Limit per mode" default(10)
// @Success 200 {object} map[string]interface{} "Boards"
// @Router /overview [get]
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r.URL.Query().Get("limit"), 10)

	boards, err := h.leaderboard.Overview(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Overview failed", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Overview failed")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"boards": boards,
	})
}

// GetModes handles GET /api/v1/modes
// @Summary List Game Modes
// @Produce json
// @Success 200 {object} map[string]interface{} "Registered modes"
// @Router /modes [get]
func (h *Handler) GetModes(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"modes":     models.SubmitModes(),
		"aggregate": models.ModeAll,
	})
}

func parseLimit(raw string, fallback int) int {
	limit := fallback
	if raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}
	return limit
}
