// Package handlers is the thin HTTP adapter over the leaderboard engine.
// It maps transport concerns (JSON bodies, query params, status codes) onto
// the core's Submit and Query operations and nothing else.
package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sortrush/leaderboard-api/internal/logic"
	"github.com/sortrush/leaderboard-api/internal/store"
)

// MaxBodySize limits request bodies to 64KB; submissions are tiny.
const MaxBodySize = 65536

// DefaultQueryLimit is used when a leaderboard query omits the limit param.
const DefaultQueryLimit = 25

type Config struct {
	Leaderboard logic.LeaderboardService
	Store       store.Backend
	Logger      *zap.Logger
}

type Handler struct {
	leaderboard logic.LeaderboardService
	store       store.Backend
	logger      *zap.SugaredLogger
	validator   *validator.Validate
}

func New(cfg Config) *Handler {
	return &Handler{
		leaderboard: cfg.Leaderboard,
		store:       cfg.Store,
		logger:      cfg.Logger.Sugar(),
		validator:   validator.New(),
	}
}

// Routes returns the API routes. Methods other than the ones registered
// here get chi's automatic 405.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/scores", h.SubmitScore)
	r.Get("/leaderboard/{mode}", h.GetLeaderboard)
	r.Get("/overview", h.GetOverview)
	r.Get("/modes", h.GetModes)
	return r
}
