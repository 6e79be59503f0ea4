package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(voteHandler *VoteHandler, resultsHandler *ResultsHandler, healthHandler *HealthHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/vote", voteHandler.SubmitVote)
		r.Get("/results", resultsHandler.GetResults)
	})

	r.Get("/health", healthHandler.Check)

	return r
}
