// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/Vingoooo/expert-scoring-system/auth"
	"github.com/Vingoooo/expert-scoring-system/handlers"
	"github.com/Vingoooo/expert-scoring-system/metrics"
	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
)

func NewRouter(svc *review.Service, sessions *auth.Sessions, m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc, sessions)
	projectHandler := handlers.NewProjectHandler(svc, m)
	reportHandler := handlers.NewReportHandler(svc)
	scoringHandler := handlers.NewScoringHandler(svc, m)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(sessions, models.RoleAdmin, h))
	}
	expert := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(sessions, models.RoleExpert, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /health/details", reportHandler.GetHealthDetails)
	mux.Handle("GET /metrics", m.Handler())

	// Login (public)
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(authHandler.Logout))

	// Catalog (public)
	mux.HandleFunc("GET /rubrics/{stage}", middleware.WithLogging(projectHandler.GetRubric))
	mux.HandleFunc("GET /projects", middleware.WithLogging(projectHandler.ListProjects))

	// Project registry and reports (admin)
	mux.HandleFunc("POST /admin/projects", admin(projectHandler.CreateProject))
	mux.HandleFunc("DELETE /admin/projects/{name}", admin(projectHandler.DeleteProject))
	mux.HandleFunc("DELETE /admin/projects/{name}/votes", admin(projectHandler.ClearVotes))
	mux.HandleFunc("GET /admin/votes", admin(reportHandler.ListVotes))
	mux.HandleFunc("GET /admin/votes.csv", admin(reportHandler.ExportVotesCSV))
	mux.HandleFunc("GET /admin/summary", admin(reportHandler.GetSummary))

	// Scoring (expert)
	mux.HandleFunc("GET /expert/session", expert(scoringHandler.GetSession))
	mux.HandleFunc("PUT /expert/projects/{name}/draft", expert(scoringHandler.SaveDraft))
	mux.HandleFunc("POST /expert/submit", expert(scoringHandler.Submit))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("expert-scoring-system API v1"))
	})

	return mux
}
