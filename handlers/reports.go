// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/report"
	"github.com/Vingoooo/expert-scoring-system/review"
)

type ReportHandler struct {
	svc *review.Service
}

func NewReportHandler(svc *review.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ListVotes handles GET /admin/votes
// Returns every final vote with a human-readable age
func (h *ReportHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	votes := h.svc.FinalVotes()

	listing := make([]models.VoteListing, 0, len(votes))
	for _, v := range votes {
		listing = append(listing, models.VoteListing{
			VoteRecord:   v,
			SubmittedAgo: humanize.Time(v.Timestamp),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, listing)
}

// ExportVotesCSV handles GET /admin/votes.csv
func (h *ReportHandler) ExportVotesCSV(w http.ResponseWriter, r *http.Request) {
	votes := h.svc.FinalVotes()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="votes.csv"`)
	w.WriteHeader(http.StatusOK)

	if err := report.WriteVotesCSV(w, votes); err != nil {
		slog.Error("failed to write vote export", "error", err)
		return
	}
	slog.Info("votes exported", "rows", len(votes))
}

// GetSummary handles GET /admin/summary
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summaries := report.Summarize(h.svc.FinalVotes())
	if summaries == nil {
		summaries = []models.ProjectSummary{}
	}
	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// GetHealthDetails handles GET /health/details
// Status is "degraded" when persisted state could not be loaded at startup
func (h *ReportHandler) GetHealthDetails(w http.ResponseWriter, r *http.Request) {
	warnings := h.svc.Warnings()
	status := "ok"
	if len(warnings) > 0 {
		status = "degraded"
	}

	middleware.JSONResponse(w, http.StatusOK, models.HealthDetails{
		Status:   status,
		Projects: len(h.svc.ListProjects()),
		Votes:    len(h.svc.FinalVotes()),
		Warnings: warnings,
	})
}
