// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/Vingoooo/expert-scoring-system/metrics"
	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
)

type ScoringHandler struct {
	svc     *review.Service
	metrics *metrics.Metrics
}

func NewScoringHandler(svc *review.Service, m *metrics.Metrics) *ScoringHandler {
	return &ScoringHandler{svc: svc, metrics: m}
}

// GetSession handles GET /expert/session
// Returns every project with the expert's effective votes and lock state
func (h *ScoringHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.svc.Session(p.Name))
}

// SaveDraft handles PUT /expert/projects/{name}/draft
func (h *ScoringHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	var req models.SaveDraftRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	record, err := h.svc.SaveDraft(p.Name, r.PathValue("name"), models.Strings(req.Scores))
	if err != nil {
		h.recordValidation(err)
		writeServiceError(w, err)
		return
	}
	h.metrics.RecordDraftSaved()

	middleware.JSONResponse(w, http.StatusOK, record)
}

func (h *ScoringHandler) recordValidation(err error) {
	var ve *review.ValidationError
	if !errors.As(err, &ve) {
		return
	}
	for _, e := range ve.Errors {
		var oor *review.ScoreOutOfRangeError
		var nie *review.ScoreNotIntegerError
		switch {
		case errors.As(e, &oor):
			h.metrics.RecordValidationFailure(oor.Criterion)
		case errors.As(e, &nie):
			h.metrics.RecordValidationFailure(nie.Criterion)
		}
	}
}

// Submit handles POST /expert/submit
// Promotes the expert's drafts and earlier finals to final votes
func (h *ScoringHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}

	records, err := h.svc.SubmitFinal(r.Context(), p.Name)
	switch {
	case errors.Is(err, review.ErrIncompleteSubmission):
		h.metrics.RecordSubmission(metrics.ResultIncomplete)
	case err != nil:
		h.metrics.RecordSubmission(metrics.ResultError)
	default:
		h.metrics.RecordSubmission(metrics.ResultOK)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if records == nil {
		records = []models.VoteRecord{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.SubmitResponse{
		Submitted: records,
		Message:   "Final scores submitted",
	})
}
