// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/Vingoooo/expert-scoring-system/metrics"
	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
	"github.com/Vingoooo/expert-scoring-system/rubric"
)

// Project mutation labels
const (
	opAdd        = "add"
	opDelete     = "delete"
	opClearVotes = "clear_votes"
)

type ProjectHandler struct {
	svc     *review.Service
	metrics *metrics.Metrics
}

func NewProjectHandler(svc *review.Service, m *metrics.Metrics) *ProjectHandler {
	return &ProjectHandler{svc: svc, metrics: m}
}

// ListProjects handles GET /projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects := h.svc.ListProjects()
	if projects == nil {
		projects = []models.Project{}
	}
	middleware.JSONResponse(w, http.StatusOK, projects)
}

// GetRubric handles GET /rubrics/{stage}
func (h *ProjectHandler) GetRubric(w http.ResponseWriter, r *http.Request) {
	stage, err := rubric.ParseStage(r.PathValue("stage"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown stage")
		return
	}
	criteria, err := rubric.Criteria(stage)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown stage")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, criteria)
}

// CreateProject handles POST /admin/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	stage, err := rubric.ParseStage(req.Stage)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stage must be interim or final")
		return
	}

	project, err := h.svc.AddProject(r.Context(), req.Name, req.Applicant, stage, req.DurationMinutes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.metrics.RecordProjectMutation(opAdd, len(h.svc.ListProjects()))

	middleware.JSONResponse(w, http.StatusCreated, project)
}

// DeleteProject handles DELETE /admin/projects/{name}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProject(r.Context(), r.PathValue("name")); err != nil {
		writeServiceError(w, err)
		return
	}
	h.metrics.RecordProjectMutation(opDelete, len(h.svc.ListProjects()))

	w.WriteHeader(http.StatusNoContent)
}

// ClearVotes handles DELETE /admin/projects/{name}/votes
func (h *ProjectHandler) ClearVotes(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearVotes(r.Context(), r.PathValue("name")); err != nil {
		writeServiceError(w, err)
		return
	}
	h.metrics.RecordProjectMutation(opClearVotes, len(h.svc.ListProjects()))

	w.WriteHeader(http.StatusNoContent)
}
