// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/review"
)

// writeServiceError maps review errors onto HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, review.ErrValidationFailed):
		middleware.ErrorDetailsResponse(w, http.StatusUnprocessableEntity, "Invalid scores", review.Details(err))
	case errors.Is(err, review.ErrIncompleteSubmission):
		middleware.ErrorDetailsResponse(w, http.StatusUnprocessableEntity,
			"Every project must be scored before submitting", review.Details(err))
	case errors.Is(err, review.ErrDuplicateProject),
		errors.Is(err, review.ErrProjectLocked):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, review.ErrProjectNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, review.ErrInvalidProject),
		errors.Is(err, review.ErrUnknownStage),
		errors.Is(err, review.ErrInvalidExpert):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
