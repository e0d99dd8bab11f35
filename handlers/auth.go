// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Vingoooo/expert-scoring-system/auth"
	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
)

type AuthHandler struct {
	svc      *review.Service
	sessions *auth.Sessions
}

func NewAuthHandler(svc *review.Service, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions}
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.sessions.Login(req.Role, req.Password, req.Name)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		slog.Warn("login rejected", "role", req.Role, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	case errors.Is(err, auth.ErrInvalidRole), errors.Is(err, auth.ErrNameRequired):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("login failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	resp := models.LoginResponse{Token: p.Token, Role: p.Role}
	if p.Role == models.RoleExpert {
		if _, err := h.svc.OpenSession(p.Name); err != nil {
			h.sessions.Logout(p.Token)
			writeServiceError(w, err)
			return
		}
		resp.Expert = p.Name
	}

	slog.Info("logged in", "role", p.Role, "name", p.Name)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return
	}
	h.sessions.Logout(token)
	w.WriteHeader(http.StatusNoContent)
}
