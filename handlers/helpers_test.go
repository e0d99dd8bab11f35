// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vingoooo/expert-scoring-system/auth"
	"github.com/Vingoooo/expert-scoring-system/metrics"
	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
	"github.com/Vingoooo/expert-scoring-system/testutil"
)

type testEnv struct {
	svc      *review.Service
	sessions *auth.Sessions
	metrics  *metrics.Metrics

	auth     *AuthHandler
	projects *ProjectHandler
	reports  *ReportHandler
	scoring  *ScoringHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	svc := testutil.NewTestService(t)
	sessions := testutil.NewTestSessions()
	m := metrics.New()
	return &testEnv{
		svc:      svc,
		sessions: sessions,
		metrics:  m,
		auth:     NewAuthHandler(svc, sessions),
		projects: NewProjectHandler(svc, m),
		reports:  NewReportHandler(svc),
		scoring:  NewScoringHandler(svc, m),
	}
}

func (e *testEnv) asAdmin(h http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireRole(e.sessions, models.RoleAdmin, h)
}

func (e *testEnv) asExpert(h http.HandlerFunc) http.HandlerFunc {
	return middleware.RequireRole(e.sessions, models.RoleExpert, h)
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	return testutil.LoginAs(t, e.sessions, e.svc, models.RoleAdmin, "")
}

func (e *testEnv) expertToken(t *testing.T, name string) string {
	t.Helper()
	return testutil.LoginAs(t, e.sessions, e.svc, models.RoleExpert, name)
}

func (e *testEnv) scrapeMetrics() string {
	w := httptest.NewRecorder()
	e.metrics.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	return w.Body.String()
}

// saveDraft sends PUT /expert/projects/{name}/draft for the expert token
func (e *testEnv) saveDraft(token, project string, scores map[string]string) *httptest.ResponseRecorder {
	raw := make(map[string]models.RawScore, len(scores))
	for k, v := range scores {
		raw[k] = models.RawScore(v)
	}
	req := testutil.MakeRequest("PUT", "/expert/projects/"+project+"/draft",
		models.SaveDraftRequest{Scores: raw}, testutil.Bearer(token))
	req.SetPathValue("name", project)
	w := httptest.NewRecorder()
	e.asExpert(e.scoring.SaveDraft)(w, req)
	return w
}

// submit sends POST /expert/submit for the expert token
func (e *testEnv) submit(token string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/expert/submit", nil, testutil.Bearer(token))
	w := httptest.NewRecorder()
	e.asExpert(e.scoring.Submit)(w, req)
	return w
}

// fullMarks returns a valid score form worth 89 points
func fullMarks() map[string]string {
	return map[string]string{
		"research":     "18",
		"tech":         "27",
		"deliverables": "17",
		"output":       "18",
		"budget":       "9",
	}
}
