// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vingoooo/expert-scoring-system/auth"
	"github.com/Vingoooo/expert-scoring-system/cliparse"
	"github.com/Vingoooo/expert-scoring-system/db"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
	"github.com/Vingoooo/expert-scoring-system/rubric"
	"github.com/Vingoooo/expert-scoring-system/store"
)

const (
	TestAdminPassword  = "test-admin-password"
	TestExpertPassword = "test-expert-password"
)

// TestTime is the fixed clock used by NewTestService
var TestTime = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

// SetupTestDB opens a private in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           cliparse.DefaultPort,
		DatabaseType:   db.TypeMemory,
		AdminPassword:  TestAdminPassword,
		ExpertPassword: TestExpertPassword,
		LogLevel:       "error",
	}
}

// NewTestService returns a service over an in-memory store with a fixed clock
func NewTestService(t *testing.T) *review.Service {
	t.Helper()
	return review.Load(context.Background(), store.NewMemory(), review.WithClock(func() time.Time { return TestTime }))
}

// NewTestSessions returns sessions using the test passwords
func NewTestSessions() *auth.Sessions {
	cfg := GetTestConfig()
	return auth.NewSessions(cfg.AdminPassword, cfg.ExpertPassword)
}

// CreateTestProject registers a project and fails the test on error
func CreateTestProject(t *testing.T, svc *review.Service, name string, stage rubric.Stage) {
	t.Helper()
	if _, err := svc.AddProject(context.Background(), name, "Applicant "+name, stage, 0); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
}

// LoginAs returns a bearer token for the role. Experts are also registered
// with the service.
func LoginAs(t *testing.T, sessions *auth.Sessions, svc *review.Service, role, name string) string {
	t.Helper()

	password := TestAdminPassword
	if role != models.RoleAdmin {
		password = TestExpertPassword
	}
	p, err := sessions.Login(role, password, name)
	if err != nil {
		t.Fatalf("Failed to log in as %s: %v", role, err)
	}
	if svc != nil && role == models.RoleExpert {
		if _, err := svc.OpenSession(p.Name); err != nil {
			t.Fatalf("Failed to open session: %v", err)
		}
	}
	return p.Token
}

// Bearer builds the Authorization header for MakeRequest
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
