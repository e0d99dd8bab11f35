package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Vingoooo/expert-scoring-system/db"
	"github.com/Vingoooo/expert-scoring-system/metrics"
	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/router"
	"github.com/Vingoooo/expert-scoring-system/rubric"
	"github.com/Vingoooo/expert-scoring-system/testutil"
)

func TestOpenService_CorruptDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	garbage := bytes.Repeat([]byte("not a sqlite file\n"), 512)
	if err := os.WriteFile(path, garbage, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := testutil.GetTestConfig()
	cfg.DatabaseType = db.TypeSQLite
	cfg.DatabaseURL = path

	svc, closeStore := openService(context.Background(), cfg)
	defer closeStore()

	warnings := svc.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0], "database unavailable") {
		t.Fatalf("Expected a database warning, got %v", warnings)
	}
	if len(svc.ListProjects()) != 0 {
		t.Error("Expected an empty registry")
	}

	// The fallback store still accepts writes
	testutil.CreateTestProject(t, svc, "Alpha", rubric.StageFinal)

	mux := router.NewRouter(svc, testutil.NewTestSessions(), metrics.New())
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health/details", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var details models.HealthDetails
	testutil.AssertJSON(t, w, &details)
	if details.Status != "degraded" || details.Projects != 1 {
		t.Errorf("Unexpected health details: %+v", details)
	}
}

func TestOpenService_SQLiteFile(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.DatabaseType = db.TypeSQLite
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "scores.db")

	svc, closeStore := openService(context.Background(), cfg)
	testutil.CreateTestProject(t, svc, "Alpha", rubric.StageInterim)
	closeStore()

	// Reopening the same file restores the registry
	svc, closeStore = openService(context.Background(), cfg)
	defer closeStore()

	if w := svc.Warnings(); len(w) != 0 {
		t.Errorf("Expected no warnings, got %v", w)
	}
	projects := svc.ListProjects()
	if len(projects) != 1 || projects[0].Name != "Alpha" {
		t.Errorf("Expected Alpha after reopen, got %+v", projects)
	}
}
