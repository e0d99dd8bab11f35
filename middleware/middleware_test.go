// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vingoooo/expert-scoring-system/models"
	"github.com/Vingoooo/expert-scoring-system/review"
	"github.com/Vingoooo/expert-scoring-system/rubric"
)

// captureLogs routes the default logger into a buffer for the test's duration
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// completedEntry returns the "request completed" log line
func completedEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("Invalid log line %s: %v", line, err)
		}
		if entry["msg"] == "request completed" {
			return entry
		}
	}
	t.Fatalf("No completion entry in %s", buf.String())
	return nil
}

func TestWithLogging_RecordsStatus(t *testing.T) {
	testCases := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "implicit 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("[]"))
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "locked project",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusConflict, review.ErrProjectLocked.Error())
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "created project",
			handler: func(w http.ResponseWriter, r *http.Request) {
				JSONResponse(w, http.StatusCreated, models.Project{Name: "Alpha", Stage: rubric.StageInterim})
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest("PUT", "/expert/projects/Alpha/draft", nil)
			req.Header.Set("X-Real-IP", "10.1.2.3")
			w := httptest.NewRecorder()
			WithLogging(tc.handler)(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Response status = %d, want %d", w.Code, tc.wantStatus)
			}

			entry := completedEntry(t, logs)
			if got := int(entry["status"].(float64)); got != tc.wantStatus {
				t.Errorf("Logged status = %d, want %d", got, tc.wantStatus)
			}
			if entry["path"] != "/expert/projects/Alpha/draft" || entry["method"] != "PUT" {
				t.Errorf("Unexpected log entry: %v", entry)
			}
			if !strings.Contains(logs.String(), `"remote":"10.1.2.3"`) {
				t.Errorf("Expected client IP in start entry, got %s", logs.String())
			}
		})
	}
}

func TestErrorDetailsResponse(t *testing.T) {
	criteria, err := rubric.Criteria(rubric.StageInterim)
	if err != nil {
		t.Fatal(err)
	}
	_, err = review.Validate(map[string]string{"research": "21", "tech": "x"}, criteria)
	if err == nil {
		t.Fatal("Expected validation error")
	}

	w := httptest.NewRecorder()
	ErrorDetailsResponse(w, http.StatusUnprocessableEntity, "Invalid scores", review.Details(err))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "Unprocessable Entity" || resp.Message != "Invalid scores" {
		t.Errorf("Unexpected error response: %+v", resp)
	}
	want := []string{"research: 21 is outside 0-20", `tech: "x" is not an integer`}
	if len(resp.Details) != len(want) {
		t.Fatalf("Details = %v, want %v", resp.Details, want)
	}
	for i := range want {
		if resp.Details[i] != want[i] {
			t.Errorf("Details[%d] = %q, want %q", i, resp.Details[i], want[i])
		}
	}
}

func TestErrorResponse_OmitsDetails(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, review.ErrProjectNotFound.Error())

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "details") {
		t.Errorf("Expected no details field, got %s", body)
	}
	if !strings.Contains(body, `"message":"project not found"`) {
		t.Errorf("Unexpected body %s", body)
	}
}

func TestParseJSONBody_SaveDraftRequest(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "mixed numbers and strings",
			body: `{"scores":{"research":18,"tech":"27","deliverables":" 17 ","output":null}}`,
			want: map[string]string{"research": "18", "tech": "27", "deliverables": " 17 ", "output": ""},
		},
		{
			name: "fractional number kept as text",
			body: `{"scores":{"budget":9.5}}`,
			want: map[string]string{"budget": "9.5"},
		},
		{
			name: "no scores",
			body: `{}`,
			want: map[string]string{},
		},
		{
			name:    "boolean score",
			body:    `{"scores":{"research":true}}`,
			wantErr: true,
		},
		{
			name:    "truncated body",
			body:    `{"scores":{"research":`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/expert/projects/Alpha/draft", strings.NewReader(tc.body))

			var draft models.SaveDraftRequest
			err := ParseJSONBody(req, &draft)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseJSONBody() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}

			got := models.Strings(draft.Scores)
			if len(got) != len(tc.want) {
				t.Fatalf("Scores = %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("Score %q = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestParseJSONBody_CreateProject(t *testing.T) {
	body := `{"name":"Alpha","applicant":"Lab A","stage":"中期","duration_minutes":45}`
	req := httptest.NewRequest("POST", "/admin/projects", strings.NewReader(body))

	var p models.CreateProjectRequest
	if err := ParseJSONBody(req, &p); err != nil {
		t.Fatal(err)
	}
	stage, err := rubric.ParseStage(p.Stage)
	if err != nil {
		t.Fatalf("ParseStage(%q) error = %v", p.Stage, err)
	}
	if p.Name != "Alpha" || stage != rubric.StageInterim || p.DurationMinutes != 45 {
		t.Errorf("Unexpected request: %+v", p)
	}
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("preflight for draft save", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("OPTIONS", "/expert/projects/Alpha/draft", nil)
		req.Header.Set("Origin", "https://review.example.org")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK || called {
			t.Errorf("Preflight should answer 200 without reaching the handler (code %d, called %v)", w.Code, called)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://review.example.org" {
			t.Errorf("Allow-Origin = %q", got)
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PUT") {
			t.Error("PUT must be allowed for draft saves")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
			t.Error("Authorization must be allowed for bearer tokens")
		}
	})

	t.Run("request without origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest("DELETE", "/admin/projects/Alpha/votes", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if !called || w.Code != http.StatusNoContent {
			t.Errorf("Expected handler to run, code %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, want *", got)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		xff        string
		realIP     string
		remoteAddr string
		expected   string
	}{
		{"proxy chain", "203.0.113.7, 10.0.0.1", "10.0.0.9", "10.0.0.1:5000", "203.0.113.7"},
		{"single forwarded", "203.0.113.7", "", "10.0.0.1:5000", "203.0.113.7"},
		{"nginx real ip", "", "198.51.100.4", "10.0.0.1:5000", "198.51.100.4"},
		{"direct", "", "", "192.0.2.10:41234", "192.0.2.10"},
		{"ipv6 direct", "", "", "[2001:db8::1]:443", "[2001:db8::1]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/login", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}
			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("GetClientIP() = %q, want %q", got, tc.expected)
			}
		})
	}
}
