// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Vingoooo/expert-scoring-system/models"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		given    string
		expected string
		want     bool
	}{
		{"match", "secret", "secret", true},
		{"mismatch", "secret", "Secret", false},
		{"prefix", "sec", "secret", false},
		{"empty given", "", "secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckPassword(tt.given, tt.expected); got != tt.want {
				t.Errorf("CheckPassword(%q, %q) = %v, want %v", tt.given, tt.expected, got, tt.want)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	sessions := NewSessions("admin-pw", "expert-pw")

	tests := []struct {
		name     string
		role     string
		password string
		expert   string
		wantErr  error
		wantName string
	}{
		{"admin login", models.RoleAdmin, "admin-pw", "", nil, models.RoleAdmin},
		{"admin ignores name", models.RoleAdmin, "admin-pw", "Mallory", nil, models.RoleAdmin},
		{"expert login", models.RoleExpert, "expert-pw", "  Zhang ", nil, "Zhang"},
		{"expert without name", models.RoleExpert, "expert-pw", "   ", ErrNameRequired, ""},
		{"wrong admin password", models.RoleAdmin, "expert-pw", "", ErrInvalidCredentials, ""},
		{"wrong expert password", models.RoleExpert, "admin-pw", "Li", ErrInvalidCredentials, ""},
		{"unknown role", "observer", "admin-pw", "", ErrInvalidRole, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := sessions.Login(tt.role, tt.password, tt.expert)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if p.Name != tt.wantName {
				t.Errorf("Login() name = %q, want %q", p.Name, tt.wantName)
			}
			if _, err := uuid.Parse(p.Token); err != nil {
				t.Errorf("Login() token %q is not a UUID", p.Token)
			}
		})
	}
}

func TestLogin_EmptyConfiguredPassword(t *testing.T) {
	sessions := NewSessions("", "")
	if _, err := sessions.Login(models.RoleAdmin, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLookupAndLogout(t *testing.T) {
	sessions := NewSessions("admin-pw", "expert-pw")

	p, err := sessions.Login(models.RoleExpert, "expert-pw", "Wang")
	if err != nil {
		t.Fatal(err)
	}

	got, err := sessions.Lookup(p.Token)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got.Name != "Wang" || got.Role != models.RoleExpert {
		t.Errorf("Lookup() = %+v", got)
	}

	for _, bad := range []string{"", "not-a-uuid", uuid.NewString()} {
		if _, err := sessions.Lookup(bad); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidToken", bad, err)
		}
	}

	sessions.Logout(p.Token)
	if _, err := sessions.Lookup(p.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token should be invalid after logout, got %v", err)
	}

	// Logging out twice is harmless
	sessions.Logout(p.Token)
}

func TestTokensAreUnique(t *testing.T) {
	sessions := NewSessions("admin-pw", "expert-pw")
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		p, err := sessions.Login(models.RoleAdmin, "admin-pw", "")
		if err != nil {
			t.Fatal(err)
		}
		if seen[p.Token] {
			t.Fatal("duplicate token issued")
		}
		seen[p.Token] = true
	}
}
