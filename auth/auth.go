// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Vingoooo/expert-scoring-system/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNameRequired       = errors.New("expert name is required")
	ErrInvalidToken       = errors.New("invalid token")
)

// Principal is a logged-in user
type Principal struct {
	Token    string
	Role     string
	Name     string
	IssuedAt time.Time
}

// Sessions checks the shared role passwords and keeps issued tokens in memory.
// Tokens do not survive a restart.
type Sessions struct {
	adminPassword  string
	expertPassword string

	mu     sync.RWMutex
	tokens map[string]Principal
}

func NewSessions(adminPassword, expertPassword string) *Sessions {
	return &Sessions{
		adminPassword:  adminPassword,
		expertPassword: expertPassword,
		tokens:         make(map[string]Principal),
	}
}

// CheckPassword compares digests so the comparison time does not depend on
// where the inputs differ or on their length.
func CheckPassword(given, expected string) bool {
	g := sha256.Sum256([]byte(given))
	e := sha256.Sum256([]byte(expected))
	return hmac.Equal(g[:], e[:])
}

// Login issues a token for a role. Experts must give a display name, which
// becomes their identity in the vote ledger.
func (s *Sessions) Login(role, password, name string) (Principal, error) {
	var expected string
	switch role {
	case models.RoleAdmin:
		expected = s.adminPassword
		name = models.RoleAdmin
	case models.RoleExpert:
		expected = s.expertPassword
		name = strings.TrimSpace(name)
		if name == "" {
			return Principal{}, ErrNameRequired
		}
	default:
		return Principal{}, ErrInvalidRole
	}

	if expected == "" || !CheckPassword(password, expected) {
		return Principal{}, ErrInvalidCredentials
	}

	p := Principal{
		Token:    uuid.NewString(),
		Role:     role,
		Name:     name,
		IssuedAt: time.Now(),
	}

	s.mu.Lock()
	s.tokens[p.Token] = p
	s.mu.Unlock()

	return p, nil
}

// Lookup resolves a token to its principal
func (s *Sessions) Lookup(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrInvalidToken
	}
	if _, err := uuid.Parse(token); err != nil {
		return Principal{}, ErrInvalidToken
	}

	s.mu.RLock()
	p, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok {
		return Principal{}, ErrInvalidToken
	}
	return p, nil
}

// Logout forgets a token. Unknown tokens are ignored.
func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
