// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides role-based login and session tokens.

# Roles

There are two fixed roles, each gated by a shared password from the
configuration:

  - admin: registers and deletes projects, clears votes, reads reports
  - expert: scores projects; must also give a display name

	sessions := auth.NewSessions(cfg.AdminPassword, cfg.ExpertPassword)
	p, err := sessions.Login(models.RoleExpert, password, "Zhang")

The expert's display name is the key under which their votes are stored.

# Tokens

Tokens are random UUIDs kept in process memory:

	p, err := sessions.Lookup(token)
	sessions.Logout(token)

Restarting the server invalidates every token.

# Password Checks

CheckPassword compares SHA-256 digests with hmac.Equal so that the
comparison is constant-time.
*/
package auth
