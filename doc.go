// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the expert scoring API server.

Experts log in, score each registered project against a fixed 100-point
rubric, keep drafts while they work and submit once every project is
scored. Administrators register projects and read the aggregated results.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_PASSWORD=... EXPERT_PASSWORD=... go run .

Or with flags:

	go run . -p 3318 -t sqlite -d "file:scoring.db" -admin-password ... -expert-password ...

Variables may also be placed in a .env file (see -env-file).

# Configuration

Required settings:

  - ADMIN_PASSWORD (-admin-password): shared administrator password
  - EXPERT_PASSWORD (-expert-password): shared expert password

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): connection string; required for postgres
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

  - rubric: stage rubrics and criterion limits
  - review: project registry, vote ledger and submission rules
  - report: per-project means and CSV export
  - store: SQL and in-memory persistence
  - handlers: HTTP request handlers (auth, projects, scoring, reports)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, role checks, JSON helpers
  - metrics: Prometheus collectors
  - logging: slog setup
  - models: Request/response and domain types
  - auth: Password checks and session tokens
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
