// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMemory   = "memory"
)

// Open connects to a SQL database and verifies the connection.
// SQLite is limited to one connection so that writes are serialized and
// in-memory databases are shared by every query.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to SQL understood by both SQLite and PostgreSQL.
const schema = `
-- Projects under review
CREATE TABLE IF NOT EXISTS project (
    name TEXT PRIMARY KEY,
    applicant TEXT NOT NULL,
    stage TEXT NOT NULL CHECK (stage IN ('interim', 'final')),
    duration_minutes INTEGER NOT NULL,
    seq INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_project_seq ON project(seq);

-- Final votes (drafts are never persisted)
CREATE TABLE IF NOT EXISTS final_vote (
    id TEXT PRIMARY KEY,
    project_name TEXT NOT NULL REFERENCES project(name) ON DELETE CASCADE,
    stage TEXT NOT NULL,
    expert TEXT NOT NULL,
    research INTEGER NOT NULL CHECK (research >= 0 AND research <= 20),
    tech INTEGER NOT NULL CHECK (tech >= 0 AND tech <= 30),
    deliverables INTEGER NOT NULL CHECK (deliverables >= 0 AND deliverables <= 20),
    output INTEGER NOT NULL CHECK (output >= 0 AND output <= 20),
    budget INTEGER NOT NULL CHECK (budget >= 0 AND budget <= 10),
    total INTEGER NOT NULL,
    submitted_at TIMESTAMP NOT NULL,
    UNIQUE (project_name, expert)
);

CREATE INDEX IF NOT EXISTS idx_final_vote_project ON final_vote(project_name);
CREATE INDEX IF NOT EXISTS idx_final_vote_expert ON final_vote(expert);
`
