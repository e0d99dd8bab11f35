// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open selects the driver from the configured database type:

  - sqlite: modernc.org/sqlite (pure Go, default)
  - postgres: github.com/lib/pq

	conn, err := db.Open(db.TypeSQLite, "file:scoring.db")

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - project: projects under review, seq keeps registration order
  - final_vote: one submitted score sheet per (project, expert)

Drafts live only in process memory and are lost on restart.

# Relationships

	project 1──* final_vote

final_vote.project_name uses ON DELETE CASCADE. SQLite does not enforce
foreign keys by default, so the store deletes votes explicitly as well.
*/
package db
