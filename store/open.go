// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"
	"log/slog"

	"github.com/Vingoooo/expert-scoring-system/db"
	"github.com/Vingoooo/expert-scoring-system/review"
)

// Open returns the store for a database type. SQL backends are connected
// and their schema is created; on success the returned func releases the
// connection.
func Open(dbType, url string) (review.Store, func() error, error) {
	if dbType == db.TypeMemory {
		slog.Warn("using in-memory store, votes are lost on restart")
		return NewMemory(), func() error { return nil }, nil
	}

	conn, err := db.Open(dbType, url)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("schema creation failed: %w", err)
	}

	slog.Info("Database schema ready", "type", dbType)
	return NewSQL(conn), conn.Close, nil
}
