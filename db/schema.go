// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// OpenMemory opens a fresh in-memory SQLite database. The name is random so
// every call gets its own database. A single pooled connection keeps the
// database alive for as long as the returned *sql.DB is open.
func OpenMemory() (*sql.DB, error) {
	dsn := fmt.Sprintf("file:pollbot-%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
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

const schema = `
-- Polls (one row per poll, body stored as JSON)
CREATE TABLE IF NOT EXISTS poll (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    channel_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('vote', 'feedback', 'ranking', 'blended')),
    creator_id TEXT NOT NULL,
    active INTEGER NOT NULL DEFAULT 1 CHECK (active IN (0, 1)),
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_channel ON poll(channel_id, seq);

-- At most one active poll per channel
CREATE UNIQUE INDEX IF NOT EXISTS idx_poll_channel_active ON poll(channel_id) WHERE active = 1;
`
