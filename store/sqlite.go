// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-pick-slack/db"
	"github.com/danielhkuo/quickly-pick-slack/models"
)

// SQLiteStore keeps polls in an in-memory SQLite database, one JSON payload
// row per poll. Nothing outlives the process.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore() (*SQLiteStore, error) {
	conn, err := db.OpenMemory()
	if err != nil {
		return nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return &SQLiteStore{db: conn}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, p *models.Poll) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM poll WHERE id = ?)`, p.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	if exists {
		return ErrDuplicate
	}

	// Deactivate the channel's current poll
	var prevID string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM poll WHERE channel_id = ? AND active = 1
	`, p.ChannelID).Scan(&prevID)
	switch {
	case err == nil:
		prev, err := loadPoll(ctx, tx, prevID)
		if err != nil {
			return err
		}
		prev.Supersede()
		if err := savePoll(ctx, tx, prev); err != nil {
			return err
		}
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to query active poll: %w", err)
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode poll: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll (id, channel_id, kind, creator_id, active, payload)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.ChannelID, string(p.Kind), p.CreatorID, activeFlag(p), string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*models.Poll, error) {
	return loadPoll(ctx, s.db, id)
}

func (s *SQLiteStore) Latest(ctx context.Context, channelID string) (*models.Poll, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM poll
		WHERE channel_id = ?
		ORDER BY seq DESC
		LIMIT 1
	`, channelID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest poll: %w", err)
	}
	return decodePoll(payload)
}

func (s *SQLiteStore) Update(ctx context.Context, id string, fn func(p *models.Poll) error) (*models.Poll, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := loadPoll(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	unchanged := p.Clone()
	if err := fn(p); err != nil {
		return unchanged, err
	}

	if err := savePoll(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func loadPoll(ctx context.Context, q queryer, id string) (*models.Poll, error) {
	var payload string
	err := q.QueryRowContext(ctx, `SELECT payload FROM poll WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}
	return decodePoll(payload)
}

func savePoll(ctx context.Context, tx *sql.Tx, p *models.Poll) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode poll: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE poll SET active = ?, payload = ? WHERE id = ?
	`, activeFlag(p), string(payload), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	return nil
}

func activeFlag(p *models.Poll) int {
	if p.Active {
		return 1
	}
	return 0
}

func decodePoll(payload string) (*models.Poll, error) {
	var p models.Poll
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("failed to decode poll: %w", err)
	}
	return &p, nil
}
