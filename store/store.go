// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

// Backend names accepted by New
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var (
	ErrNotFound  = errors.New("poll not found")
	ErrDuplicate = errors.New("poll already exists")
)

// Store holds polls for the lifetime of the process. Returned polls are
// copies; changes go through Update.
type Store interface {
	// Create saves a new poll. The channel's previously active poll, if
	// any, is deactivated.
	Create(ctx context.Context, p *models.Poll) error
	Get(ctx context.Context, id string) (*models.Poll, error)
	// Latest returns the most recently created poll in a channel.
	Latest(ctx context.Context, channelID string) (*models.Poll, error)
	// Update runs fn on the poll as one atomic read-modify-write. If fn
	// returns an error nothing is saved, and the unchanged poll is returned
	// together with fn's error.
	Update(ctx context.Context, id string, fn func(p *models.Poll) error) (*models.Poll, error)
	Close() error
}

// New returns the store for the named backend.
func New(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q (use %s or %s)", backend, BackendMemory, BackendSQLite)
	}
}
