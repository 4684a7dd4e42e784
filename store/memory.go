// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

type MemoryStore struct {
	mu     sync.Mutex
	polls  map[string]*models.Poll
	latest map[string]string // channel ID -> poll ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		polls:  make(map[string]*models.Poll),
		latest: make(map[string]string),
	}
}

func (s *MemoryStore) Create(ctx context.Context, p *models.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.polls[p.ID]; exists {
		return ErrDuplicate
	}

	if prevID, ok := s.latest[p.ChannelID]; ok {
		s.polls[prevID].Supersede()
	}

	s.polls[p.ID] = p.Clone()
	s.latest[p.ChannelID] = p.ID
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Latest(ctx context.Context, channelID string) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.latest[channelID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.polls[id].Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, fn func(p *models.Poll) error) (*models.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.polls[id]
	if !ok {
		return nil, ErrNotFound
	}

	// fn works on a copy so a failed update leaves nothing behind
	working := p.Clone()
	if err := fn(working); err != nil {
		return p.Clone(), err
	}

	s.polls[id] = working
	return working.Clone(), nil
}

func (s *MemoryStore) Close() error {
	return nil
}
