// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store keeps polls in process memory, keyed by poll ID, with an
index of the latest poll per channel.

# Backends

	s, err := store.New(cfg.StoreBackend) // "memory" or "sqlite"

  - MemoryStore: map guarded by a mutex
  - SQLiteStore: in-memory SQLite database with JSON payload rows

Neither backend survives a restart.

# Updates

All mutations go through Update, which runs a function on the poll as a
single read-modify-write:

	p, err := s.Update(ctx, pollID, func(p *models.Poll) error {
		return p.CastVote(voterKey, option)
	})

When the function fails nothing is saved and the unchanged poll is
returned together with the error.
*/
package store
