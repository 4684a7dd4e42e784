// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the in-memory SQLite database behind the sqlite poll
store and creates its schema.

# Opening

	conn, err := db.OpenMemory()
	if err != nil {
		log.Fatal(err)
	}
	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

The database lives in process memory only. Closing conn discards it.

# Tables

  - poll: one row per poll; payload holds the JSON-encoded models.Poll

# Indexes

  - poll.(channel_id, seq): latest poll per channel
  - poll.channel_id WHERE active = 1 (unique): one active poll per channel
*/
package db
