// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides random IDs and voter keys.

# Voter Keys

Anonymous polls never store Slack user IDs. Ballots are keyed by an
HMAC-SHA256 of the poll ID and user ID instead:

	key := auth.VoterKey(pollID, userID, cfg.VoterSalt)

The key is deterministic for a given salt, so a second vote from the same
user still collides with the first and is rejected. Keys start with
AnonymousPrefix; IsAnonymous tells them apart from raw user IDs.

When no salt is configured a random one is generated at startup, which
is enough because polls do not outlive the process.

# Random IDs

	id, err := auth.GenerateID(16) // 32 hex chars
*/
package auth
