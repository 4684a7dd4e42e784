// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// AnonymousPrefix marks voter keys that do not carry a Slack user ID
const AnonymousPrefix = "anon:"

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// VoterKey creates a one-way key for a user's ballot on an anonymous poll.
// The poll ID is mixed in so the same user gets unrelated keys on
// different polls.
func VoterKey(pollID, userID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(pollID))
	h.Write([]byte{0})
	h.Write([]byte(userID))
	sum := h.Sum(nil)
	// 96 bits is plenty for deduplication within one poll
	return AnonymousPrefix + hex.EncodeToString(sum[:12])
}

// IsAnonymous reports whether key was produced by VoterKey
func IsAnonymous(key string) bool {
	return strings.HasPrefix(key, AnonymousPrefix)
}
