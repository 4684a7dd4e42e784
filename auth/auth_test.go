// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestVoterKey(t *testing.T) {
	tests := []struct {
		name   string
		pollID string
		userID string
		salt   string
	}{
		{"standard", "poll-1", "U012AB3CD", "voter-salt"},
		{"empty salt", "poll-1", "U012AB3CD", ""},
		{"empty user", "poll-1", "", "voter-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := VoterKey(tt.pollID, tt.userID, tt.salt)

			if !strings.HasPrefix(key, AnonymousPrefix) {
				t.Errorf("VoterKey() = %q, want %q prefix", key, AnonymousPrefix)
			}

			// prefix + 12 bytes hex encoded
			if len(key) != len(AnonymousPrefix)+24 {
				t.Errorf("VoterKey() length = %d, want %d", len(key), len(AnonymousPrefix)+24)
			}

			if strings.Contains(key, tt.userID) && tt.userID != "" {
				t.Error("VoterKey() leaks the user ID")
			}

			// Should be deterministic
			if key != VoterKey(tt.pollID, tt.userID, tt.salt) {
				t.Error("VoterKey() is not deterministic")
			}
		})
	}

	base := VoterKey("poll-1", "U1", "salt")
	if base == VoterKey("poll-2", "U1", "salt") {
		t.Error("VoterKey() produced same key for different polls")
	}
	if base == VoterKey("poll-1", "U2", "salt") {
		t.Error("VoterKey() produced same key for different users")
	}
	if base == VoterKey("poll-1", "U1", "other-salt") {
		t.Error("VoterKey() produced same key for different salts")
	}
	// The separator keeps ("ab", "c") and ("a", "bc") apart
	if VoterKey("ab", "c", "salt") == VoterKey("a", "bc", "salt") {
		t.Error("VoterKey() is ambiguous across the poll/user boundary")
	}
}

func TestIsAnonymous(t *testing.T) {
	if !IsAnonymous(VoterKey("p", "U1", "s")) {
		t.Error("IsAnonymous() = false for a voter key")
	}
	if IsAnonymous("U012AB3CD") {
		t.Error("IsAnonymous() = true for a plain user ID")
	}
}

// Benchmark tests
func BenchmarkGenerateID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateID(16)
	}
}

func BenchmarkVoterKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		VoterKey("poll-1", "U012AB3CD", "benchmark-salt")
	}
}
