// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blocks

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-pick-slack/models"
)

// Slack caps private_metadata at 3000 characters
const maxMetadataLen = 3000

var ErrMetadataTooLarge = errors.New("wizard state exceeds private_metadata limit")

// EncodeDraft serializes wizard state for a modal's private_metadata.
func EncodeDraft(d models.Draft) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}
	if len(b) > maxMetadataLen {
		return "", ErrMetadataTooLarge
	}
	return string(b), nil
}

// DecodeDraft reads wizard state back from private_metadata.
func DecodeDraft(metadata string) (models.Draft, error) {
	var d models.Draft
	if metadata == "" {
		return d, errors.New("decode draft: empty private_metadata")
	}
	if err := json.Unmarshal([]byte(metadata), &d); err != nil {
		return d, fmt.Errorf("decode draft: %w", err)
	}
	return d, nil
}
