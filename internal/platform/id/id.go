// Package id generates opaque identifiers for participants and drafts.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a random v4 UUID encoded as 26 lowercase base32 characters.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}

// Valid reports whether raw looks like an id produced by NewID.
func Valid(raw string) bool {
	raw = strings.TrimSpace(raw)
	if len(raw) != 26 {
		return false
	}
	decoded, err := encoding.DecodeString(strings.ToUpper(raw))
	return err == nil && len(decoded) == 16
}
