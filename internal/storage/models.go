// Package storage holds the persisted link record shape and the in-memory
// implementation of the link store used for tests and local development.
package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no record matches the lookup, including
	// conditional writes whose passphrase hash did not match.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a record with the same id already exists.
	ErrConflict = errors.New("data conflict")
)

// LinkRecord is a row of the qr_code table.
type LinkRecord struct {
	ID uuid.UUID `json:"id"`

	// Link is the redirect target.
	Link string `json:"link"`

	// PassphraseHash is the encoded one-way hash of the record's passphrase.
	// The raw passphrase is never stored.
	PassphraseHash string `json:"-"`

	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
}
