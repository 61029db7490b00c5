package service

import (
	"errors"
	"fmt"

	"github.com/atinyakov/go-qr-shortener/internal/qrimage"
	"github.com/atinyakov/go-qr-shortener/internal/storage"
)

var (
	// ErrValidation marks input rejected before any row is touched.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned for unknown ids and for mutations with a wrong
	// passphrase alike, so callers cannot probe which ids exist.
	ErrNotFound = errors.New("link not found")

	// ErrMalformedTarget means a stored link no longer parses as an absolute
	// URL.
	ErrMalformedTarget = errors.New("stored link is malformed")

	// ErrStorage wraps connection and query failures.
	ErrStorage = errors.New("storage failure")

	// ErrEncoding is returned when the QR payload does not fit a symbol.
	ErrEncoding = qrimage.ErrEncoding
)

// storageError translates a storage error into the service taxonomy.
func storageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
