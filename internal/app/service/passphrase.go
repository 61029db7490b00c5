package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

// passphraseBytes is the entropy of a generated passphrase.
const passphraseBytes = 18

// PassphraseHasher mints passphrases and derives their argon2id hashes.
// The record id is the salt, so the hash of a given (id, passphrase) pair is
// stable and can be matched inside a conditional UPDATE or DELETE.
type PassphraseHasher struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

func NewPassphraseHasher() *PassphraseHasher {
	return &PassphraseHasher{
		Time:    2,
		Memory:  19 * 1024,
		Threads: 1,
		KeyLen:  32,
	}
}

// Generate returns a fresh random passphrase. The alphabet is URL-safe so the
// passphrase can travel as a path segment.
func (h *PassphraseHasher) Generate() (string, error) {
	b := make([]byte, passphraseBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate passphrase: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Hash returns the encoded argon2id hash of passphrase salted with id.
func (h *PassphraseHasher) Hash(id uuid.UUID, passphrase string) string {
	key := argon2.IDKey([]byte(passphrase), id[:], h.Time, h.Memory, h.Threads, h.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		argon2.Version, h.Memory, h.Time, h.Threads,
		base64.RawStdEncoding.EncodeToString(key),
	)
}
