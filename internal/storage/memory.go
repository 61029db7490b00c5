package storage

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage keeps records in a map. It is meant for tests and local runs;
// production deployments use the relational repository.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[uuid.UUID]LinkRecord
}

func CreateMemoryStorage() (*MemoryStorage, error) {
	return &MemoryStorage{
		records: make(map[uuid.UUID]LinkRecord),
	}, nil
}

func (m *MemoryStorage) Create(_ context.Context, r LinkRecord) (*LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[r.ID]; exists {
		return nil, ErrConflict
	}

	m.records[r.ID] = r
	return copyRecord(r), nil
}

func (m *MemoryStorage) FindByID(_ context.Context, id uuid.UUID) (*LinkRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, exists := m.records[id]
	if !exists {
		return nil, ErrNotFound
	}

	return copyRecord(r), nil
}

// UpdateLink replaces the link of the record identified by id if hash matches
// the stored passphrase hash.
func (m *MemoryStorage) UpdateLink(_ context.Context, id uuid.UUID, hash string, link string, modifiedAt time.Time) (*LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, exists := m.records[id]
	if !exists || !hashEqual(r.PassphraseHash, hash) {
		return nil, ErrNotFound
	}

	if r.ModifiedAt != nil && modifiedAt.Before(*r.ModifiedAt) {
		modifiedAt = *r.ModifiedAt
	}

	r.Link = link
	r.ModifiedAt = &modifiedAt
	m.records[id] = r

	return copyRecord(r), nil
}

// Delete removes the record identified by id if hash matches the stored
// passphrase hash and returns the record as it was before removal.
func (m *MemoryStorage) Delete(_ context.Context, id uuid.UUID, hash string) (*LinkRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, exists := m.records[id]
	if !exists || !hashEqual(r.PassphraseHash, hash) {
		return nil, ErrNotFound
	}

	delete(m.records, id)
	return copyRecord(r), nil
}

// PingContext always succeeds: there is no connection to check.
func (m *MemoryStorage) PingContext(context.Context) error {
	return nil
}

func hashEqual(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

func copyRecord(r LinkRecord) *LinkRecord {
	if r.ModifiedAt != nil {
		t := *r.ModifiedAt
		r.ModifiedAt = &t
	}
	return &r
}
