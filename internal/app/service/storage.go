package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atinyakov/go-qr-shortener/internal/storage"
)

// Reader is the read-only view of the link store handed to the generator
// and the resolver.
type Reader interface {
	FindByID(context.Context, uuid.UUID) (*storage.LinkRecord, error)
}

// Storage is implemented by storage.MemoryStorage and
// repository.LinkRepository. UpdateLink and Delete only act when the given
// hash equals the stored passphrase hash and report storage.ErrNotFound
// otherwise.
type Storage interface {
	Reader
	Create(context.Context, storage.LinkRecord) (*storage.LinkRecord, error)
	UpdateLink(ctx context.Context, id uuid.UUID, hash string, link string, modifiedAt time.Time) (*storage.LinkRecord, error)
	Delete(ctx context.Context, id uuid.UUID, hash string) (*storage.LinkRecord, error)
	PingContext(context.Context) error
}
