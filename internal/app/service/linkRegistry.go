// Package service implements the link registry, the QR image generator and
// the redirect resolver on top of an injected link store.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-qr-shortener/internal/models"
	"github.com/atinyakov/go-qr-shortener/internal/storage"
)

// MaxLinkLength is the width of the link column.
const MaxLinkLength = 512

// LinkRegistry owns the lifecycle of link records. Mutations require the
// passphrase handed out on creation.
type LinkRegistry struct {
	storage Storage
	hasher  *PassphraseHasher
	logger  *zap.Logger
	now     func() time.Time
}

func NewLinkRegistry(s Storage, hasher *PassphraseHasher, logger *zap.Logger) *LinkRegistry {
	return &LinkRegistry{
		storage: s,
		hasher:  hasher,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ValidateLink checks that target is an absolute URL with a host that fits
// the link column.
func ValidateLink(target string) (*url.URL, error) {
	if target == "" {
		return nil, fmt.Errorf("%w: link is empty", ErrValidation)
	}

	if len(target) > MaxLinkLength {
		return nil, fmt.Errorf("%w: link longer than %d bytes", ErrValidation, MaxLinkLength)
	}

	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", ErrValidation, target)
	}

	return u, nil
}

// Create stores a new record for target and returns it together with its
// passphrase. Each call mints a new id; callers must not retry it blindly.
func (r *LinkRegistry) Create(ctx context.Context, target string) (*models.Link, error) {
	if _, err := ValidateLink(target); err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("%w: generate id: %w", ErrStorage, err)
	}

	passphrase, err := r.hasher.Generate()
	if err != nil {
		return nil, err
	}

	record, err := r.storage.Create(ctx, storage.LinkRecord{
		ID:             id,
		Link:           target,
		PassphraseHash: r.hasher.Hash(id, passphrase),
		CreatedAt:      r.now(),
	})
	if err != nil {
		r.logger.Error("cannot create link", zap.Stringer("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	r.logger.Info("link created", zap.Stringer("id", id))

	link := toLink(record)
	link.Passphrase = passphrase
	return link, nil
}

// Get returns the record without its passphrase.
func (r *LinkRegistry) Get(ctx context.Context, id uuid.UUID) (*models.Link, error) {
	record, err := r.storage.FindByID(ctx, id)
	if err != nil {
		return nil, r.fail("get", id, err)
	}

	return toLink(record), nil
}

// Update replaces the target of the record if passphrase matches. A wrong
// passphrase is reported as ErrNotFound.
func (r *LinkRegistry) Update(ctx context.Context, id uuid.UUID, passphrase string, target string) (*models.Link, error) {
	if _, err := ValidateLink(target); err != nil {
		return nil, err
	}

	record, err := r.storage.UpdateLink(ctx, id, r.hasher.Hash(id, passphrase), target, r.now())
	if err != nil {
		return nil, r.fail("update", id, err)
	}

	r.logger.Info("link updated", zap.Stringer("id", id))
	return toLink(record), nil
}

// Delete removes the record if passphrase matches and returns it as it was
// before removal. A wrong passphrase is reported as ErrNotFound.
func (r *LinkRegistry) Delete(ctx context.Context, id uuid.UUID, passphrase string) (*models.Link, error) {
	record, err := r.storage.Delete(ctx, id, r.hasher.Hash(id, passphrase))
	if err != nil {
		return nil, r.fail("delete", id, err)
	}

	r.logger.Info("link deleted", zap.Stringer("id", id))
	return toLink(record), nil
}

func (r *LinkRegistry) PingContext(ctx context.Context) error {
	return r.storage.PingContext(ctx)
}

func (r *LinkRegistry) fail(op string, id uuid.UUID, err error) error {
	err = storageError(err)
	if !errors.Is(err, ErrNotFound) {
		r.logger.Error("link "+op+" failed", zap.Stringer("id", id), zap.Error(err))
	}
	return err
}

func toLink(r *storage.LinkRecord) *models.Link {
	return &models.Link{
		ID:         r.ID,
		Target:     r.Link,
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.ModifiedAt,
	}
}
