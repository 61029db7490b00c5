package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RedirectResolver turns a link id into the URL a client is redirected to.
type RedirectResolver struct {
	storage Reader
	logger  *zap.Logger
}

func NewRedirectResolver(s Reader, logger *zap.Logger) *RedirectResolver {
	return &RedirectResolver{
		storage: s,
		logger:  logger,
	}
}

// Resolve returns the stored target of id. A stored target that does not
// parse as an absolute URL with a host yields ErrMalformedTarget.
func (r *RedirectResolver) Resolve(ctx context.Context, id uuid.UUID) (*url.URL, error) {
	record, err := r.storage.FindByID(ctx, id)
	if err != nil {
		err = storageError(err)
		if !errors.Is(err, ErrNotFound) {
			r.logger.Error("cannot resolve redirect", zap.Stringer("id", id), zap.Error(err))
		}
		return nil, err
	}

	target, err := url.Parse(record.Link)
	if err == nil && (!target.IsAbs() || target.Host == "") {
		err = errors.New("not an absolute URL with a host")
	}
	if err != nil {
		r.logger.Error("stored link is malformed, integrity fault",
			zap.Stringer("id", id),
			zap.String("link", record.Link),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrMalformedTarget, err)
	}

	return target, nil
}
