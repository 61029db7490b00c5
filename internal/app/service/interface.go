package service

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/atinyakov/go-qr-shortener/internal/models"
	"github.com/atinyakov/go-qr-shortener/internal/qrimage"
)

//go:generate mockgen -source=interface.go -destination=../../mocks/mock_service.go -package=mocks

type LinkRegistryIface interface {
	Create(ctx context.Context, target string) (*models.Link, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Link, error)
	Update(ctx context.Context, id uuid.UUID, passphrase string, target string) (*models.Link, error)
	Delete(ctx context.Context, id uuid.UUID, passphrase string) (*models.Link, error)
	PingContext(ctx context.Context) error
}

type QRGeneratorIface interface {
	Generate(ctx context.Context, id uuid.UUID, f qrimage.Format) ([]byte, error)
}

type RedirectResolverIface interface {
	Resolve(ctx context.Context, id uuid.UUID) (*url.URL, error)
}
