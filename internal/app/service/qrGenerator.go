package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-qr-shortener/internal/qrimage"
)

// QRGenerator renders QR images for stored links. The symbol encodes the
// service's redirect URL for the id, never the target itself, so a target
// can change without invalidating printed codes.
type QRGenerator struct {
	storage Reader
	encoder *qrimage.Encoder
	baseURL string
	logger  *zap.Logger
}

func NewQRGenerator(s Reader, encoder *qrimage.Encoder, baseURL string, logger *zap.Logger) *QRGenerator {
	return &QRGenerator{
		storage: s,
		encoder: encoder,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Payload returns the string encoded in the QR symbol for id.
func (g *QRGenerator) Payload(id uuid.UUID) string {
	return g.baseURL + "/redirect?id=" + id.String()
}

func (g *QRGenerator) Generate(ctx context.Context, id uuid.UUID, f qrimage.Format) ([]byte, error) {
	if _, err := g.storage.FindByID(ctx, id); err != nil {
		err = storageError(err)
		if !errors.Is(err, ErrNotFound) {
			g.logger.Error("cannot load link for image", zap.Stringer("id", id), zap.Error(err))
		}
		return nil, err
	}

	data, err := g.encoder.Render(g.Payload(id), f)
	if err != nil {
		g.logger.Error("cannot render qr image",
			zap.Stringer("id", id),
			zap.Stringer("format", f),
			zap.Error(err),
		)
		return nil, err
	}

	return data, nil
}
