package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-qr-shortener/internal/app/service"
	"github.com/atinyakov/go-qr-shortener/internal/models"
	"github.com/atinyakov/go-qr-shortener/internal/qrimage"
)

type PostHandler struct {
	registry  service.LinkRegistryIface
	generator service.QRGeneratorIface
	logger    *zap.Logger
}

func NewPost(r service.LinkRegistryIface, g service.QRGeneratorIface, l *zap.Logger) *PostHandler {
	return &PostHandler{
		registry:  r,
		generator: g,
		logger:    l,
	}
}

// Create handles POST /qr. The response is the only place the passphrase is
// ever shown.
func (h *PostHandler) Create(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	var request models.CreateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeDecodeError(res, h.logger, err)
		return
	}

	link, err := h.registry.Create(ctx, request.Link)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusCreated, models.CreateResponse{
		ID:         link.ID,
		Link:       link.Target,
		Passphrase: link.Passphrase,
	})
}

// CreateImage handles POST /qr/image?type=: it creates the record and answers
// with its QR image. Id and passphrase travel in response headers.
func (h *PostHandler) CreateImage(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	f, err := qrimage.ParseFormat(req.URL.Query().Get("type"))
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	var request models.CreateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeDecodeError(res, h.logger, err)
		return
	}

	link, err := h.registry.Create(ctx, request.Link)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	data, err := h.generator.Generate(ctx, link.ID, f)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	res.Header().Set("X-QR-Id", link.ID.String())
	res.Header().Set("X-QR-Passphrase", link.Passphrase)
	writeImage(res, h.logger, http.StatusCreated, f, data)
}
