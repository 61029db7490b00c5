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

type GetHandler struct {
	registry  service.LinkRegistryIface
	generator service.QRGeneratorIface
	resolver  service.RedirectResolverIface
	logger    *zap.Logger
}

func NewGet(r service.LinkRegistryIface, g service.QRGeneratorIface, rr service.RedirectResolverIface, l *zap.Logger) *GetHandler {
	return &GetHandler{
		registry:  r,
		generator: g,
		resolver:  rr,
		logger:    l,
	}
}

// ByID handles GET /qr/{id}.
func (h *GetHandler) ByID(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	id, ok := pathID(res, req)
	if !ok {
		return
	}

	link, err := h.registry.Get(ctx, id)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.NewLinkResponse(link))
}

// Image handles GET /qr/{id}/image?type={png,jpg,svg}.
func (h *GetHandler) Image(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	id, ok := pathID(res, req)
	if !ok {
		return
	}

	f, err := qrimage.ParseFormat(req.URL.Query().Get("type"))
	if err != nil {
		http.Error(res, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.generator.Generate(ctx, id, f)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeImage(res, h.logger, http.StatusOK, f, data)
}

// Redirect handles GET /redirect?id=, the URL encoded in every QR image.
func (h *GetHandler) Redirect(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	id, ok := parseID(res, req.URL.Query().Get("id"))
	if !ok {
		return
	}

	target, err := h.resolver.Resolve(ctx, id)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	http.Redirect(res, req, target.String(), http.StatusFound)
}

// PingDB handles GET /ping.
func (h *GetHandler) PingDB(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	if err := h.registry.PingContext(ctx); err != nil {
		h.logger.Error("storage ping failed", zap.Error(err))
		http.Error(res, msgInternal, http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}
