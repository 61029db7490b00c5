package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/go-qr-shortener/internal/app/service"
)

type DeleteHandler struct {
	registry service.LinkRegistryIface
	logger   *zap.Logger
}

func NewDelete(r service.LinkRegistryIface, l *zap.Logger) *DeleteHandler {
	return &DeleteHandler{
		registry: r,
		logger:   l,
	}
}

// Delete handles DELETE /qr/{id}/{pass}.
func (h *DeleteHandler) Delete(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	id, ok := pathID(res, req)
	if !ok {
		return
	}

	if _, err := h.registry.Delete(ctx, id, chi.URLParam(req, "pass")); err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	res.WriteHeader(http.StatusOK)
}
