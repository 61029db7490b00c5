package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-qr-shortener/internal/app/service"
	"github.com/atinyakov/go-qr-shortener/internal/models"
)

type PutHandler struct {
	registry service.LinkRegistryIface
	logger   *zap.Logger
}

func NewPut(r service.LinkRegistryIface, l *zap.Logger) *PutHandler {
	return &PutHandler{
		registry: r,
		logger:   l,
	}
}

// Update handles PUT /qr/{id}. A wrong password answers 404, the same as an
// unknown id.
func (h *PutHandler) Update(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	id, ok := pathID(res, req)
	if !ok {
		return
	}

	var request models.UpdateRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		writeDecodeError(res, h.logger, err)
		return
	}

	link, err := h.registry.Update(ctx, id, request.Password, request.Link)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.UpdateResponse{ID: link.ID})
}
