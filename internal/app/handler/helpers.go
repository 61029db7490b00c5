// Package handler translates HTTP requests into calls on the link registry,
// the QR generator and the redirect resolver, and their outcomes into HTTP
// responses.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/go-qr-shortener/internal/app/service"
	"github.com/atinyakov/go-qr-shortener/internal/qrimage"
)

const (
	// maxBodyBytes bounds JSON request bodies.
	maxBodyBytes = 64 << 10

	msgNotFound = "No qr code could be found for this id."
	msgInternal = "internal error"
)

// malformedRequest represents an error with a malformed HTTP request.
type malformedRequest struct {
	status int    // HTTP status code for the error
	msg    string // Error message
}

// Error returns the error message for a malformed request.
func (mr *malformedRequest) Error() string {
	return mr.msg
}

// decodeJSONBody decodes a JSON request body into dst. It rejects foreign
// content types, unknown fields, trailing data and bodies over maxBodyBytes.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		mediaType := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
		if mediaType != "application/json" {
			msg := "Content-Type header is not application/json"
			return &malformedRequest{status: http.StatusUnsupportedMediaType, msg: msg}
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.ErrUnexpectedEOF):
			msg := "Request body contains badly-formed JSON"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			msg := fmt.Sprintf("Request body contains unknown field %s", fieldName)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.EOF):
			msg := "Request body must not be empty"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &maxBytesError):
			msg := fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesError.Limit)
			return &malformedRequest{status: http.StatusRequestEntityTooLarge, msg: msg}

		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		msg := "Request body must only contain a single JSON object"
		return &malformedRequest{status: http.StatusBadRequest, msg: msg}
	}

	return nil
}

// writeDecodeError answers a failed decodeJSONBody.
func writeDecodeError(res http.ResponseWriter, logger *zap.Logger, err error) {
	var mr *malformedRequest
	if errors.As(err, &mr) {
		http.Error(res, mr.msg, mr.status)
		return
	}

	logger.Error("cannot decode request body", zap.Error(err))
	http.Error(res, msgInternal, http.StatusInternalServerError)
}

// writeServiceError maps the service error taxonomy onto status codes.
// Storage and integrity failures are logged here and reach the client only
// as a generic message.
func writeServiceError(res http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(res, msgNotFound, http.StatusNotFound)
	case errors.Is(err, service.ErrValidation), errors.Is(err, qrimage.ErrUnknownFormat):
		http.Error(res, err.Error(), http.StatusBadRequest)
	default:
		logger.Error("request failed", zap.Error(err))
		http.Error(res, msgInternal, http.StatusInternalServerError)
	}
}

// writeJSON encodes v with the given status.
func writeJSON(res http.ResponseWriter, logger *zap.Logger, status int, v any) {
	response, err := json.Marshal(v)
	if err != nil {
		logger.Error("cannot encode response", zap.Error(err))
		http.Error(res, msgInternal, http.StatusInternalServerError)
		return
	}

	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)

	if _, err := res.Write(response); err != nil {
		logger.Debug("cannot write response", zap.Error(err))
	}
}

// writeImage sends rendered image bytes with the content type of f. SVG is
// marked for inline display.
func writeImage(res http.ResponseWriter, logger *zap.Logger, status int, f qrimage.Format, data []byte) {
	res.Header().Set("Content-Type", f.ContentType())
	if f == qrimage.SVG {
		res.Header().Set("Content-Disposition", "inline")
	}
	res.WriteHeader(status)

	if _, err := res.Write(data); err != nil {
		logger.Debug("cannot write image", zap.Error(err))
	}
}

// pathID reads the {id} URL parameter. Anything that is not a UUID cannot
// name a record and is reported as not found.
func pathID(res http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	return parseID(res, chi.URLParam(req, "id"))
}

func parseID(res http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(res, msgNotFound, http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}
