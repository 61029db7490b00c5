// Package middleware holds the HTTP middleware of the QR link service:
// request logging and gzip transfer encoding.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type (
	// responseData captures what a handler wrote.
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter records status and body size on the way out.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
		wroteHeader  bool
	}
)

// Write counts body bytes. A handler that never calls WriteHeader answers 200.
func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

// WriteHeader records the first status code sent.
func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.responseData.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// secretParams are route parameters whose values must never reach the log.
var secretParams = []string{"pass"}

// loggedURL returns the request URL, or the matched route pattern when the
// route carries a secret parameter. The route is only known after next ran.
func loggedURL(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.String()
	}

	for _, name := range secretParams {
		if rctx.URLParam(name) != "" {
			return rctx.RoutePattern()
		}
	}
	return r.URL.String()
}

// WithRequestLogging logs method, url, status, size and duration of every
// request, tagged with the chi request id when one is set.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			responseData := &responseData{status: http.StatusOK}
			lw := &loggingResponseWriter{
				ResponseWriter: w,
				responseData:   responseData,
			}

			next.ServeHTTP(lw, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("url", loggedURL(r)),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", responseData.status),
				zap.Int("size", responseData.size),
			}
			if id := chimw.GetReqID(r.Context()); id != "" {
				fields = append(fields, zap.String("request_id", id))
			}

			if responseData.status >= http.StatusInternalServerError {
				log.Warn("HTTP Request", fields...)
				return
			}
			log.Info("HTTP Request", fields...)
		})
	}
}
