// Package server assembles the chi router of the QR link service.
package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/go-qr-shortener/internal/app/handler"
	"github.com/atinyakov/go-qr-shortener/internal/app/service"
	"github.com/atinyakov/go-qr-shortener/internal/middleware"
)

// Services are the domain components the routes dispatch to.
type Services struct {
	Registry  service.LinkRegistryIface
	Generator service.QRGeneratorIface
	Resolver  service.RedirectResolverIface
}

// BuildInfo is stamped in at link time and served on /version.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", orNA(b.Version), orNA(b.Date), orNA(b.Commit))
}

func Init(logger *zap.Logger, s Services, build BuildInfo) *chi.Mux {
	postHandler := handler.NewPost(s.Registry, s.Generator, logger)
	getHandler := handler.NewGet(s.Registry, s.Generator, s.Resolver, logger)
	putHandler := handler.NewPut(s.Registry, logger)
	deleteHandler := handler.NewDelete(s.Registry, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGZIPRequest)
	r.Use(middleware.WithGZIPResponse)

	r.Route("/qr", func(r chi.Router) {
		r.Post("/", postHandler.Create)
		r.Post("/image", postHandler.CreateImage)
		r.Get("/{id}", getHandler.ByID)
		r.Put("/{id}", putHandler.Update)
		r.Delete("/{id}/{pass}", deleteHandler.Delete)
		r.Get("/{id}/image", getHandler.Image)
	})

	r.Get("/redirect", getHandler.Redirect)
	r.Get("/ping", getHandler.PingDB)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(build.String()))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
