package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/atinyakov/go-qr-shortener/internal/app/server"
	"github.com/atinyakov/go-qr-shortener/internal/app/service"
	"github.com/atinyakov/go-qr-shortener/internal/config"
	"github.com/atinyakov/go-qr-shortener/internal/logger"
	"github.com/atinyakov/go-qr-shortener/internal/qrimage"
	"github.com/atinyakov/go-qr-shortener/internal/repository"
	"github.com/atinyakov/go-qr-shortener/internal/storage"

	_ "net/http/pprof"
)

var buildVersion string
var buildDate string
var buildCommit string

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	options, err := config.Parse()
	if err != nil {
		return err
	}

	build := server.BuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	fmt.Print(build.String())

	l := logger.New()
	if err := l.Init(options.LogLevel); err != nil {
		return err
	}
	defer func() {
		_ = l.Sync()
	}()
	zapLogger := l.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if options.EnablePprof {
		go func() {
			zapLogger.Info("Starting pprof server", zap.String("addr", "localhost:6060"))
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				zapLogger.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	var s service.Storage

	if options.DatabaseDSN != "" {
		db, dialect, err := repository.InitDB(ctx, options.DatabaseDSN, zapLogger)
		if err != nil {
			return err
		}
		defer db.Close()

		s = repository.CreateLinkRepository(db, dialect, zapLogger)
		zapLogger.Info("Database connected and table ready.", zap.Stringer("dialect", dialect))
	} else {
		zapLogger.Info("using in memory storage")

		s, err = storage.CreateMemoryStorage()
		if err != nil {
			return err
		}
	}

	services := server.Services{
		Registry:  service.NewLinkRegistry(s, service.NewPassphraseHasher(), zapLogger),
		Generator: service.NewQRGenerator(s, qrimage.NewEncoder(), options.BaseURL, zapLogger),
		Resolver:  service.NewRedirectResolver(s, zapLogger),
	}
	r := server.Init(zapLogger, services, build)

	srv := &http.Server{
		Addr:              options.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if options.EnableHTTPS {
			manager := &autocert.Manager{
				Cache:      autocert.DirCache("cache-dir"),
				Prompt:     autocert.AcceptTOS,
				HostPolicy: autocert.HostWhitelist(hostOf(options.BaseURL)),
			}
			srv.Addr = ":443"
			srv.TLSConfig = manager.TLSConfig()

			zapLogger.Info("Server is running with TLS", zap.String("address", srv.Addr))
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}

		zapLogger.Info("Server is running", zap.String("address", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
