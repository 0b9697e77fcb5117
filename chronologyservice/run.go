// Package chronologyservice boots the HTTP service: configuration, store,
// route wiring and graceful shutdown.
package chronologyservice

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/courtprep/backend/internal/api"
	"github.com/courtprep/backend/internal/auth"
	"github.com/courtprep/backend/internal/config"
	"github.com/courtprep/backend/internal/courts"
	"github.com/courtprep/backend/internal/gate"
	"github.com/courtprep/backend/internal/health"
	"github.com/courtprep/backend/internal/logger"
	"github.com/courtprep/backend/internal/mail"
	"github.com/courtprep/backend/internal/services"
	"github.com/courtprep/backend/internal/store"
	"github.com/courtprep/backend/internal/store/postgres"
	"github.com/courtprep/backend/internal/store/sqlite"
)

// Run starts the chronology service HTTP server and blocks until shutdown
// or error.
func Run() error {
	log := logger.New("chronology-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	ctx, stop := newServerContext()
	defer stop()

	st, pinger, err := NewStore(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}

	router, err := buildRouter(st, pinger, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to wire routes")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// NewStore opens the store selected by the resolved DB driver. The SQLite
// path also applies the schema, so a fresh local database works immediately.
func NewStore(cfg *config.Config) (store.Store, health.Pinger, error) {
	var db *sql.DB
	var st store.Store
	var err error

	switch cfg.DBDriver {
	case "postgres":
		db, err = postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		st = postgres.NewWithDB(db)
	case "sqlite":
		db, err = sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := sqlite.EnsureSchema(db); err != nil {
			return nil, nil, fmt.Errorf("apply sqlite schema: %w", err)
		}
		st = sqlite.NewWithDB(db)
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}

	pinger, ok := st.(health.Pinger)
	if !ok {
		return nil, nil, fmt.Errorf("store does not support health probes")
	}
	return st, pinger, nil
}

func buildRouter(st store.Store, pinger health.Pinger, cfg *config.Config, log zerolog.Logger) (http.Handler, error) {
	hearingZone, err := time.LoadLocation(cfg.HearingTimeZone)
	if err != nil {
		return nil, fmt.Errorf("load hearing time zone %q: %w", cfg.HearingTimeZone, err)
	}

	var sender mail.Sender
	switch cfg.MailMode {
	case "smtp":
		sender = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.MailTo)
	default:
		sender = mail.NewLogSender(log)
	}

	g := gate.New(auth.NewSessionAuthorizer(cfg.SessionSigningKey), st.Profiles(), cfg.ChronologyPassword, log)
	handler := api.NewHandler(
		g,
		services.NewCaseService(st, hearingZone),
		services.NewEventService(st),
		courts.NewClient(cfg.CourtSearchURL, log),
		sender,
		cfg.IsProduction(),
		hearingZone,
		log,
	)
	return api.NewRouter(handler, api.NewHealthHandler(pinger)), nil
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
