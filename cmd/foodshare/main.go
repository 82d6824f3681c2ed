package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/foodshare/internal/api"
	"github.com/erazemk/foodshare/internal/config"
	"github.com/erazemk/foodshare/internal/db"
	"github.com/erazemk/foodshare/internal/events"
	"github.com/erazemk/foodshare/internal/metrics"
	"github.com/erazemk/foodshare/internal/store"
)

func main() {
	// Flags override the environment, so it has to be read first.
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fs := flag.NewFlagSet("foodshare", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")

	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")

	fs.StringVar(&cfg.NATSURL, "nats", cfg.NATSURL, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: foodshare [flags]

Flags:
  -d, -db <path>          SQLite database path (default: $FOODSHARE_DB or foodshare.db)
  -a, -addr <host:port>   listen address (default: $FOODSHARE_ADDR or :8080)
  -l, -log <path>         log file path (default: $FOODSHARE_LOG, stdout/stderr only)
  -nats <url>             NATS server for events (default: $FOODSHARE_NATS_URL, disabled)
  -h, -help               show this help and exit

Environment (also read from ./.env when present):
  FOODSHARE_JWT_SECRET    token signing secret (default: generated and stored in the database)
  FOODSHARE_METRICS       serve /metrics (default: true)
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	closeLog, err := setupLogger(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("foodshare stopped", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		return fmt.Errorf("ensuring database schema: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	jwtSecret, err := store.SigningSecret(context.Background(), database, cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("loading signing secret: %w", err)
	}

	publisher, err := events.New(cfg.NATSURL)
	if err != nil {
		return err
	}
	defer publisher.Close()
	if cfg.NATSURL != "" {
		slog.Info("publishing events", "nats", cfg.NATSURL)
	}

	m := metrics.New()

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(database, jwtSecret, publisher, m))
	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", m.Handler())
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.LoggingMiddleware(m)(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.Addr, "metrics", cfg.MetricsEnabled)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving: %w", err)
	}

	slog.Info("server stopped, closing database")
	return nil
}
