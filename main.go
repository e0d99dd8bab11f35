package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Vingoooo/expert-scoring-system/auth"
	"github.com/Vingoooo/expert-scoring-system/cliparse"
	"github.com/Vingoooo/expert-scoring-system/logging"
	"github.com/Vingoooo/expert-scoring-system/metrics"
	"github.com/Vingoooo/expert-scoring-system/middleware"
	"github.com/Vingoooo/expert-scoring-system/review"
	"github.com/Vingoooo/expert-scoring-system/router"
	"github.com/Vingoooo/expert-scoring-system/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if _, err := logging.Setup(cfg.LogLevel, os.Stderr); err != nil {
		slog.Error("Error configuring logging", "error", err)
		os.Exit(1)
	}

	svc, closeStore := openService(context.Background(), cfg)
	defer closeStore()
	sessions := auth.NewSessions(cfg.AdminPassword, cfg.ExpertPassword)
	m := metrics.New()
	m.SetProjectsRegistered(len(svc.ListProjects()))

	// Create router
	mux := router.NewRouter(svc, sessions, m)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(middleware.WithMetrics(m, mux)),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openService loads the review state from the configured store. A database
// that cannot be opened or migrated leaves the service running on an empty
// in-memory store, reported as degraded through its warnings.
func openService(ctx context.Context, cfg cliparse.Config) (*review.Service, func()) {
	st, closeDB, err := store.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		svc := review.Load(ctx, store.NewMemory(),
			review.WithStartupWarning("database unavailable, using in-memory store", err))
		return svc, func() {}
	}

	return review.Load(ctx, st), func() {
		if err := closeDB(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
}
