package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/annoview/internal/api"
	"github.com/dgallion1/annoview/internal/config"
	"github.com/dgallion1/annoview/internal/library"
	"github.com/dgallion1/annoview/internal/metrics"
	"github.com/dgallion1/annoview/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := config.LoadEnvFile(os.Getenv("ANNOVIEW_ENV_FILE")); err != nil {
		log.Error("invalid env file", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := metrics.NewRecorder(cfg.StatsWindow)

	lib, err := library.Open(cfg.LibraryDir, cfg.LibraryCacheSize, log, rec)
	if err != nil {
		log.Error("library unavailable", "error", err)
		os.Exit(1)
	}
	if cfg.LibraryWatch {
		go func() {
			if err := lib.Watch(ctx); err != nil {
				log.Warn("library watch stopped", "error", err)
			}
		}()
	}

	docs := store.NewDocumentStore(cfg.DocumentTTL)
	docs.Start(ctx, cfg.CleanupInterval)

	srv := api.NewServer(docs, lib, rec, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		cancel()
		docs.Stop()
	}()

	log.Info("starting annoview", "port", cfg.Port, "library", lib.Root())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
