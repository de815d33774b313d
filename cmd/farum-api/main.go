package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/PabloGalante/farum-calm/internal/adapters/http"
	"github.com/PabloGalante/farum-calm/internal/adapters/llm"
	"github.com/PabloGalante/farum-calm/internal/adapters/storage"
	"github.com/PabloGalante/farum-calm/internal/app/chat"
	"github.com/PabloGalante/farum-calm/internal/app/records"
	"github.com/PabloGalante/farum-calm/internal/catalog"
	"github.com/PabloGalante/farum-calm/internal/config"
	"github.com/PabloGalante/farum-calm/internal/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("FARUM_CONFIG"))
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := observability.Setup(os.Stdout, cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("setting up logging: %v", err)
	}
	logger := observability.Logger()

	backend, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Error("opening storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing storage", "error", err)
		}
	}()
	logger.Info("storage ready", "backend", cfg.StorageBackend)

	client, err := llm.NewClient(ctx, cfg)
	if err != nil {
		logger.Error("initializing chat client", "error", err)
		os.Exit(1)
	}
	logger.Info("chat client ready", "mock", cfg.UseMockLLM)

	handler := httpadapter.NewServer(
		catalog.Default(),
		records.NewStore(backend),
		chat.NewService(client),
		httpadapter.WithNow(cfg.Now),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("farum api listening", "addr", srv.Addr, "mode", cfg.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutting down", "error", err)
	}
	logger.Info("farum api stopped")
}
