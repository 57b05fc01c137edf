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

	"callsheet/internal/api"
	"callsheet/internal/config"
	"callsheet/internal/logger"
	"callsheet/internal/store"
	"callsheet/internal/workspace"
	"callsheet/internal/ws"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat, "callsheet")
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if !cfg.EnvFileLoaded {
		zl.Warn("No .env file loaded, using environment only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, err := store.Open(ctx, cfg)
	if err != nil {
		zl.Fatal("Failed to open snapshot store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer snapshots.Close()

	w := workspace.New()
	store.NewMirror(snapshots, zl).Attach(ctx, w)

	hub := ws.NewHub(zl)
	go hub.Run(ctx)
	w.Subscribe(hub.NotifyWorkspace)

	r := api.NewRouter(w, hub, zl, cfg.MaxUploadMB)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server shutdown failed", zap.Error(err))
	}
}
