package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "mock-interview/docs" // Swagger docs
	"mock-interview/internal/api"
	"mock-interview/internal/catalog"
	"mock-interview/internal/config"
	"mock-interview/internal/logger"
	"mock-interview/internal/resume"
	"mock-interview/internal/session"
)

// @title Mock Interview API
// @version 1.0
// @description Resume upload, role selection, question sequencing and heuristic feedback

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	zl, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		log.Fatal("logger: ", err)
	}
	defer zl.Sync()

	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		zl.Fatal("load catalog", zap.Error(err))
	}
	zl.Info("catalog loaded", zap.Int("roles", len(cat.Keys())))

	store := session.NewStore(cfg.SessionTTL)
	store.StartSweeper(cfg.SweepInterval)
	defer store.Close()

	apiSrv := api.NewAPI(zl, cat, store, resume.NewParser(), cfg.MaxUploadMB<<20)
	router := api.NewRouter(apiSrv, cfg.StaticDir)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // generous for resume uploads
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zl.Warn("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	zl.Info("API server listening", zap.String("port", cfg.Port),
		zap.Duration("session_ttl", cfg.SessionTTL))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zl.Fatal("serve", zap.Error(err))
	}

	<-idleConnsClosed
}
