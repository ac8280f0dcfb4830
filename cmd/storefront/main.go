package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dwikikusuma/storefront/internal/bootstrap"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

const sweepInterval = time.Minute

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Error("bootstrap failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("close stores failed", slog.Any("err", err))
		}
	}()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(app, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.RunSweeper(ctx, sweepInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr), slog.Bool("cart_persist", cfg.CartPersist))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested", slog.Any("cause", context.Cause(ctx)))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
