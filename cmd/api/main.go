package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cartgrpc "github.com/dwikikusuma/storefront/internal/cart/grpc"
	catalogrpc "github.com/dwikikusuma/storefront/internal/catalog/grpc"
	checkoutgrpc "github.com/dwikikusuma/storefront/internal/checkout/grpc"

	"github.com/dwikikusuma/storefront/internal/bootstrap"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Error("bootstrap failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer app.Close()

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", addr))
		os.Exit(1)
	}

	grpcServer := grpc.NewServer()
	catalogrpc.Register(grpcServer, catalogrpc.NewServer(app.Catalog))
	cartgrpc.Register(grpcServer, cartgrpc.NewServer(app.Cart))
	checkoutgrpc.Register(grpcServer, checkoutgrpc.NewServer(app.Checkout))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.RunSweeper(ctx, time.Minute)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("grpc starting", slog.String("addr", addr))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("grpc serve error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested", slog.Any("cause", context.Cause(ctx)))
	hs.Shutdown()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopCtx.Done():
		log.Warn("graceful stop timeout, forcing stop")
		grpcServer.Stop()
	case <-stopped:
	}

	wg.Wait()
	log.Info("bye")
}
