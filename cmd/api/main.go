package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "shopcart_sentiment/internal/adapters/http_server"
	"shopcart_sentiment/internal/adapters/observability"
	"shopcart_sentiment/internal/shared"
	"shopcart_sentiment/internal/wire"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// storage + services
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	deps, err := wire.New(connectCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		S:           deps.Scoring,
		Q:           deps.Queries,
		UpdateRate:  cfg.UpdateRate,
		UpdateBurst: cfg.UpdateBurst,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := deps.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("storage close failed")
	}
	log.Info().Msg("bye")
}
