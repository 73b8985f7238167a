package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"khata/internal/app"
	"khata/internal/auth"
	"khata/internal/config"
	"khata/internal/handler"
	"khata/internal/logger"
	redisrepo "khata/internal/repository/redis"
	"khata/internal/router"
)

const shutdownTimeout = 20 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log, nil); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var counters handler.Pinger
	if a.Redis != nil {
		counters = redisrepo.HealthCheck{Client: a.Redis}
	}

	h := router.Handlers{
		Tenant:   handler.NewTenantHandler(a.Tenants),
		Invoice:  handler.NewInvoiceHandler(a.Ledger),
		Purchase: handler.NewPurchaseHandler(a.Ledger),
		Product:  handler.NewProductHandler(a.Ledger),
		Report:   handler.NewReportHandler(a.Reports),
		Export:   handler.NewExportHandler(a.Exports, a.Calendar),
		Health:   handler.NewHealthHandler(a.DB, counters),
	}
	r := router.Setup(auth.NewHMACVerifier(cfg.JWT), a.Tenants, cfg.CORS.AllowedOrigins, h)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Str("env", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
