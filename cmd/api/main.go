package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tuanzi-labs/ordersheet-backend/api/routes"
	"github.com/tuanzi-labs/ordersheet-backend/internal/render"
	"github.com/tuanzi-labs/ordersheet-backend/internal/sheet"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/config"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/logger"
	"github.com/tuanzi-labs/ordersheet-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	taxRate, err := decimal.NewFromString(cfg.Sheet.DefaultTaxRate)
	if err != nil {
		logg.Error(context.Background(), "invalid default tax rate", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()

	renderer := render.New(cfg.Render, logg, metrics.NewRenderMetrics(registry))
	store := sheet.NewStore(taxRate, cfg.Sheet.SeedExamples, cfg.Session.TTL)

	sheetService, err := sheet.NewService(store, renderer)
	if err != nil {
		logg.Error(context.Background(), "failed to create sheet service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, registry, sheetService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
