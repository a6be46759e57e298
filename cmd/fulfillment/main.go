package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/minimartx/storefront/internal/config"
	"github.com/minimartx/storefront/internal/events"
	"github.com/minimartx/storefront/internal/fulfillment"
	"github.com/minimartx/storefront/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	var cfg config.Fulfillment
	if err := config.Load(&cfg); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "fulfillment", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	subscriber := events.NewSubscriber(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderTopic, cfg.GroupID)
	defer func() { _ = subscriber.Close() }()

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	handler := fulfillment.NewHandler(cfg.StorefrontURL, cfg.EmailURL, httpClient, logger)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("starting fulfillment worker", "topic", cfg.OrderTopic, "group", cfg.GroupID)

	if err := subscriber.Run(ctx, handler.Handle); err != nil {
		if ctx.Err() == context.Canceled {
			logger.Info("subscriber stopped")
			return
		}
		logger.Error("subscriber error", "error", err)
		os.Exit(1)
	}
}
