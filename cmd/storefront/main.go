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
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/minimartx/storefront/internal/address"
	"github.com/minimartx/storefront/internal/auth"
	"github.com/minimartx/storefront/internal/cart"
	"github.com/minimartx/storefront/internal/catalog"
	"github.com/minimartx/storefront/internal/checkout"
	"github.com/minimartx/storefront/internal/config"
	"github.com/minimartx/storefront/internal/events"
	"github.com/minimartx/storefront/internal/orders"
	"github.com/minimartx/storefront/internal/session"
	"github.com/minimartx/storefront/internal/storage"
	"github.com/minimartx/storefront/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	var cfg config.Storefront
	if err := config.Load(&cfg); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	db, err := telemetry.OpenDB("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() { _ = redisClient.Close() }()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	var publisher *events.Publisher
	if cfg.KafkaBrokers != "" {
		publisher = events.NewPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.OrderTopic)
		defer func() { _ = publisher.Close() }()
	}

	store := storage.NewRedisStore(redisClient)
	carts := cart.NewStore(store)
	addresses := address.NewBook(store)
	sessions := auth.NewSessions(store)
	orderRepo := orders.NewRepository(db)

	catalogClient := catalog.NewClient(cfg.CatalogURL, &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})

	// Publisher is passed through an interface; a nil *Publisher must stay a
	// nil interface so checkout skips publishing entirely.
	var checkoutPublisher checkout.Publisher
	if publisher != nil {
		checkoutPublisher = publisher
	}
	manager := checkout.NewManager(carts, addresses, orderRepo, checkoutPublisher, logger)

	catalogHandler := catalog.NewHandler(catalogClient, store, logger)
	cartHandler := cart.NewHandler(carts, logger)
	addressHandler := address.NewHandler(addresses, logger)
	checkoutHandler := checkout.NewHandler(manager, logger)
	orderHandler := orders.NewHandler(orderRepo, logger)
	authHandler := auth.NewHandler(sessions, logger)

	mux := http.NewServeMux()
	route := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, telemetry.WithHTTPRoute(h))
	}

	route("GET /products", catalogHandler.HandleList)
	route("GET /products/{id}", catalogHandler.HandleGet)

	route("GET /cart", cartHandler.HandleGet)
	route("POST /cart/items", cartHandler.HandleAdd)
	route("POST /cart/items/{id}/decrease", cartHandler.HandleDecrease)
	route("DELETE /cart/items/{id}", cartHandler.HandleRemove)
	route("DELETE /cart", cartHandler.HandleClear)

	route("GET /addresses", addressHandler.HandleList)
	route("POST /addresses", addressHandler.HandleAdd)
	route("POST /addresses/{index}/select", addressHandler.HandleSelect)
	route("DELETE /addresses/{index}", addressHandler.HandleDelete)

	route("POST /checkout", checkoutHandler.HandleBegin)
	route("GET /checkout", checkoutHandler.HandleState)
	route("POST /checkout/address", checkoutHandler.HandleConfirmAddress)
	route("POST /checkout/payment", checkoutHandler.HandleSubmitPayment)

	route("GET /orders", orderHandler.HandleList)
	route("GET /orders/{id}", orderHandler.HandleGet)
	route("GET /orders/{id}/tracking", orderHandler.HandleTracking)
	route("PATCH /orders/{id}/status", orderHandler.HandleUpdateStatus)

	route("POST /auth/signup", authHandler.HandleSignup)
	route("POST /auth/login", authHandler.HandleLogin)
	route("POST /auth/logout", authHandler.HandleLogout)
	route("GET /auth/me", authHandler.HandleMe)

	mux.Handle("GET /metrics", metricsHandler)

	server := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: otelhttp.NewHandler(session.Middleware(mux), "storefront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront service", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
