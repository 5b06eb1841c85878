package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/V4T54L/contact-hub/internal/adapter/api"
	"github.com/V4T54L/contact-hub/internal/adapter/api/graphql"
	"github.com/V4T54L/contact-hub/internal/adapter/api/middleware"
	"github.com/V4T54L/contact-hub/internal/adapter/apininjas"
	"github.com/V4T54L/contact-hub/internal/adapter/metrics"
	mongorepo "github.com/V4T54L/contact-hub/internal/adapter/repository/mongo"
	postgresrepo "github.com/V4T54L/contact-hub/internal/adapter/repository/postgres"
	"github.com/V4T54L/contact-hub/internal/domain"
	"github.com/V4T54L/contact-hub/internal/pkg/config"
	"github.com/V4T54L/contact-hub/internal/pkg/logger"
	"github.com/V4T54L/contact-hub/internal/usecase"

	_ "github.com/lib/pq" // postgres driver
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.APIKey == "" {
		logger.Warn("API_KEY is not set, operations touching phone validation will fail")
	}

	m := metrics.NewAPIMetrics()

	// --- Metrics Server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    cfg.MetricsAddr,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("starting metrics server", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Contact Store ---
	var repo domain.ContactRepository
	switch cfg.StoreDriver {
	case "mongo":
		client, err := mongodriver.Connect(options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			logger.Error("failed to connect to mongodb", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("failed to disconnect from mongodb", "error", err)
			}
		}()

		repo, err = mongorepo.NewContactRepository(ctx, client.Database(cfg.MongoDB), "contacts", logger)
		if err != nil {
			logger.Error("failed to initialize mongo repository", "error", err)
			os.Exit(1)
		}
	case "postgres":
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo = postgresrepo.NewContactRepository(db, logger)
	default:
		logger.Error("unknown store driver", "driver", cfg.StoreDriver)
		os.Exit(1)
	}

	// --- External Service Clients ---
	ninjaClient := apininjas.NewClient(cfg.APIKey, cfg.PhoneAPIURL, cfg.TimeAPIURL, cfg.ClientTimeout, logger, m)

	var validator domain.PhoneValidator = ninjaClient
	if cfg.RedisAddr != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisAddr)
		if err != nil {
			logger.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("could not connect to redis, validation cache will fall through to the live service", "error", err)
		}
		validator = apininjas.NewCachedValidator(ninjaClient, redisClient, cfg.ValidationCacheTTL, logger, m)
		logger.Info("phone validation cache enabled", "ttl", cfg.ValidationCacheTTL)
	}

	// --- Service and API ---
	contactService := usecase.NewContactService(repo, validator, ninjaClient, cfg.APIKey, logger)
	schema := graphql.ParseSchema(graphql.NewResolver(contactService, logger))

	router := api.NewRouter(schema, logger, m, cfg.RateLimitRPS, cfg.RateLimitBurst)
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      middleware.Logging(logger)(router),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("starting contact API server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("contact API server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("contact API server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
