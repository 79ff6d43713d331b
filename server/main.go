package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busline/api/routes"
	"busline/internal/notifications"
	"busline/internal/shared/config"
	"busline/internal/shared/database"
	"busline/pkg/logger"
	"busline/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		}

		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Bool("enabled", cfg.RateLimit.Enabled),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Notification pipeline. When Kafka is disabled the workflows keep
	// publishing into a no-op facade.
	publisher, stopNotifications := setupNotifications(cfg, appLogger)
	defer stopNotifications()

	router := setupRouter(cfg, db, rateLimiter, publisher)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("api_status", fmt.Sprintf("http://localhost:%s%s/status", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("kafka_notifications", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// setupNotifications wires the Kafka producer, the consumer workers and
// the SMTP sender. The returned stop function flushes and closes all of
// them; it is a no-op when Kafka is disabled.
func setupNotifications(cfg *config.Config, appLogger *logger.Logger) (notifications.Publisher, func()) {
	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka disabled, notifications will be dropped")
		return notifications.NewNoopPublisher(), func() {}
	}

	producerConfig := notifications.DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := notifications.NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		appLogger.Error("Failed to initialize Kafka producer, notifications disabled", slog.Any("error", err))
		return notifications.NewNoopPublisher(), func() {}
	}
	publisher := notifications.NewPublisher(producer)

	emailService, err := notifications.NewSMTPEmailService(notifications.NewSMTPConfig(cfg))
	if err != nil {
		appLogger.Error("Failed to initialize email service, consumers not started", slog.Any("error", err))
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				appLogger.Error("Error closing notification producer", slog.Any("error", err))
			}
		}
	}

	consumerConfig := notifications.DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroup

	consumer, err := notifications.NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		appLogger.Error("Failed to initialize Kafka consumer, emails will not be sent", slog.Any("error", err))
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				appLogger.Error("Error closing notification producer", slog.Any("error", err))
			}
		}
	}

	consumerCtx, cancelConsumers := context.WithCancel(context.Background())
	if err := consumer.StartConsumers(consumerCtx, 3); err != nil {
		appLogger.Error("Failed to start notification consumers", slog.Any("error", err))
	} else {
		appLogger.Info("Notification consumers started",
			slog.String("topic", cfg.Kafka.NotificationTopic),
			slog.String("group", cfg.Kafka.ConsumerGroup),
		)
	}

	return publisher, func() {
		appLogger.Info("Stopping notification pipeline...")
		cancelConsumers()
		if err := consumer.Stop(); err != nil {
			appLogger.Error("Error stopping notification consumers", slog.Any("error", err))
		}
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing notification producer", slog.Any("error", err))
		}
	}
}

func setupRouter(cfg *config.Config, db *database.DB, rateLimiter *ratelimit.RateLimiter, publisher notifications.Publisher) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	appRouter := routes.NewRouter(cfg, db, rateLimiter, publisher, appLogger)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}
