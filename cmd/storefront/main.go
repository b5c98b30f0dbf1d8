package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cache"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/cart"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/catalog"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/checkout"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/content"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/publisher"
	"github.com/alsafaglobal/alsafaglobal-e-commerce/internal/repository"

	h "github.com/alsafaglobal/alsafaglobal-e-commerce/internal/http"
)

type Config struct {
	HTTPPort        string
	DBPath          string
	MigrationsPath  string
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	ProcessingDelay time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "storefront.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		ProcessingDelay: getDurationEnv("PAYMENT_PROCESSING_DELAY", 2*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid duration for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg := loadConfig()

	// Database
	repo, err := repository.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Redis; the storefront keeps serving from the database when it is
	// down, so a failed ping is a warning, not a startup failure.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unreachable at startup: %v", err)
	}
	cancelPing()

	// Page content: a failed load means defaults render until the next
	// admin save succeeds.
	contentStore := content.NewStore(repo)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := contentStore.Load(loadCtx); err != nil {
		log.Printf("content load failed, serving defaults: %v", err)
	}
	cancelLoad()

	carts := cart.NewSessionStore()
	defer carts.Close()

	catalogSvc := catalog.NewService(repo, cache.NewRedisCatalogCache(redisClient))
	checkoutSvc := checkout.NewService(repo, cache.NewRedisLastOrderStore(redisClient), carts, cfg.ProcessingDelay)

	// Outbox poller publishes completed orders to Kafka.
	pollerCtx, stopPoller := context.WithCancel(context.Background())
	defer stopPoller()
	go publisher.NewOutboxPoller(repo, cfg.KafkaBrokers...).Run(pollerCtx)

	router := h.NewRouter(h.Handlers{
		Content:    h.NewContentHandler(contentStore),
		Products:   h.NewProductHandler(catalogSvc),
		Cart:       h.NewCartHandler(carts, catalogSvc),
		Checkout:   h.NewCheckoutHandler(checkoutSvc),
		Newsletter: h.NewNewsletterHandler(repo),
		Admin:      h.NewAdminHandler(repo, contentStore, catalogSvc),
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
