package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ZerubabelSemu/dotdesign/internal/admin"
	"github.com/ZerubabelSemu/dotdesign/internal/cart"
	"github.com/ZerubabelSemu/dotdesign/internal/cart/storage"
	"github.com/ZerubabelSemu/dotdesign/internal/catalog"
	httpapi "github.com/ZerubabelSemu/dotdesign/internal/http"
	"github.com/ZerubabelSemu/dotdesign/internal/messages"
	"github.com/ZerubabelSemu/dotdesign/internal/orders"
	"github.com/ZerubabelSemu/dotdesign/internal/payments"
	"github.com/ZerubabelSemu/dotdesign/internal/store"
	"github.com/ZerubabelSemu/dotdesign/internal/subscribers"
	"github.com/ZerubabelSemu/dotdesign/internal/wishlist"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Configuration
	port := getEnv("PORT", "8080")
	currency := getEnv("CURRENCY", "USD")
	catalogDBPath := getEnv("CATALOG_DB_PATH", "catalog.db")
	catalogMigrations := getEnv("CATALOG_MIGRATIONS", "internal/catalog/migrations")
	storeMigrations := getEnv("STORE_MIGRATIONS", "internal/store/migrations")
	cartBackend := getEnv("CART_STORAGE", "file")
	kafkaBrokers := getEnv("KAFKA_BROKERS", "localhost:9092")

	ctx := context.Background()

	// Catalog (sqlite)
	catalogRepo, err := catalog.NewRepository(catalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(catalogMigrations); err != nil {
		log.Fatalf("Failed to migrate catalog: %v", err)
	}
	log.Printf("Catalog database ready at %s", catalogDBPath)

	// Storefront store (postgres): orders, wishlist, subscribers, admin roles
	cred := &store.Credentials{
		Host:              getEnv("POSTGRES_HOST", "localhost"),
		Port:              getEnvInt("POSTGRES_PORT", 5432),
		User:              getEnv("POSTGRES_USER", "storefront"),
		Password:          getEnv("POSTGRES_PASSWORD", "storefront"),
		DBName:            getEnv("POSTGRES_DB", "storefront"),
		MigrationsDirPath: storeMigrations,
	}
	db, err := store.Open(cred)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer db.Close()
	if err := store.RunMigrations(db, cred); err != nil {
		log.Fatalf("Failed to migrate storefront store: %v", err)
	}
	log.Printf("Connected to postgres at %s:%d", cred.Host, cred.Port)

	// Cart persistence: file by default, redis when configured
	var cartStorage storage.Storage
	switch cartBackend {
	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		cartStorage = storage.NewRedisStorage(redisClient)
	default:
		cartStorage, err = storage.NewFileStorage(getEnv("CART_DIR", "carts"))
		if err != nil {
			log.Fatalf("Failed to set up cart storage: %v", err)
		}
	}

	priceSource := catalog.NewBreakerPriceSource(catalogRepo)
	carts := cart.NewManager(cartStorage, priceSource)

	orderRepo := orders.NewRepository(db)
	orderService := orders.NewService(orderRepo, currency)
	poller := orders.NewOutboxPoller(orderRepo, kafkaBrokers)
	defer poller.Close()

	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	go poller.Run(pollerCtx)

	roles := admin.NewRoles(db)
	subs := subscribers.NewRepository(db)

	router := httpapi.NewRouter(httpapi.Handlers{
		Products:   httpapi.NewProductHandler(catalogRepo),
		Cart:       httpapi.NewCartHandler(carts),
		Checkout:   httpapi.NewCheckoutHandler(orderService, carts),
		Wishlist:   httpapi.NewWishlistHandler(wishlist.NewRepository(db)),
		Newsletter: httpapi.NewNewsletterHandler(subs),
		Payments:   httpapi.NewPaymentMethodHandler(payments.NewRepository(db)),
		Contact:    httpapi.NewContactHandler(messages.NewRepository(db)),
		Admin:      httpapi.NewAdminHandler(roles, catalogRepo, orderService, subs),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: otelhttp.NewHandler(router, "storefront"),
	}

	go func() {
		log.Printf("Storefront listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down storefront...")
	stopPoller()
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Storefront stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
