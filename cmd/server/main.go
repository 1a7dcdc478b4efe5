package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/qvo1811/restaurant-backend/internal/adapter/handler"
	"github.com/qvo1811/restaurant-backend/internal/adapter/hash"
	"github.com/qvo1811/restaurant-backend/internal/adapter/image"
	"github.com/qvo1811/restaurant-backend/internal/adapter/notifier"
	"github.com/qvo1811/restaurant-backend/internal/adapter/storage"
	"github.com/qvo1811/restaurant-backend/internal/adapter/token"
	"github.com/qvo1811/restaurant-backend/internal/config"
	"github.com/qvo1811/restaurant-backend/internal/core/notify"
	"github.com/qvo1811/restaurant-backend/internal/core/service"
	"github.com/qvo1811/restaurant-backend/internal/port"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	// Notification channel: in-process hub, optionally bridged over Redis
	hub := notify.NewHub()
	var (
		sink   port.Notifier = hub
		bridge *notifier.RedisBridge
		rdb    *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		log.Println("connected to redis")

		bridge = notifier.NewRedisBridge(hub, rdb)
		sink = bridge
	}

	// Adapters
	images, err := image.NewDiskStore(cfg.ImageDir, "/images")
	if err != nil {
		log.Fatalf("failed to init image store: %v", err)
	}
	tokens := token.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	hasher := hash.NewBcryptHasher(cfg.BcryptCost)

	orderRepo := storage.NewMySQLOrderRepository(db)
	productRepo := storage.NewMySQLProductRepository(db)
	userRepo := storage.NewMySQLUserRepository(db)

	// Services
	orderService := service.NewOrderService(orderRepo, productRepo, sink)
	catalogService := service.NewCatalogService(productRepo, images)
	authService := service.NewAuthService(userRepo, hasher, tokens)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:     authService,
		Catalog:  catalogService,
		Orders:   orderService,
		Tokens:   tokens,
		Images:   images,
		Hub:      hub,
		ImageDir: cfg.ImageDir,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if bridge != nil {
		g.Go(func() error {
			log.Println("redis notification bridge running")
			return bridge.Run(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}
