package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"restaurant-order-api/cache"
	"restaurant-order-api/config"
	"restaurant-order-api/feed"
	"restaurant-order-api/handlers"
	"restaurant-order-api/logger"
	"restaurant-order-api/metrics"
	"restaurant-order-api/middleware"
	"restaurant-order-api/routes"
	"restaurant-order-api/service"
	"restaurant-order-api/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

var configFile = flag.String("config", "config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("restaurant-order-api", cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return err
	}
	defer config.CloseDB(db)
	log.Info("database connected and migrated", slog.String("driver", cfg.Database.Driver))

	catalogStore := store.NewCatalog(db)
	ledger := store.NewLedger(db)
	tokens := middleware.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	gate := service.NewAdminGate(store.NewAdmins(db), tokens, log)

	if cfg.Database.Seed {
		n, err := store.SeedMenu(ctx, catalogStore)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info("database seeded with initial menu items", slog.Int("count", n))
		}
		created, err := gate.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			log.Info("admin account created", slog.String("username", cfg.Auth.AdminUsername))
		}
	}

	opts := []service.OrderOption{service.WithStrictTransitions(cfg.Orders.StrictTransitions)}

	collector := metrics.NewCollector()
	if cfg.Metrics.Enabled {
		opts = append(opts, service.WithObserver(collector))
	}

	if cfg.Redis.Enabled() {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, service.WithStatusCache(cache.NewRedisStatusCache(client, cfg.Redis.TTL)))
		log.Info("order status cache enabled", slog.String("addr", cfg.Redis.Addr))
	}

	hub := feed.NewHub(log, cfg.Server.AllowedOrigins)
	defer hub.Close()

	h := &handlers.Handler{
		Orders:  service.NewOrderEngine(catalogStore, ledger, log, opts...),
		Catalog: service.NewCatalogService(catalogStore),
		Gate:    gate,
		QR:      service.TrackingQR{BaseURL: cfg.Server.PublicURL},
		Feed:    hub,
		Log:     log,
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	if cfg.Metrics.Enabled {
		r.Use(collector.Middleware())
		r.GET(cfg.Metrics.Path, gin.WrapH(collector.Handler()))
	}
	routes.SetupRoutes(r, h, tokens)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}).Handler(r)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsHandler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
