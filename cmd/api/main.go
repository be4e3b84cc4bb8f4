package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/petrocini/fast-sale-backend/api/routes"
	addon "github.com/petrocini/fast-sale-backend/internal/addons"
	"github.com/petrocini/fast-sale-backend/internal/auth"
	category "github.com/petrocini/fast-sale-backend/internal/categories"
	event "github.com/petrocini/fast-sale-backend/internal/events"
	"github.com/petrocini/fast-sale-backend/internal/pos"
	product "github.com/petrocini/fast-sale-backend/internal/products"
	user "github.com/petrocini/fast-sale-backend/internal/users"
	"github.com/petrocini/fast-sale-backend/pkg/auth/session"
	"github.com/petrocini/fast-sale-backend/pkg/config"
	"github.com/petrocini/fast-sale-backend/pkg/db"
	"github.com/petrocini/fast-sale-backend/pkg/logger"
	"github.com/petrocini/fast-sale-backend/pkg/metrics"
	"github.com/petrocini/fast-sale-backend/pkg/migrate"
	"github.com/petrocini/fast-sale-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := user.NewRepository(dbClient.DB())
	categoryRepo := category.NewRepository(dbClient.DB())
	addonRepo := addon.NewRepository(dbClient.DB())
	eventRepo := event.NewRepository(dbClient.DB())
	productRepo := product.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := user.NewService(userRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	categoryService, err := category.NewService(categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	addonService, err := addon.NewService(addonRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create addon service", err)
		os.Exit(1)
	}

	eventService, err := event.NewService(eventRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create event service", err)
		os.Exit(1)
	}

	productService, err := product.NewService(productRepo, dbClient, categoryRepo, addonRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	posMetrics := metrics.NewPosMetrics(registry)

	posService, err := pos.NewService(productService, eventRepo, logg, posMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create pos service", err)
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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			Metrics:     registry,
			AuthService: authService,
			Users:       userService,
			Categories:  categoryService,
			Addons:      addonService,
			Events:      eventService,
			Products:    productService,
			Pos:         posService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
