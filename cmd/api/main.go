package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Faraz011/virasat2/internal/application/auth"
	"github.com/Faraz011/virasat2/internal/application/cart"
	"github.com/Faraz011/virasat2/internal/application/catalog"
	"github.com/Faraz011/virasat2/internal/infrastructure/events"
	"github.com/Faraz011/virasat2/internal/infrastructure/postgres"
	httpRouter "github.com/Faraz011/virasat2/internal/interfaces/http"
	"github.com/Faraz011/virasat2/pkg/config"
	"github.com/Faraz011/virasat2/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	// Event publisher: Rabbit when configured, no-op otherwise.
	var publisher cart.EventPublisher = cart.NopPublisher{}
	if cfg.AMQP.URL != "" {
		rabbit, err := events.NewRabbit(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Fatal().Err(err).Msg("RabbitMQ connection")
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("event publishing enabled")
	}

	accountRepo := postgres.NewAccountRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(accountRepo, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.Expiration,
		Issuer:   cfg.JWT.Issuer,
	}, publisher)
	catalogUC := catalog.NewUseCase(productRepo, categoryRepo, cfg.Cache.Size, cfg.Cache.TTL)
	cartUC := cart.NewUseCase(txRunner, cartRepo, publisher)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return cfg.App.Env == "development" },
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CatalogUC:    catalogUC,
		CartUC:       cartUC,
		JWTSecret:    cfg.JWT.Secret,
		CookieTTL:    time.Duration(cfg.JWT.Expiration) * time.Hour,
		SecureCookie: cfg.App.Env == "production",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
