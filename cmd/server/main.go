package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/trialvo/trialvo-backend/internal/config"
	"github.com/trialvo/trialvo-backend/internal/database"
	"github.com/trialvo/trialvo-backend/internal/handler"
	"github.com/trialvo/trialvo-backend/internal/logger"
	"github.com/trialvo/trialvo-backend/internal/migrate"
	"github.com/trialvo/trialvo-backend/internal/order"
	"github.com/trialvo/trialvo-backend/internal/queue"
	"github.com/trialvo/trialvo-backend/internal/repository"
	"github.com/trialvo/trialvo-backend/internal/router"
	"github.com/trialvo/trialvo-backend/internal/seed"
	"github.com/trialvo/trialvo-backend/internal/service"
	"github.com/trialvo/trialvo-backend/internal/utils"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logger.ForEnv(os.Getenv("APP_ENV"), "info").Fatal("load config", zap.Error(err))
	}

	log := logger.ForEnv(cfg.Env, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DB)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	defer db.Close()
	log.Info("database connected", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := migrate.Run(ctx, db, migrate.Units, log); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}
	loader := seed.Loader{
		DB:    db,
		Units: seed.Defaults(cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.BcryptCost),
		Log:   log,
	}
	if _, err := loader.Run(ctx); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}

	rdb, err := config.NewRedisClient(cfg.Redis)
	switch {
	case err != nil:
		log.Warn("redis unavailable, caching and rate limiting disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	case rdb != nil:
		defer rdb.Close()
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	var events service.EventPublisher = service.Noop{}
	if cfg.RabbitMQURL != "" {
		events = service.NewAMQPPublisher(cfg.RabbitMQURL, log)
		go func() {
			if err := queue.Consume(ctx, cfg.RabbitMQURL, queue.LogHandler(log.Named("events")), log); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("order consumer stopped", zap.Error(err))
			}
		}()
	}

	admins := repository.NewAdminRepo(db)
	products := repository.NewProductRepo(db)
	orders := repository.NewOrderRepo(db, order.NewCodeGenerator())
	testimonials := repository.NewTestimonialRepo(db)
	messages := repository.NewMessageRepo(db)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(log, cfg.IsProduction())

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(requestLogConfig(log)))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("10M"))

	router.Register(e, router.Deps{
		Auth:         handler.NewAuthHandler(admins, tokens, cfg.BcryptCost),
		Products:     handler.NewProductHandler(products),
		Orders:       handler.NewOrderHandler(orders, events, log),
		Testimonials: handler.NewTestimonialHandler(testimonials),
		Messages:     handler.NewMessageHandler(messages),
		Dashboard:    handler.NewDashboardHandler(orders, products, messages),
		Verifier:     tokens,
		Admins:       admins,
		DB:           db,
		Redis:        rdb,
		Cache:        cfg.Cache,
		RateLimit:    cfg.RateLimit,
		Log:          log,
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown", zap.Error(err))
	}
}

func requestLogConfig(log *zap.Logger) echomw.RequestLoggerConfig {
	return echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
			}
			if v.Error != nil && v.Status >= http.StatusInternalServerError {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}
}
