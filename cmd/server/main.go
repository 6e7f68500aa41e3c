package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/activity"
	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/handler"
	"github.com/iliyamo/movie-catalog/internal/logger"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/router"
	"github.com/iliyamo/movie-catalog/internal/service"
	"github.com/iliyamo/movie-catalog/internal/utils"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	fields := make([]zap.Field, 0, len(cfg.Summary()))
	for k, v := range cfg.Summary() {
		fields = append(fields, zap.String(k, v))
	}
	zl.Info("config loaded", fields...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Open(database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			zl.Fatal("migration failed", zap.Error(err))
		}
		zl.Info("schema migrated")
	}

	rdb := config.NewRedisClient(cfg.Redis, zl)
	if rdb != nil {
		defer rdb.Close()
	}

	// Repositories and services
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	logs := repository.NewActivityLogRepo(db)

	hasher := utils.NewPasswordHasher(cfg.Argon2.MemoryKiB, cfg.Argon2.Iterations, cfg.Argon2.Parallelism)
	signer := utils.NewTokenSigner(cfg.JWTSecret, cfg.TokenTTL)

	authSvc := service.NewAuthService(users, hasher, signer, zl)
	userSvc := service.NewUserService(users, hasher)
	movieSvc := service.NewMovieService(movies, zl)
	logSvc := service.NewActivityLogService(logs, zl)

	// Activity pipeline
	var (
		sink      activity.Sink
		publisher *queue.Publisher
		consumers sync.WaitGroup
	)
	switch cfg.Activity.Sink {
	case config.ActivitySinkAMQP:
		publisher = queue.NewPublisher(cfg.Activity.AMQPURL, cfg.Activity.Queue, zl)
		sink = publisher
		consumer := queue.NewConsumer(cfg.Activity.AMQPURL, cfg.Activity.Queue, logs, zl)
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("activity consumer stopped", zap.Error(err))
			}
		}()
	default:
		sink = activity.StoreSink(logs)
	}
	recorder := activity.NewRecorder(sink, activity.Options{
		Workers:      cfg.Activity.Workers,
		Buffer:       cfg.Activity.Buffer,
		WriteTimeout: cfg.Activity.WriteTimeout,
	}, zl)

	// HTTP
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.MustNew()
	e.HTTPErrorHandler = handler.HTTPErrorHandler(zl)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(zl))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomw.BodyLimit("1M"))
	e.Use(middleware.Activity(recorder, cfg.Activity.CaptureLimit))
	e.Use(echomw.Recover())

	guards := router.NewGuards(signer, authSvc, middleware.NewTokenBucket(cfg.RateLimit, rdb, zl), zl)
	router.RegisterRoutes(e, cfg.Env)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc, handler.CookieConfig{Secure: cfg.IsProduction(), TTL: cfg.TokenTTL}), guards)
	router.RegisterUsers(e, handler.NewUserHandler(userSvc), guards)
	router.RegisterMovies(e, handler.NewMovieHandler(movieSvc), guards)
	router.RegisterActivityLogs(e, handler.NewActivityLogHandler(logSvc), guards)

	go func() {
		zl.Info("listening", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Warn("http shutdown", zap.Error(err))
	}
	// Drain pending entries before the sinks go away.
	if err := recorder.Close(shutdownCtx); err != nil {
		zl.Warn("activity recorder did not drain", zap.Error(err), zap.Int64("dropped", recorder.Dropped()))
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			zl.Warn("activity publisher close", zap.Error(err))
		}
	}
	consumers.Wait()
	zl.Info("stopped")
}
