package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"moversmove/backend/internal/config"
	"moversmove/backend/internal/health"
	"moversmove/backend/internal/logger"
	"moversmove/backend/internal/mail"
	"moversmove/backend/internal/monitoring"
	"moversmove/backend/internal/ratelimit"
	"moversmove/backend/internal/service"
	"moversmove/backend/internal/storage/redis"
	httptransport "moversmove/backend/internal/transport/http"
	"moversmove/backend/internal/turnstile"
)

// main starts the form submission API for the Movers Move site.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDevelopment(),
		File:        cfg.Log.File,
		MaxSizeMB:   100,
		MaxBackups:  3,
		MaxAgeDays:  28,
		Compress:    true,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("starting moversmove backend",
		zap.String("environment", string(cfg.Environment)),
		zap.String("log_level", cfg.Log.Level),
	)

	// Rate-limit store. Redis when configured, otherwise the in-process
	// limiter (single-instance deployments and development).
	var (
		limiter     ratelimit.Limiter
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.New(&cfg.Redis, log)
		if err != nil {
			panic(fmt.Sprintf("failed to connect to redis: %v", err))
		}
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window, log)
		log.Info("using redis rate limiter", zap.String("addr", cfg.Redis.Addr))
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		log.Info("using in-memory rate limiter")
	}

	verifier := turnstile.New(&cfg.Turnstile, cfg.Environment, log)

	composer, err := mail.NewComposer(cfg.Mail.To, cfg.Mail.From)
	if err != nil {
		panic(fmt.Sprintf("failed to build email templates: %v", err))
	}

	dispatcher, err := mail.NewDispatcher(cfg, log)
	if err != nil {
		panic(fmt.Sprintf("failed to configure email delivery: %v", err))
	}

	metrics := monitoring.NewMetrics()
	healthChecker := health.NewChecker(redisClient, log)

	submissions := service.NewSubmissionService(limiter, verifier, composer, dispatcher, metrics, log)

	router := httptransport.NewRouter(httptransport.RouterDependencies{
		Config:            cfg,
		SubmissionService: submissions,
		HealthChecker:     healthChecker,
		Logger:            log,
	})

	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting HTTP server", zap.String("address", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", zap.Error(err))
	}
	log.Info("server stopped")
}
