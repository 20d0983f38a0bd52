package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jobboard-api/internal/cache"
	memorycache "jobboard-api/internal/cache/memory"
	rediscache "jobboard-api/internal/cache/redis"
	"jobboard-api/internal/config"
	"jobboard-api/internal/database"
	"jobboard-api/internal/handlers"
	"jobboard-api/internal/logger"
	"jobboard-api/internal/mailer"
	"jobboard-api/internal/services"
	"jobboard-api/internal/webhooks"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting job board API",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("log_level", cfg.LogLevel),
	)

	db, err := database.Connect(database.Options{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	log.Info("PostgreSQL connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var listCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := rediscache.New(ctx, cache.Options{
			RedisAddr:     cfg.RedisAddr,
			RedisPassword: cfg.RedisPassword,
			RedisDB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatal("failed to connect to Redis", zap.Error(err))
		}
		listCache = redisCache
		log.Info("Redis connected", zap.String("addr", cfg.RedisAddr))
	} else {
		listCache = memorycache.New()
		log.Info("using in-process cache")
	}
	defer listCache.Close()

	mail := mailer.New(mailer.Options{
		Endpoint:  cfg.MailEndpoint,
		AccessKey: cfg.MailAccessKey,
		Timeout:   cfg.MailTimeout,
	}, log)

	jobService := services.NewJobService(db, listCache, cfg.ListCacheTTL, log)
	applicationService := services.NewApplicationService(db, mail, log)
	userService := services.NewUserService(db, log)

	jobHandler := handlers.NewJobHandler(jobService, log)
	applicationHandler := handlers.NewApplicationHandler(applicationService, log)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", cfg.IdentityHeader}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestID())
	r.Use(handlers.RequestLogger(log))
	r.Use(cors.New(corsConfig))
	r.Use(handlers.Authenticate(userService, cfg.IdentityHeader, log))

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.POST("/jobs", handlers.RequireSubject(), jobHandler.CreateJob)
		api.PUT("/jobs/:id", handlers.RequireUser(), jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", handlers.RequireUser(), jobHandler.DeleteJob)

		api.POST("/jobs/:id/apply", handlers.RequireUser(), applicationHandler.Apply)
		api.GET("/applications", handlers.RequireUser(), applicationHandler.List)

		api.GET("/dashboard", handlers.RequireUser(), jobHandler.Dashboard)
		api.GET("/companies", jobHandler.Companies)

		if cfg.WebhookSecret != "" {
			verifier, err := webhooks.NewVerifier(cfg.WebhookSecret)
			if err != nil {
				log.Fatal("failed to create webhook verifier", zap.Error(err))
			}
			webhookHandler := handlers.NewWebhookHandler(verifier, userService, log)
			api.POST("/webhooks/identity", webhookHandler.HandleIdentityEvent)
		} else {
			log.Warn("IDENTITY_WEBHOOK_SECRET not set, identity webhook disabled")
		}
	}

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
		cancel()
	}()

	log.Info("server listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}

	log.Info("server stopped")
}
