package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-leave-gateway/api/swagger"
	"github.com/noah-isme/sma-leave-gateway/internal/handler"
	"github.com/noah-isme/sma-leave-gateway/internal/service"
	"github.com/noah-isme/sma-leave-gateway/pkg/cache"
	"github.com/noah-isme/sma-leave-gateway/pkg/config"
	"github.com/noah-isme/sma-leave-gateway/pkg/credentials"
	"github.com/noah-isme/sma-leave-gateway/pkg/logger"
)

// @title SMA Leave Gateway
// @version 0.2.0
// @description Builds and executes leave backend requests for the admin, teacher and student dashboards
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stored credential slots only back callers that send no bearer of their own,
	// and only when explicitly enabled.
	var shared credentials.Store
	if cfg.Credentials.SharedFallback {
		var redisClient *redis.Client
		if cfg.Credentials.Driver == config.CredentialsRedis {
			redisClient, err = cache.NewRedis(ctx, cfg.Redis, logr)
			if err != nil {
				logr.Fatal("redis connection failed", zap.Error(err))
			}
			defer redisClient.Close() //nolint:errcheck
		}

		shared, err = credentials.Open(cfg.Credentials, redisClient, logr)
		if err != nil {
			logr.Fatal("credential store init failed", zap.Error(err))
		}
		if fileStore, ok := shared.(*credentials.FileStore); ok && cfg.Credentials.Watch {
			go func() {
				if err := fileStore.Watch(ctx); err != nil {
					logr.Warn("credentials watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	metrics := service.NewMetricsService()
	validate := validator.New()
	descriptors := service.NewDescriptorService(cfg.Backend, shared, validate, logr, metrics)
	leave := service.NewLeaveService(descriptors, cfg.Upstream, logr, metrics)
	redirects := service.NewRedirectService(cfg.Auth, shared, logr, metrics)

	r := handler.NewRouter(handler.RouterOptions{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.EnableDocs,
		Logger:         logr,
		Metrics:        metrics,
		Descriptors:    descriptors,
		Leave:          leave,
		Redirects:      redirects,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	logr.Sugar().Infow("server starting",
		"addr", srv.Addr,
		"env", cfg.Env,
		"api_base", descriptors.APIBase(),
		"credentials", cfg.Credentials.Driver,
		"shared_fallback", cfg.Credentials.SharedFallback,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
