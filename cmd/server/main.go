package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"estate_backend/internal/app/di"
	"estate_backend/internal/app/router"
	"estate_backend/internal/config"
	authhandler "estate_backend/internal/feature/auth/transport/handler"
	authusecase "estate_backend/internal/feature/auth/usecase"
	propertyhandler "estate_backend/internal/feature/property/transport/handler"
	propertyusecase "estate_backend/internal/feature/property/usecase"
	relationhandler "estate_backend/internal/feature/relation/transport/handler"
	relationusecase "estate_backend/internal/feature/relation/usecase"
	"estate_backend/internal/platform/http/handler"
	jwtmw "estate_backend/internal/platform/jwt"
	"estate_backend/internal/platform/logging"
	"estate_backend/internal/platform/metrics"
	"estate_backend/internal/platform/password"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Store
	store, err := di.NewStore(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()

	// Redis is optional; without it the property cache is skipped
	rdb, err := di.NewRedis(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close Redis client", "error", err)
			}
		}()
	}
	store.WithPropertyCache(rdb, cfg)

	metrics.Register(prometheus.DefaultRegisterer)
	tokens := jwtmw.NewIssuer(cfg.JWTSecret)

	// Usecase
	authUC := authusecase.NewAuthUsecase(store.Users, password.NewBcryptHasher(bcrypt.DefaultCost), tokens)
	propertyUC := propertyusecase.NewPropertyUsecase(store.Properties, store.Users)
	relationUC := relationusecase.NewRelationUsecase(store.Users, store.Properties, metrics.RelationRecorder{})

	// Handler
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Property:  propertyhandler.NewPropertyHandler(propertyUC),
		Relation:  relationhandler.NewRelationHandler(relationUC),
		Readiness: handler.NewReadiness(store.Deps, metrics.DependencyUp),
	}

	engine := router.NewRouter(logger, handlers, tokens, router.Options{
		CORSOrigins:           cfg.CORSAllowedOrigins,
		AuthRequiredForWrites: cfg.AuthRequiredForWrites,
	})

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsSrv := metrics.NewServer(":" + cfg.MetricsPort)

	go func() {
		logger.Info("server started", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
