package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/studydeck-backend/internal/app"
	"github.com/yungbote/studydeck-backend/internal/db"
	"github.com/yungbote/studydeck-backend/internal/handlers"
	"github.com/yungbote/studydeck-backend/internal/logger"
	"github.com/yungbote/studydeck-backend/internal/middleware"
	"github.com/yungbote/studydeck-backend/internal/observability"
	"github.com/yungbote/studydeck-backend/internal/repos"
	"github.com/yungbote/studydeck-backend/internal/server"
	"github.com/yungbote/studydeck-backend/internal/services"
	"github.com/yungbote/studydeck-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config
	log.Info("Loading configuration from main...")
	cfg := app.LoadConfig(log)

	// Tracing
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "studydeck",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(shutdownCtx); err != nil {
			log.Warn("OTel shutdown failed", "error", err.Error())
		}
	}()

	// Database
	dbService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err.Error())
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err.Error())
	}
	gdb := dbService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(gdb, log)
	userTokenRepo := repos.NewUserTokenRepo(gdb, log)
	courseDocumentRepo := repos.NewCourseDocumentRepo(gdb, log)

	// Services
	log.Info("Setting up services from main...")
	authService := services.NewAuthService(gdb, log, userRepo, userTokenRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	documentService := services.NewDocumentService(gdb, log, courseDocumentRepo)

	var signalService services.SignalService
	if cfg.RedisAddr != "" {
		signalService, err = services.NewSignalService(log, cfg.RedisAddr, cfg.SignalSessionTTL)
		if err != nil {
			log.Warn("Signal service init failed, signaling routes disabled", "error", err.Error())
		}
	} else {
		log.Warn("REDIS_ADDR not set, signaling routes disabled")
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(log, authService)
	documentHandler := handlers.NewDocumentHandler(log, documentService)
	var signalHandler *handlers.SignalHandler
	if signalService != nil {
		signalHandler = handlers.NewSignalHandler(log, signalService)
	}

	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		DocumentHandler: documentHandler,
		SignalHandler:   signalHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal("Server exited with error", "error", err.Error())
	}
	log.Info("Server stopped")
}
