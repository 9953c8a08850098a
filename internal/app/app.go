package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kalavpp_backend/internal/auth"
	"kalavpp_backend/internal/cache"
	"kalavpp_backend/internal/config"
	"kalavpp_backend/internal/database"
	"kalavpp_backend/internal/email"
	"kalavpp_backend/internal/handlers"
	"kalavpp_backend/internal/logger"
	"kalavpp_backend/internal/middleware"
	"kalavpp_backend/internal/models"
	"kalavpp_backend/internal/repositories"
	"kalavpp_backend/internal/routes"
	"kalavpp_backend/internal/services"
	"kalavpp_backend/internal/validator"
	"kalavpp_backend/internal/workers"
)

// SetupRouter builds the gin engine with the full middleware chain and API
// surface on top of an existing DB connection. The test harness calls this
// directly.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	c := cache.New(cfg)
	sender := email.NewSender(cfg)
	sc := services.NewServiceContainer(db, c, sender)
	h := handlers.NewAppHandlers(sc, validator.New())

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
	)

	routes.Setup(router, h)
	return router
}

// Run boots the whole application: config, DB, migrations, admin seed,
// background workers and the HTTP server with graceful shutdown.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := seedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	router := SetupRouter(db, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.NewOrderWorker(repositories.NewOrderRepository(db)).Start(ctx)
	go workers.NewCommissionWorker(repositories.NewCommissionRepository(db)).Start(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedFirstAdmin creates the configured admin account once. Admins are never
// self-registered.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ?", cfg.FirstAdminEmail).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := auth.HashPassword(cfg.FirstAdminPassword)
		if err != nil {
			return err
		}

		admin := &models.User{
			Email:        cfg.FirstAdminEmail,
			Name:         "Administrator",
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		logger.Info("first admin account created", "email", cfg.FirstAdminEmail)
		return nil
	})
}
