package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/mkmayk11/mhbank/internal/adapter/http"
	"github.com/mkmayk11/mhbank/internal/adapter/http/handler"
	postgresRepo "github.com/mkmayk11/mhbank/internal/adapter/repository/postgres"
	redisRepo "github.com/mkmayk11/mhbank/internal/adapter/repository/redis"
	"github.com/mkmayk11/mhbank/internal/domain"
	"github.com/mkmayk11/mhbank/internal/infrastructure/auth"
	"github.com/mkmayk11/mhbank/internal/infrastructure/config"
	"github.com/mkmayk11/mhbank/internal/infrastructure/logger"
	"github.com/mkmayk11/mhbank/internal/infrastructure/metrics"
	"github.com/mkmayk11/mhbank/internal/infrastructure/postgres"
	"github.com/mkmayk11/mhbank/internal/infrastructure/redis"
	"github.com/mkmayk11/mhbank/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	historyRepo := postgresRepo.NewHistoryRepository(pool)
	depositRepo := postgresRepo.NewDepositRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log.Logger)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, historyRepo, retrier)
	depositUC := usecase.NewDepositUseCase(txManager, accountRepo, historyRepo, depositRepo, idGen, retrier)
	wagerUC := usecase.NewWagerUseCase(txManager, accountRepo, historyRepo, retrier)
	historyUC := usecase.NewHistoryUseCase(historyRepo)

	if err := bootstrapAdmin(ctx, cfg, accountUC); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin account")
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	m := metrics.New()

	// Initialize handlers
	accountHandler := handler.NewAccountHandler(accountUC, jwtManager)
	ledgerHandler := handler.NewLedgerHandler(ledgerUC, m)
	depositHandler := handler.NewDepositHandler(depositUC, m)
	wagerHandler := handler.NewWagerHandler(wagerUC, m)
	historyHandler := handler.NewHistoryHandler(historyUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		LedgerHandler:    ledgerHandler,
		DepositHandler:   depositHandler,
		WagerHandler:     wagerHandler,
		HistoryHandler:   historyHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		Metrics:          m,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// bootstrapAdmin creates the configured admin account on first start.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, accountUC *usecase.AccountUseCase) error {
	if cfg.AdminCredential == "" {
		log.Warn().Msg("ADMIN_CREDENTIAL not set, skipping admin bootstrap")
		return nil
	}

	_, err := accountUC.Register(ctx, usecase.RegisterInput{
		AccountID:  cfg.AdminAccountID,
		Credential: cfg.AdminCredential,
		Role:       domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrAccountExists) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("account_id", cfg.AdminAccountID).Msg("admin account created")
	return nil
}
