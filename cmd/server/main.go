package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/toriai247/EarnHubPro-sub001/internal/adapter/http"
	"github.com/toriai247/EarnHubPro-sub001/internal/adapter/http/handler"
	postgresRepo "github.com/toriai247/EarnHubPro-sub001/internal/adapter/repository/postgres"
	redisRepo "github.com/toriai247/EarnHubPro-sub001/internal/adapter/repository/redis"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/auth"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/config"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/logger"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/metrics"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/postgres"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/redis"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
	"github.com/toriai247/EarnHubPro-sub001/internal/worker"
)

const migrationsPath = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "server",
	})

	ctx := context.Background()

	// PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
		PingTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Background task client
	redisConnOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis URL for task queue")
	}
	asynqClient := asynq.NewClient(redisConnOpt)
	defer asynqClient.Close()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	withdrawalRepo := postgresRepo.NewWithdrawalRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	enqueuer := worker.NewEnqueuer(asynqClient, log)

	// Use cases
	walletUC := usecase.NewWalletUseCase(txManager, walletRepo, entryRepo, retrier, idGen, log)
	if bonus, err := decimal.NewFromString(cfg.SignupBonus); err == nil {
		walletUC.SetSignupBonus(bonus)
	} else {
		log.Warn().Str("signup_bonus", cfg.SignupBonus).Msg("invalid signup bonus, using default")
	}

	ledgerUC := usecase.NewLedgerUseCase(entryRepo, idGen, log)
	outcomeUC := usecase.NewOutcomeUseCase(walletRepo, entryRepo, usecase.SystemRand{})

	settlementUC := usecase.NewSettlementUseCase(walletUC, outcomeUC, ledgerUC, log)
	minStake, minErr := decimal.NewFromString(cfg.MinStake)
	maxStake, maxErr := decimal.NewFromString(cfg.MaxStake)
	if minErr == nil && maxErr == nil {
		settlementUC.SetStakeLimits(minStake, maxStake)
	}

	withdrawalUC := usecase.NewWithdrawalUseCase(withdrawalRepo, walletUC, enqueuer, idGen, log)
	reconciliationUC := usecase.NewReconciliationUseCase(walletRepo, ledgerUC, cache, log)

	// HTTP layer
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		log.Info().Msg("JWT authentication enabled")
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:         handler.NewWalletHandler(walletUC, ledgerUC),
		StakeHandler:          handler.NewStakeHandler(settlementUC),
		WithdrawalHandler:     handler.NewWithdrawalHandler(withdrawalUC),
		RoundHandler:          handler.NewRoundHandler(),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		JWTManager:            jwtManager,
		Metrics:               metrics.New(),
		Logger:                log,
		RateLimitPerSecond:    100,
		RateLimitBurst:        200,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

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
