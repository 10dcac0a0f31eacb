package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	postgresRepo "github.com/toriai247/EarnHubPro-sub001/internal/adapter/repository/postgres"
	redisRepo "github.com/toriai247/EarnHubPro-sub001/internal/adapter/repository/redis"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/config"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/logger"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/postgres"
	"github.com/toriai247/EarnHubPro-sub001/internal/infrastructure/redis"
	"github.com/toriai247/EarnHubPro-sub001/internal/usecase"
	"github.com/toriai247/EarnHubPro-sub001/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "worker",
	})

	ctx := context.Background()

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

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	redisConnOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse redis URL for task queue")
	}
	redisOpt, ok := redisConnOpt.(asynq.RedisClientOpt)
	if !ok {
		log.Fatal().Msg("unsupported redis URL scheme for task queue")
	}

	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	// Repositories and use cases
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	withdrawalRepo := postgresRepo.NewWithdrawalRepository(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	enqueuer := worker.NewEnqueuer(asynqClient, log)

	walletUC := usecase.NewWalletUseCase(txManager, walletRepo, entryRepo, retrier, idGen, log)
	if bonus, err := decimal.NewFromString(cfg.SignupBonus); err == nil {
		walletUC.SetSignupBonus(bonus)
	}
	ledgerUC := usecase.NewLedgerUseCase(entryRepo, idGen, log)
	withdrawalUC := usecase.NewWithdrawalUseCase(withdrawalRepo, walletUC, enqueuer, idGen, log)
	reconciliationUC := usecase.NewReconciliationUseCase(walletRepo, ledgerUC, cache, log)

	// Nightly reconciliation sweep
	scheduler := worker.NewScheduler(reconciliationUC, log)
	if err := scheduler.Start(cfg.ReconcileCron); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.ReconcileCron).Msg("failed to start scheduler")
	}
	defer scheduler.Stop()

	// Task server
	handlers := worker.NewHandlers(withdrawalUC, reconciliationUC, log)
	srv, mux := worker.NewServer(redisOpt, cfg.WorkerConcurrency, handlers)

	go func() {
		log.Info().Int("concurrency", cfg.WorkerConcurrency).Msg("starting worker")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker...")
	srv.Shutdown()
	log.Info().Msg("worker stopped")
}
