package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/questledger/internal/bootstrap"
	"github.com/osse101/questledger/internal/config"
	"github.com/osse101/questledger/internal/domain"
	"github.com/osse101/questledger/internal/handler"
	"github.com/osse101/questledger/internal/history"
	"github.com/osse101/questledger/internal/quest"
	"github.com/osse101/questledger/internal/season"
	"github.com/osse101/questledger/internal/server"
	"github.com/osse101/questledger/internal/sse"
	"github.com/osse101/questledger/internal/worker"
)

// ShutdownTimeout bounds the graceful shutdown sequence
const ShutdownTimeout = 30 * time.Second

// @title questledger API
// @version 1.0
// @description Seasonal quest rewards: per-period leaderboards, a reward pool settled to the top players, and admin-set reward multipliers.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid environment: %v\n", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg, loggerConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn(w)
	}

	if err := run(cfg); err != nil {
		slog.Error("Application failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	handler.InitValidator()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Close()
		return err
	}

	engine, err := season.NewEngine(season.Config{
		PeriodDuration: cfg.PeriodDuration,
		Rewards: domain.RewardConfig{
			RewardPercentage:       cfg.RewardPercentageBps,
			MinimumScore:           cfg.MinScoreForRewards,
			ParticipationThreshold: cfg.ParticipationThreshold,
		},
	}, season.SystemClock{}, repos.Accounts, repos.Characters, publisher)
	if err != nil {
		return fmt.Errorf("failed to create season engine: %w", err)
	}

	catalog, err := bootstrap.LoadQuestCatalog(cfg.QuestCatalogPath)
	if err != nil {
		return err
	}

	questService, err := quest.NewService(catalog, cfg.FeeBps, engine, repos.Accounts, repos.Characters, publisher)
	if err != nil {
		return fmt.Errorf("failed to create quest service: %w", err)
	}
	historyService := history.NewService(repos.History)

	sseHub := sse.NewHub()
	sseHub.Start()

	jobPool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	jobPool.Start()

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:       eventBus,
		HistoryService: historyService,
		SSEHub:         sseHub,
		JobPool:        jobPool,
		Config:         cfg,
	}); err != nil {
		return err
	}

	rollover, err := worker.NewRolloverWorker(engine, cfg.RolloverSchedule)
	if err != nil {
		return fmt.Errorf("failed to create rollover worker: %w", err)
	}
	if err := rollover.Start(); err != nil {
		return fmt.Errorf("failed to start rollover worker: %w", err)
	}

	// an untyped nil keeps /readyz on the in-memory branch
	var db handler.Pinger
	if repos.DB != nil {
		db = repos.DB
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Dependencies{
		Season:   engine,
		Quests:   questService,
		History:  historyService,
		Accounts: repos.Accounts,
		Roller:   rollover,
		SSEHub:   sseHub,
		DB:       db,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case runErr = <-serverErr:
		slog.Error("Server failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		RolloverWorker:     rollover,
		SSEHub:             sseHub,
		JobPool:            jobPool,
		ResilientPublisher: publisher,
		Repositories:       repos,
	})

	return runErr
}
