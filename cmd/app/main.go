package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/candystand/CandyBot_Go/internal/bootstrap"
	"github.com/candystand/CandyBot_Go/internal/clock"
	"github.com/candystand/CandyBot_Go/internal/config"
	"github.com/candystand/CandyBot_Go/internal/database"
	"github.com/candystand/CandyBot_Go/internal/exchange"
	"github.com/candystand/CandyBot_Go/internal/gacha"
	"github.com/candystand/CandyBot_Go/internal/handler"
	"github.com/candystand/CandyBot_Go/internal/ledger"
	"github.com/candystand/CandyBot_Go/internal/logger"
	"github.com/candystand/CandyBot_Go/internal/random"
	"github.com/candystand/CandyBot_Go/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "candybot-api",
		Version:     handler.Version,
	})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.DefaultPoolConfig())
	if err != nil {
		return err
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)

	cat, err := bootstrap.LoadCatalog(ctx, repos.Item)
	if err != nil {
		return err
	}

	eventBus := bootstrap.InitializeEventSystem()

	clk := clock.NewSystem(loc)
	ledgerService := ledger.NewService(repos.Candy, clk, eventBus)
	gachaService := gacha.NewService(repos.Gacha, cat, clk, random.NewSystem(), eventBus)
	exchangeService := exchange.NewService(repos.Exchange, cat, clk, eventBus)

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool, cat, ledgerService, gachaService, exchangeService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		slog.Info("Received shutdown signal", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server: srv,
		DBPool: dbPool,
	})

	return nil
}
