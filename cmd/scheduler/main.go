package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"TidyElephant/config"
	"TidyElephant/internal/schedule"
	"TidyElephant/pkg/logger"
	"TidyElephant/pkg/snowflake"
	"TidyElephant/storage"
)

func main() {
	logger.Init()
	defer logger.Sync()

	config.MustValidate()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	logger.Logger.Info("Scheduler starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("environment", config.Cfg.Environment),
	)

	schedule.GetProvisioningScheduler().Run(ctx)

	logger.Logger.Info("Scheduler shutting down gracefully")
}
