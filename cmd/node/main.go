package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/6529-Collections/nftactions/internal/config"
	"github.com/6529-Collections/nftactions/internal/node"
	"go.uber.org/zap"
)

var Version = "dev" // Overridden by release build script

func init() {
	logger := zap.Must(zap.NewProduction())
	if config.Get().LogZapMode == "development" {
		logger = zap.Must(zap.NewDevelopment())
	}
	zap.ReplaceGlobals(logger)
}

func main() {
	zap.L().Info("Starting 6529-Collections/nftactions node...",
		zap.String("Version", Version))

	// Main context: canceled when we want to stop normal operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := node.NewNode(config.Get())
	if err := n.Start(ctx); err != nil {
		zap.L().Fatal("Failed to start node", zap.Error(err))
	}

	// Catch up to two signals: first for graceful, second to force
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	doneCh := make(chan struct{})

	go func() {
		<-sigCh
		zap.L().Info("Received shutdown signal, initiating graceful shutdown...")

		// 1. Stop the RPC server and close stores
		if err := n.Stop(); err != nil {
			zap.L().Warn("Error stopping node", zap.Error(err))
		}

		// 2. Cancel main context
		cancel()

		// 3. Signal that cleanup is done
		close(doneCh)

		// If a second signal arrives, force an immediate exit
		<-sigCh
		zap.L().Error("Received second signal, forcing shutdown")
		os.Exit(1)
	}()

	<-doneCh

	zap.L().Info("Shutdown complete")
	_ = zap.L().Sync()
}
