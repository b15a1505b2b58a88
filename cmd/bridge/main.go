package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/logging"
	"github.com/GriffinCanCode/hostbridge/internal/server"
	"go.uber.org/zap"
)

func main() {
	// Parse flags
	profilePath := flag.String("profile", "", "Device profile (overrides BRIDGE_PROFILE)")
	channelName := flag.String("channel", "", "Channel name (overrides BRIDGE_CHANNEL)")
	dev := flag.Bool("dev", false, "Development logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *profilePath != "" {
		cfg.Host.Profile = *profilePath
	}
	if *channelName != "" {
		cfg.Channel.Name = *channelName
	}

	logCfg := logging.DefaultConfig()
	if cfg.Logging.Development || *dev {
		logCfg = logging.DevelopmentConfig()
	}
	if os.Getenv("LOG_LEVEL") != "" {
		logCfg.Level = cfg.Logging.Level
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create bridge", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Serve stdin in a goroutine; a blocked read does not observe cancellation
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run(ctx, os.Stdin, os.Stdout)
	}()

	exitCode := 0
	select {
	case <-sigChan:
		logger.Info("Shutting down gracefully")
	case err := <-errChan:
		if err != nil {
			logger.Error("Channel error", zap.Error(err))
			exitCode = 1
		}
	}
	cancel()

	if err := srv.Close(); err != nil {
		exitCode = 1
	}
	os.Exit(exitCode)
}
