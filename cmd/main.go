package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/jukeseed/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnvFile(".env"); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	config := shared.DefaultConfig()

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "jukeseed",
		Usage:    "Seed the jukebox test database with its account and fixtures",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrVerificationFailed) {
			logger.Error("verification failed", "error", err)
			os.Exit(2)
		}
		logger.Fatalf("application error: %v", err)
	}
}
