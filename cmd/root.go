package cmd

import (
	"fmt"
	"os"

	"courierhub/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "courierhub",
	Short:         "Order lifecycle and notification service for delivery companies",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap() (Config, *zap.Logger, error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return Config{}, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}
