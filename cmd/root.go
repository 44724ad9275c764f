package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "todo-api.com/todo-api/internal/configs"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "todo-api",
	Short:         "Todo list API service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to the .env file")
}

// loadConfig reads the .env file, when present, then the environment.
func loadConfig() (config.Config, *slog.Logger, error) {
	envErr := godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := config.NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Info(".env file not found, using environment variables", "path", envFile)
	}

	return cfg, logger, nil
}
