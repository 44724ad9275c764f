package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "todo-api.com/todo-api/internal/configs"
	httpapi "todo-api.com/todo-api/internal/http"
	middleware "todo-api.com/todo-api/internal/http/middlewares"
	repository "todo-api.com/todo-api/internal/repositories"
	"todo-api.com/todo-api/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the todo HTTP API and serves the bundled frontend when it is built",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseFolder, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		sqlDB, err := database.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		todoRepo := repository.NewTodoRepository(database)
		todoService := services.NewTodoService(todoRepo)

		limiter, closeLimiter, err := newRateLimiter(cfg, logger)
		if err != nil {
			return err
		}
		defer closeLimiter()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		httpapi.Register(e, httpapi.NewHandler(todoService), httpapi.Options{
			Logger:         logger,
			AllowedOrigins: cfg.AllowedOrigins(),
			FrontendDist:   cfg.FrontendDist,
			RateLimiter:    limiter,
		})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Warn("HTTP server shutdown incomplete", "error", err)
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

// newRateLimiter picks the Redis store when REDIS_ADDR is set, otherwise an
// in-process one. A zero limit disables limiting.
func newRateLimiter(cfg config.Config, logger *slog.Logger) (echo.MiddlewareFunc, func(), error) {
	if cfg.RateLimit == 0 {
		return nil, func() {}, nil
	}

	if cfg.RedisAddr == "" {
		store := middleware.NewMemoryStore(cfg.RateLimit, time.Minute)
		return middleware.RateLimiter(store, logger), func() {}, nil
	}

	redisClient, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}

	store := middleware.NewRedisStore(redisClient, cfg.RedisRateLimitPrefix, cfg.RateLimit, time.Minute)
	logger.Info("rate limiting through redis", "addr", cfg.RedisAddr)
	return middleware.RateLimiter(store, logger), redisClient.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
