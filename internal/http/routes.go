package http

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const apiPrefix = "/api"

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// FrontendDist is served as a single-page app when the directory exists.
	FrontendDist string
	// RateLimiter guards the API group. Nil disables limiting.
	RateLimiter echo.MiddlewareFunc
}

type route struct {
	method  string
	path    string
	handler func(*Handler) echo.HandlerFunc
}

// todoRoutes is mounted under /api. Echo ranks static segments above params,
// so /todos/stats wins over /todos/:id in any registration order.
var todoRoutes = []route{
	{http.MethodPost, "/todos", func(h *Handler) echo.HandlerFunc { return h.CreateTodo }},
	{http.MethodGet, "/todos", func(h *Handler) echo.HandlerFunc { return h.ListTodos }},
	{http.MethodGet, "/todos/stats", func(h *Handler) echo.HandlerFunc { return h.TodoStats }},
	{http.MethodGet, "/todos/:id", func(h *Handler) echo.HandlerFunc { return h.GetTodo }},
	{http.MethodPut, "/todos/:id", func(h *Handler) echo.HandlerFunc { return h.UpdateTodo }},
	{http.MethodDelete, "/todos/:id", func(h *Handler) echo.HandlerFunc { return h.DeleteTodo }},
}

func Register(e *echo.Echo, h *Handler, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowCredentials: true,
	}))

	if dist := opts.FrontendDist; dist != "" {
		if info, err := os.Stat(dist); err == nil && info.IsDir() {
			e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
				Root:    dist,
				HTML5:   true,
				Skipper: isBackendPath,
			}))
		} else {
			logger.Info("frontend bundle not found, serving API only", "path", dist)
		}
	}

	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)

	api := e.Group(apiPrefix)
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter)
	}
	mount(api, h, todoRoutes)
}

func mount(g *echo.Group, h *Handler, routes []route) {
	for _, r := range routes {
		g.Add(r.method, r.path, r.handler(h))
	}
}

func isBackendPath(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == apiPrefix || strings.HasPrefix(path, apiPrefix+"/") ||
		path == "/healthz" || path == "/readyz"
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(context.Background(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
				slog.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}
