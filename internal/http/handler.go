package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "todo-api.com/todo-api/internal/data_models"
	"todo-api.com/todo-api/internal/http/validators"
	"todo-api.com/todo-api/internal/services"
)

type Handler struct {
	todoService *services.TodoService
}

func NewHandler(todoService *services.TodoService) *Handler {
	return &Handler{
		todoService: todoService,
	}
}

func (h *Handler) CreateTodo(c echo.Context) error {
	var req dto.CreateTodoRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	fields, err := validators.ValidateCreateTodoRequest(&req)
	if err != nil {
		return err
	}

	todo, err := h.todoService.CreateTodo(c.Request().Context(), fields)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, todo)
}

func (h *Handler) ListTodos(c echo.Context) error {
	filter, err := parseTodoFilter(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListTodos(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todos)
}

func (h *Handler) TodoStats(c echo.Context) error {
	stats, err := h.todoService.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.GetTodo(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *Handler) UpdateTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTodoRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	changes, err := validators.ValidateUpdateTodoRequest(&req)
	if err != nil {
		return err
	}

	todo, err := h.todoService.UpdateTodo(c.Request().Context(), id, changes)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, todo)
}

func (h *Handler) DeleteTodo(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (h *Handler) Readyz(c echo.Context) error {
	if err := h.todoService.Ready(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database not ready").SetInternal(err)
	}
	return c.String(http.StatusOK, "ready")
}
