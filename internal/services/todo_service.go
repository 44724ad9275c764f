package services

import (
	"context"

	dto "todo-api.com/todo-api/internal/data_models"
	model "todo-api.com/todo-api/internal/models"
)

// TodoStore is the persistence surface the service needs.
type TodoStore interface {
	Create(ctx context.Context, fields dto.NewTodo) (*model.Todo, error)
	FindByID(ctx context.Context, id uint) (*model.Todo, error)
	List(ctx context.Context, filter dto.TodoFilter) ([]model.Todo, error)
	Update(ctx context.Context, id uint, changes dto.TodoChanges) (*model.Todo, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*dto.TodoStats, error)
	Ping(ctx context.Context) error
}

type TodoService struct {
	repo TodoStore
}

func NewTodoService(repo TodoStore) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) CreateTodo(ctx context.Context, fields dto.NewTodo) (*model.Todo, error) {
	return s.repo.Create(ctx, fields)
}

func (s *TodoService) GetTodo(ctx context.Context, id uint) (*model.Todo, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TodoService) ListTodos(ctx context.Context, filter dto.TodoFilter) ([]model.Todo, error) {
	return s.repo.List(ctx, filter)
}

func (s *TodoService) UpdateTodo(ctx context.Context, id uint, changes dto.TodoChanges) (*model.Todo, error) {
	return s.repo.Update(ctx, id, changes)
}

func (s *TodoService) DeleteTodo(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *TodoService) Stats(ctx context.Context) (*dto.TodoStats, error) {
	return s.repo.Stats(ctx)
}

func (s *TodoService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
