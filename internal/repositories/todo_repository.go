package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"todo-api.com/todo-api/internal/constants"
	dto "todo-api.com/todo-api/internal/data_models"
	"todo-api.com/todo-api/internal/exceptions"
	model "todo-api.com/todo-api/internal/models"
)

// TodoRepository serializes writes behind mu; reads share it.
type TodoRepository struct {
	db  *gorm.DB
	mu  sync.RWMutex
	now func() time.Time
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *TodoRepository) Create(ctx context.Context, fields dto.NewTodo) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	todo := &model.Todo{
		Title:     fields.Title,
		Completed: fields.Completed,
		Priority:  fields.Priority,
		CreatedAt: r.now(),
	}

	if err := r.db.WithContext(ctx).Create(todo).Error; err != nil {
		return nil, exceptions.StoreError(err)
	}

	return todo, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint) (*model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return findByID(r.db.WithContext(ctx), id)
}

func (r *TodoRepository) List(ctx context.Context, filter dto.TodoFilter) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := r.db.WithContext(ctx).Model(&model.Todo{})

	if filter.Completed.Set {
		query = query.Where("completed = ?", filter.Completed.Value)
	}
	if filter.Priority.Set {
		query = query.Where("priority = ?", filter.Priority.Value)
	}
	if filter.Search.Set {
		query = query.Where("unicode_lower(title) LIKE ? ESCAPE '\\'", likePattern(filter.Search.Value))
	}

	todos := make([]model.Todo, 0)
	if err := query.Order("created_at desc").Order("id desc").Find(&todos).Error; err != nil {
		return nil, exceptions.StoreError(err)
	}

	return todos, nil
}

// Update writes only the set fields of changes inside one transaction.
func (r *TodoRepository) Update(ctx context.Context, id uint, changes dto.TodoChanges) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated *model.Todo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		todo, err := findByID(tx, id)
		if err != nil {
			return err
		}

		if !changes.IsEmpty() {
			if err := tx.Model(todo).Updates(changes.Columns()).Error; err != nil {
				return exceptions.StoreError(err)
			}
		}

		updated, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := r.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if res.Error != nil {
		return exceptions.StoreError(res.Error)
	}

	if res.RowsAffected == 0 {
		return exceptions.TodoNotFound(id)
	}

	return nil
}

func (r *TodoRepository) Stats(ctx context.Context) (*dto.TodoStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	db := r.db.WithContext(ctx)
	stats := &dto.TodoStats{Priority: make(map[constants.Priority]int64)}

	if err := db.Model(&model.Todo{}).Count(&stats.Total).Error; err != nil {
		return nil, exceptions.StoreError(err)
	}

	if err := db.Model(&model.Todo{}).Where("completed = ?", true).Count(&stats.Completed).Error; err != nil {
		return nil, exceptions.StoreError(err)
	}

	var rows []struct {
		Priority constants.Priority
		Count    int64
	}
	err := db.Model(&model.Todo{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, exceptions.StoreError(err)
	}

	for _, row := range rows {
		if row.Count > 0 {
			stats.Priority[row.Priority] = row.Count
		}
	}

	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

// Ping reports whether the underlying database answers.
func (r *TodoRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func findByID(db *gorm.DB, id uint) (*model.Todo, error) {
	var todo model.Todo
	err := db.First(&todo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.TodoNotFound(id)
		}
		return nil, exceptions.StoreError(err)
	}
	return &todo, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}
