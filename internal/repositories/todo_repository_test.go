package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	config "todo-api.com/todo-api/internal/configs"
	"todo-api.com/todo-api/internal/constants"
	dto "todo-api.com/todo-api/internal/data_models"
	"todo-api.com/todo-api/internal/exceptions"
	model "todo-api.com/todo-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(config.OpenSQLite(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// newTestRepository returns a repository whose clock advances one second per
// created record, so ordering by created_at is deterministic.
func newTestRepository(t *testing.T) *TodoRepository {
	repo := NewTodoRepository(setupTestDB(t))
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return repo
}

func mustCreate(t *testing.T, repo *TodoRepository, title string, completed bool, priority constants.Priority) *model.Todo {
	t.Helper()
	todo, err := repo.Create(context.Background(), dto.NewTodo{Title: title, Completed: completed, Priority: priority})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return todo
}

func titles(todos []model.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, todo := range todos {
		out = append(out, todo.Title)
	}
	return out
}

func TestTodoRepository_CreateAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "first", false, constants.PriorityMedium)
	second := mustCreate(t, repo, "second", true, constants.PriorityHigh)

	if first.ID == 0 || second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	got, err := repo.FindByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Title != "second" || !got.Completed || got.Priority != constants.PriorityHigh {
		t.Errorf("unexpected record %+v", got)
	}
	if !got.CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("created_at changed on read: %v vs %v", got.CreatedAt, second.CreatedAt)
	}
}

func TestTodoRepository_IDsAreNotReused(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := mustCreate(t, repo, "a", false, constants.PriorityLow)
	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second := mustCreate(t, repo, "b", false, constants.PriorityLow)
	if second.ID <= first.ID {
		t.Errorf("expected id greater than %d, got %d", first.ID, second.ID)
	}
}

func TestTodoRepository_FindByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), 42)
	if !errors.Is(err, exceptions.ErrTodoNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "Todo item with id: 42 not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTodoRepository_ListFilters(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	mustCreate(t, repo, "Buy milk", false, constants.PriorityLow)
	mustCreate(t, repo, "Buy eggs", false, constants.PriorityHigh)
	mustCreate(t, repo, "Walk dog", true, constants.PriorityMedium)

	tests := []struct {
		name   string
		filter dto.TodoFilter
		want   []string
	}{
		{"no filter newest first", dto.TodoFilter{}, []string{"Walk dog", "Buy eggs", "Buy milk"}},
		{"pending", dto.TodoFilter{Completed: dto.Some(false)}, []string{"Buy eggs", "Buy milk"}},
		{"completed", dto.TodoFilter{Completed: dto.Some(true)}, []string{"Walk dog"}},
		{"priority", dto.TodoFilter{Priority: dto.Some(constants.PriorityHigh)}, []string{"Buy eggs"}},
		{"search is case insensitive", dto.TodoFilter{Search: dto.Some("buy")}, []string{"Buy eggs", "Buy milk"}},
		{"search uppercase", dto.TodoFilter{Search: dto.Some("DOG")}, []string{"Walk dog"}},
		{"empty search matches all", dto.TodoFilter{Search: dto.Some("")}, []string{"Walk dog", "Buy eggs", "Buy milk"}},
		{
			"combined",
			dto.TodoFilter{Completed: dto.Some(false), Priority: dto.Some(constants.PriorityLow)},
			[]string{"Buy milk"},
		},
		{"no match", dto.TodoFilter{Search: dto.Some("zzz")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			got := titles(todos)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTodoRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	mustCreate(t, repo, "100% done", false, constants.PriorityLow)
	mustCreate(t, repo, "1000 done", false, constants.PriorityLow)
	mustCreate(t, repo, "snake_case", false, constants.PriorityLow)
	mustCreate(t, repo, "snakeXcase", false, constants.PriorityLow)

	todos, err := repo.List(ctx, dto.TodoFilter{Search: dto.Some("0%")})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := titles(todos); len(got) != 1 || got[0] != "100% done" {
		t.Errorf("expected only the literal %% match, got %v", got)
	}

	todos, err = repo.List(ctx, dto.TodoFilter{Search: dto.Some("e_c")})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := titles(todos); len(got) != 1 || got[0] != "snake_case" {
		t.Errorf("expected only the literal _ match, got %v", got)
	}
}

func TestTodoRepository_SearchFoldsNonASCIICase(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	mustCreate(t, repo, "ÄPFEL kaufen", false, constants.PriorityLow)
	mustCreate(t, repo, "Éclair", false, constants.PriorityLow)
	mustCreate(t, repo, "Straße fegen", false, constants.PriorityLow)

	tests := []struct {
		search string
		want   []string
	}{
		{"ÄPFEL", []string{"ÄPFEL kaufen"}},
		{"äpfel", []string{"ÄPFEL kaufen"}},
		{"Äpfel KAUFEN", []string{"ÄPFEL kaufen"}},
		{"Éclair", []string{"Éclair"}},
		{"éclair", []string{"Éclair"}},
		{"ÉCLAIR", []string{"Éclair"}},
		{"straße", []string{"Straße fegen"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			todos, err := repo.List(ctx, dto.TodoFilter{Search: dto.Some(tt.search)})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if got := titles(todos); fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTodoRepository_ListTiesBreakByID(t *testing.T) {
	repo := newTestRepository(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	mustCreate(t, repo, "older id", false, constants.PriorityLow)
	mustCreate(t, repo, "newer id", false, constants.PriorityLow)

	todos, err := repo.List(context.Background(), dto.TodoFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := titles(todos); fmt.Sprint(got) != "[newer id older id]" {
		t.Errorf("unexpected order %v", got)
	}
}

func TestTodoRepository_UpdateOnlyTouchesSetFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	todo := mustCreate(t, repo, "Old", true, constants.PriorityHigh)

	updated, err := repo.Update(ctx, todo.ID, dto.TodoChanges{Title: dto.Some("New")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New" || !updated.Completed || updated.Priority != constants.PriorityHigh {
		t.Errorf("unexpected record after title update: %+v", updated)
	}

	updated, err = repo.Update(ctx, todo.ID, dto.TodoChanges{Completed: dto.Some(false)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Completed {
		t.Error("expected completed to be cleared by an explicit false")
	}
	if updated.Title != "New" {
		t.Errorf("title changed unexpectedly to %q", updated.Title)
	}
	if !updated.CreatedAt.Equal(todo.CreatedAt) {
		t.Errorf("created_at changed: %v vs %v", updated.CreatedAt, todo.CreatedAt)
	}
}

func TestTodoRepository_UpdateWithNoChangesReturnsRecord(t *testing.T) {
	repo := newTestRepository(t)
	todo := mustCreate(t, repo, "Same", false, constants.PriorityLow)

	got, err := repo.Update(context.Background(), todo.ID, dto.TodoChanges{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Same" || got.ID != todo.ID {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestTodoRepository_UpdateNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Update(context.Background(), 7, dto.TodoChanges{Title: dto.Some("x")})
	if !errors.Is(err, exceptions.ErrTodoNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTodoRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	todo := mustCreate(t, repo, "gone", false, constants.PriorityLow)
	if err := repo.Delete(ctx, todo.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(ctx, todo.ID); !errors.Is(err, exceptions.ErrTodoNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, todo.ID); !errors.Is(err, exceptions.ErrTodoNotFound) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}

func TestTodoRepository_Stats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 0 || stats.Completed != 0 || stats.Pending != 0 || len(stats.Priority) != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	mustCreate(t, repo, "Low", false, constants.PriorityLow)
	mustCreate(t, repo, "High", false, constants.PriorityHigh)
	mustCreate(t, repo, "Done", true, constants.PriorityHigh)

	stats, err = repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 1 || stats.Pending != 2 {
		t.Errorf("unexpected counts %+v", stats)
	}
	if len(stats.Priority) != 2 || stats.Priority[constants.PriorityLow] != 1 || stats.Priority[constants.PriorityHigh] != 2 {
		t.Errorf("unexpected priority counts %v", stats.Priority)
	}
	if _, ok := stats.Priority[constants.PriorityMedium]; ok {
		t.Error("zero-count priorities must be omitted")
	}
}
