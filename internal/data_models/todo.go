package dto

import "todo-api.com/todo-api/internal/constants"

// CreateTodoRequest is the raw POST /todos body.
type CreateTodoRequest struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
	Priority  Optional[string] `json:"priority"`
}

// UpdateTodoRequest is the raw PUT /todos/:id body. Absent fields stay unset.
type UpdateTodoRequest struct {
	Title     Optional[string] `json:"title"`
	Completed Optional[bool]   `json:"completed"`
	Priority  Optional[string] `json:"priority"`
}

// NewTodo holds validated create input with defaults applied.
type NewTodo struct {
	Title     string
	Completed bool
	Priority  constants.Priority
}

// TodoChanges holds validated update input. Only set fields are written.
type TodoChanges struct {
	Title     Optional[string]
	Completed Optional[bool]
	Priority  Optional[constants.Priority]
}

func (c TodoChanges) IsEmpty() bool {
	return !c.Title.Set && !c.Completed.Set && !c.Priority.Set
}

// Columns maps the set fields to their column names.
func (c TodoChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if c.Title.Set {
		cols["title"] = c.Title.Value
	}
	if c.Completed.Set {
		cols["completed"] = c.Completed.Value
	}
	if c.Priority.Set {
		cols["priority"] = c.Priority.Value
	}
	return cols
}

// TodoFilter narrows GET /todos. Unset fields do not filter.
type TodoFilter struct {
	Completed Optional[bool]
	Priority  Optional[constants.Priority]
	Search    Optional[string]
}

type TodoStats struct {
	Total     int64                        `json:"total"`
	Completed int64                        `json:"completed"`
	Pending   int64                        `json:"pending"`
	Priority  map[constants.Priority]int64 `json:"priority"`
}
