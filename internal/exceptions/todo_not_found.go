package exceptions

import (
	"fmt"
	"net/http"
)

const KindTodoNotFound = "todo_not_found"

// ErrTodoNotFound matches every TodoNotFound error through errors.Is.
var ErrTodoNotFound = &Exception{
	Kind:       KindTodoNotFound,
	Message:    "todo item not found",
	StatusCode: http.StatusNotFound,
}

func TodoNotFound(id interface{}) *Exception {
	return &Exception{
		Kind:       KindTodoNotFound,
		Message:    fmt.Sprintf("Todo item with id: %v not found", id),
		StatusCode: http.StatusNotFound,
	}
}
