package http

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	dto "todo-api.com/todo-api/internal/data_models"
	"todo-api.com/todo-api/internal/exceptions"
	"todo-api.com/todo-api/internal/http/validators"
)

var (
	truthy = map[string]bool{"1": true, "true": true, "t": true, "yes": true, "y": true, "on": true}
	falsy  = map[string]bool{"0": true, "false": true, "f": true, "no": true, "n": true, "off": true}
)

// todoID parses the :id path parameter. Well-formed integers that can never
// exist (below 1 or beyond int64) are reported as not found.
func todoID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, exceptions.TodoNotFound(raw)
	}
	if err != nil {
		return 0, exceptions.NewValidationError(
			"Input should be a valid integer, unable to parse string as an integer",
			"int_parsing",
			exceptions.LocPath, "todo_id",
		)
	}
	if id < 1 {
		return 0, exceptions.TodoNotFound(id)
	}
	return uint(id), nil
}

func parseTodoFilter(c echo.Context) (dto.TodoFilter, error) {
	var filter dto.TodoFilter
	query := c.QueryParams()
	verr := &exceptions.ValidationError{}

	if query.Has("completed") {
		raw := strings.ToLower(strings.TrimSpace(query.Get("completed")))
		switch {
		case truthy[raw]:
			filter.Completed = dto.Some(true)
		case falsy[raw]:
			filter.Completed = dto.Some(false)
		default:
			verr.Add(
				"Input should be a valid boolean, unable to interpret input",
				"bool_parsing",
				exceptions.LocQuery, "completed",
			)
		}
	}

	if query.Has("priority") {
		p, err := validators.ValidatePriority(query.Get("priority"), exceptions.LocQuery, "priority")
		if err != nil {
			var pErr *exceptions.ValidationError
			if errors.As(err, &pErr) {
				verr.Details = append(verr.Details, pErr.Details...)
			}
		} else {
			filter.Priority = dto.Some(p)
		}
	}

	if query.Has("search") {
		filter.Search = dto.Some(query.Get("search"))
	}

	if err := verr.OrNil(); err != nil {
		return dto.TodoFilter{}, err
	}
	return filter, nil
}

// bindJSON decodes the request body into i. An empty body leaves i untouched.
func bindJSON(c echo.Context, i interface{}) error {
	if c.Request().ContentLength == 0 {
		return nil
	}

	err := c.Echo().JSONSerializer.Deserialize(c, i)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		loc := []string{exceptions.LocBody}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return exceptions.NewValidationError(typeMessage(typeErr.Type.Kind().String()), "type_error", loc...)
	}

	return exceptions.NewValidationError("JSON decode error", "json_invalid", exceptions.LocBody)
}

func typeMessage(kind string) string {
	switch kind {
	case "bool":
		return "Input should be a valid boolean"
	case "string":
		return "Input should be a valid string"
	case "struct", "map":
		return "Input should be a valid dictionary"
	}
	return "Input should be a valid " + kind
}
