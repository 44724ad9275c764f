package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"todo-api.com/todo-api/internal/constants"
	dto "todo-api.com/todo-api/internal/data_models"
	"todo-api.com/todo-api/internal/exceptions"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

var (
	titleRules    = fmt.Sprintf("required,max=%d", constants.TitleMaxLength)
	priorityRules = "oneof=" + joinPriorities(" ")
)

func ValidateCreateTodoRequest(r *dto.CreateTodoRequest) (dto.NewTodo, error) {
	out := dto.NewTodo{Priority: constants.DefaultPriority}
	verr := &exceptions.ValidationError{}

	if !r.Title.Set {
		verr.Add("Field required", "missing", exceptions.LocBody, "title")
	} else if title, ok := checkTitle(verr, r.Title); ok {
		out.Title = title
	}

	if r.Completed.Set {
		if r.Completed.Null {
			addNull(verr, "completed", "boolean")
		} else {
			out.Completed = r.Completed.Value
		}
	}

	if r.Priority.Set {
		if p, ok := checkPriority(verr, r.Priority); ok {
			out.Priority = p
		}
	}

	if err := verr.OrNil(); err != nil {
		return dto.NewTodo{}, err
	}
	return out, nil
}

// ValidateUpdateTodoRequest keeps absent fields unset. An explicit empty title
// is an error, never a request to clear it.
func ValidateUpdateTodoRequest(r *dto.UpdateTodoRequest) (dto.TodoChanges, error) {
	var out dto.TodoChanges
	verr := &exceptions.ValidationError{}

	if r.Title.Set {
		if title, ok := checkTitle(verr, r.Title); ok {
			out.Title = dto.Some(title)
		}
	}

	if r.Completed.Set {
		if r.Completed.Null {
			addNull(verr, "completed", "boolean")
		} else {
			out.Completed = dto.Some(r.Completed.Value)
		}
	}

	if r.Priority.Set {
		if p, ok := checkPriority(verr, r.Priority); ok {
			out.Priority = dto.Some(p)
		}
	}

	if err := verr.OrNil(); err != nil {
		return dto.TodoChanges{}, err
	}
	return out, nil
}

// ValidatePriority checks a priority coming from outside the request body.
func ValidatePriority(raw string, loc ...string) (constants.Priority, error) {
	if err := validate.Var(raw, priorityRules); err != nil {
		return "", exceptions.NewValidationError(priorityMessage(), "literal_error", loc...)
	}
	return constants.Priority(raw), nil
}

func checkTitle(verr *exceptions.ValidationError, title dto.Optional[string]) (string, bool) {
	if title.Null {
		addNull(verr, "title", "string")
		return "", false
	}

	trimmed := strings.TrimSpace(title.Value)
	if err := validate.Var(trimmed, titleRules); err != nil {
		switch failedTag(err) {
		case "required":
			verr.Add("Value error, Title cannot be empty", "value_error", exceptions.LocBody, "title")
		case "max":
			verr.Add(
				fmt.Sprintf("String should have at most %d characters", constants.TitleMaxLength),
				"string_too_long",
				exceptions.LocBody, "title",
			)
		default:
			verr.Add(err.Error(), "value_error", exceptions.LocBody, "title")
		}
		return "", false
	}

	return trimmed, true
}

func checkPriority(verr *exceptions.ValidationError, priority dto.Optional[string]) (constants.Priority, bool) {
	if priority.Null {
		addNull(verr, "priority", "string")
		return "", false
	}

	p, err := ValidatePriority(priority.Value, exceptions.LocBody, "priority")
	if err != nil {
		verr.Details = append(verr.Details, err.(*exceptions.ValidationError).Details...)
		return "", false
	}
	return p, true
}

var nullTypes = map[string]string{"string": "string_type", "boolean": "bool_type"}

func addNull(verr *exceptions.ValidationError, field, kind string) {
	verr.Add("Input should be a valid "+kind, nullTypes[kind], exceptions.LocBody, field)
}

func failedTag(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return errs[0].Tag()
	}
	return ""
}

func priorityMessage() string {
	quoted := make([]string, 0, len(constants.Priorities))
	for _, p := range constants.Priorities {
		quoted = append(quoted, "'"+string(p)+"'")
	}
	last := len(quoted) - 1
	return "Input should be " + strings.Join(quoted[:last], ", ") + " or " + quoted[last]
}

func joinPriorities(sep string) string {
	parts := make([]string, 0, len(constants.Priorities))
	for _, p := range constants.Priorities {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, sep)
}
