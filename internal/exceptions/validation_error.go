package exceptions

import "strings"

const (
	LocBody  = "body"
	LocQuery = "query"
	LocPath  = "path"
)

type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError carries every field-level problem found in one request.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, strings.Join(d.Loc, ".")+": "+d.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(msg, errType string, loc ...string) {
	e.Details = append(e.Details, FieldError{Loc: loc, Msg: msg, Type: errType})
}

// OrNil returns nil when nothing was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Details) == 0 {
		return nil
	}
	return e
}

func NewValidationError(msg, errType string, loc ...string) *ValidationError {
	e := &ValidationError{}
	e.Add(msg, errType, loc...)
	return e
}
