package exceptions

import (
	"errors"
	"net/http"
)

// Exception is an error with an HTTP status. Kind identifies the error class
// for errors.Is; instances of the same class share it.
type Exception struct {
	Kind       string
	Message    string
	StatusCode int
	Err        error
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.Err
}

func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return t.Kind != "" && t.Kind == e.Kind
}

// StatusCode resolves the HTTP status for err. Unknown errors are 500.
func StatusCode(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity
	}
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
