package exceptions

import "net/http"

const KindStore = "store"

var ErrStore = &Exception{
	Kind:       KindStore,
	Message:    "Internal Server Error",
	StatusCode: http.StatusInternalServerError,
}

// StoreError wraps a persistence failure. The cause is kept for logging
// and never rendered to the client.
func StoreError(err error) *Exception {
	return &Exception{
		Kind:       KindStore,
		Message:    ErrStore.Message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
