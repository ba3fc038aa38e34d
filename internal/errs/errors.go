package errs

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across services and handlers. Services wrap these
// with fmt.Errorf("%w: ...") and handlers map them back with errors.Is.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrMissingAPIKey = errors.New("missing GEMINI_API_KEY")
	ErrUpstream      = errors.New("upstream generation failed")
	ErrStorage       = errors.New("storage failure")
)

var statusMap = map[error]int{
	ErrInvalidInput:  http.StatusBadRequest,
	ErrNotFound:      http.StatusNotFound,
	ErrMissingAPIKey: http.StatusInternalServerError,
	ErrUpstream:      http.StatusInternalServerError,
	ErrStorage:       http.StatusInternalServerError,
}

// StatusFor returns the HTTP status for a known error, or 500.
func StatusFor(err error) int {
	for sentinel, code := range statusMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}
