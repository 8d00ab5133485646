package backend

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

var (
	ErrUnauthorized    = errors.New("backend rejected the session token")
	ErrNotAcknowledged = errors.New("backend did not acknowledge the mutation")
	ErrUnavailable     = errors.New("backend is unavailable")
	ErrNotFound        = errors.New("backend record not found")
)

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: backend returned %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

// clientError reports errors that say nothing about the health of the backend.
func clientError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500
}
