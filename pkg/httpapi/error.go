// Package httpapi holds the JSON error envelope shared by every handler that
// answers API clients instead of browsers.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

const RequestIDHeader = "X-Request-Id"

// Error codes carried in ErrorEnvelope.Code.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeForbidden        = "AUTHZ_FORBIDDEN"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// WantsJSON reports whether the caller expects a JSON body rather than a page.
func WantsJSON(r *http.Request) bool {
	if strings.Contains(strings.ToLower(r.Header.Get("Accept")), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}

// RequestID prefers the id the logging middleware already put on the
// response over the one the client sent.
func RequestID(w http.ResponseWriter, r *http.Request) string {
	if w != nil {
		if id := strings.TrimSpace(w.Header().Get(RequestIDHeader)); id != "" {
			return id
		}
	}
	return strings.TrimSpace(r.Header.Get(RequestIDHeader))
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

// WriteError writes the envelope and tags it with the request id when one is known.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string, meta map[string]string) error {
	if r != nil {
		if id := RequestID(w, r); id != "" {
			if meta == nil {
				meta = map[string]string{}
			}
			meta["request_id"] = id
		}
	}
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}
