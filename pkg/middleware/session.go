package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/htmx"
	"github.com/iota-uz/restaurant-admin/pkg/httpapi"
	"github.com/iota-uz/restaurant-admin/pkg/session"
)

// WithSession loads the session named by the cookie into the request context.
// Unknown or expired sessions clear the cookie and continue anonymously.
func WithSession(store session.Store, cookieName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			logger := composables.UseLogger(r.Context())

			s, err := store.Get(r.Context(), cookie.Value)
			switch {
			case errors.Is(err, session.ErrNotFound):
				http.SetCookie(w, session.ExpiredCookie(cookieName))
				next.ServeHTTP(w, r)
				return
			case err != nil:
				logger.WithError(err).Error("failed to load session")
				next.ServeHTTP(w, r)
				return
			}
			if s.Expired(time.Now()) {
				if err := store.Delete(r.Context(), s.ID); err != nil {
					logger.WithError(err).Warn("failed to delete expired session")
				}
				http.SetCookie(w, session.ExpiredCookie(cookieName))
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithSession(r.Context(), s)))
		})
	}
}

// RequireSession sends requests without a backend token to loginPath.
func RequireSession(loginPath string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := composables.UseSession(r.Context())
			if err == nil && s.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}
			switch {
			case httpapi.WantsJSON(r):
				_ = httpapi.WriteError(w, r, http.StatusUnauthorized, httpapi.CodeUnauthenticated, "session required", nil)
			case htmx.IsHxRequest(r):
				htmx.Redirect(w, loginPath)
				w.WriteHeader(http.StatusUnauthorized)
			default:
				http.Redirect(w, r, loginPath+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			}
		})
	}
}
