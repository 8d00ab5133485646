package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
)

// ProvideAuthzState evaluates the capabilities of the session's user type on
// objects once per request, for templates and navigation.
func ProvideAuthzState(svc *authz.Service, objects ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject := authz.SubjectForUserType(composables.UseUserType(r.Context()))
			state := svc.BuildViewState(r.Context(), subject, objects...)
			next.ServeHTTP(w, r.WithContext(composables.WithAuthzViewState(r.Context(), state)))
		})
	}
}
