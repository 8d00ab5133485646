package controllers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/layouts"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/middleware"
)

const sessionPath = "/session"

// pageMiddleware is the stack shared by every page behind the session form.
func pageMiddleware(app application.Application) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		middleware.RequireSession(sessionPath),
		middleware.ProvideLocalizer(app),
		middleware.ProvideAuthzState(authz.Use(), authz.OrdersObject, authz.DepartmentsObject),
		middleware.NavItems(),
		middleware.WithPageContext(),
	}
}

// ensureAuthz checks the capability evaluated for this request and writes the
// forbidden response when it is missing.
func ensureAuthz(w http.ResponseWriter, r *http.Request, object, action string) bool {
	if composables.CanPerform(r.Context(), object, action) {
		return true
	}
	fields := logrus.Fields{
		"object": object,
		"action": action,
		"user":   composables.UseUserType(r.Context()),
	}
	if ip, ok := composables.UseIP(r.Context()); ok {
		fields["ip"] = ip
	}
	composables.UseLogger(r.Context()).WithFields(fields).Warn("request denied")
	layouts.WriteAuthzForbiddenResponse(w, r, object, action)
	return false
}

func can(r *http.Request, object, action string) bool {
	return composables.CanPerform(r.Context(), object, action)
}
