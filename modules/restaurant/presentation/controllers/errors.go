package controllers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/pages/error_pages"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/backend"
	"github.com/iota-uz/restaurant-admin/pkg/httpapi"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
	"github.com/iota-uz/restaurant-admin/pkg/middleware"
)

// errorMessage is the user-facing text for a failed backend interaction.
func errorMessage(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, order.ErrInvalidStatus):
		return intl.T(ctx, "Orders.Errors.InvalidStatus")
	case errors.Is(err, order.ErrNotFound), errors.Is(err, department.ErrNotFound), errors.Is(err, backend.ErrNotFound):
		return intl.T(ctx, "Errors.Backend.NotFound")
	case errors.Is(err, backend.ErrUnauthorized):
		return intl.T(ctx, "Errors.Backend.Unauthorized")
	case errors.Is(err, backend.ErrNotAcknowledged):
		return intl.T(ctx, "Errors.Backend.NotAcknowledged")
	case errors.Is(err, backend.ErrUnavailable):
		return intl.T(ctx, "Errors.Backend.Unavailable")
	default:
		return intl.T(ctx, "Errors.Backend.Generic")
	}
}

func handler404(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := error_pages.NotFound().Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func NotFound(app application.Application) http.HandlerFunc {
	page := middleware.ProvideLocalizer(app)(http.HandlerFunc(handler404))
	return func(w http.ResponseWriter, r *http.Request) {
		if httpapi.WantsJSON(r) {
			_ = httpapi.WriteError(w, r, http.StatusNotFound, httpapi.CodeNotFound, "not found",
				map[string]string{"path": r.URL.Path})
			return
		}
		page.ServeHTTP(w, r)
	}
}

func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if httpapi.WantsJSON(r) {
			_ = httpapi.WriteError(w, r, http.StatusMethodNotAllowed, httpapi.CodeMethodNotAllowed, "method not allowed",
				map[string]string{"method": r.Method, "path": r.URL.Path})
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// renderNotFound answers a missing record inside an authenticated page.
func renderNotFound(w http.ResponseWriter, r *http.Request) {
	templ.Handler(error_pages.NotFound(), templ.WithStatus(http.StatusNotFound)).ServeHTTP(w, r)
}
