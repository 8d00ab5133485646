package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
	"github.com/iota-uz/restaurant-admin/pkg/types"
)

// WithPageContext exposes the request URL, locale, user type and evaluated
// capabilities to templates. ProvideLocalizer has to run before it.
func WithPageContext() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			localizer, hasLocalizer := intl.UseLocalizer(ctx)
			locale, hasLocale := intl.UseLocale(ctx)
			if !hasLocalizer || !hasLocale {
				composables.UseLogger(ctx).Error("page context built without a localizer")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			pageCtx := types.NewPageContext(locale, r.URL, localizer,
				composables.UseUserType(ctx), composables.UseAuthzViewState(ctx))
			next.ServeHTTP(w, r.WithContext(composables.WithPageCtx(ctx, pageCtx)))
		})
	}
}
