package layouts

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	authzcomponents "github.com/iota-uz/restaurant-admin/components/authorization"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	htmxheaders "github.com/iota-uz/restaurant-admin/pkg/htmx"
	"github.com/iota-uz/restaurant-admin/pkg/httpapi"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
)

// WriteAuthzForbiddenResponse answers a denied request as JSON, an htmx
// fragment or a full page depending on what the client asked for.
func WriteAuthzForbiddenResponse(w http.ResponseWriter, r *http.Request, object, action string) {
	state := authz.ViewStateFromContext(r.Context())
	subject := authz.SubjectForUserType(composables.UseUserType(r.Context()))
	if state != nil && state.Subject != "" {
		subject = state.Subject
	}

	if httpapi.WantsJSON(r) {
		if err := httpapi.WriteError(w, r, http.StatusForbidden, httpapi.CodeForbidden, "permission denied", map[string]string{
			"object":  object,
			"action":  authz.NormalizeAction(action),
			"subject": subject,
		}); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Warn("failed to encode forbidden response")
		}
		return
	}

	props := &authzcomponents.UnauthorizedProps{
		State:     state,
		Object:    object,
		Action:    action,
		Subject:   subject,
		RequestID: httpapi.RequestID(w, r),
		Title:     intl.T(r.Context(), "Authz.Unauthorized.Title"),
		Message:   intl.T(r.Context(), "Authz.Unauthorized.Message"),
	}

	isHTMX := htmxheaders.IsHxRequest(r)
	if isHTMX {
		htmxheaders.Retarget(w, "main", "innerHTML")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	if isHTMX {
		templ.Handler(authzcomponents.Unauthorized(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	templ.Handler(unauthorizedPage(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func unauthorizedPage(props *authzcomponents.UnauthorizedProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<div class="flex justify-center">`); err != nil {
				return err
			}
			if err := authzcomponents.Unauthorized(props).Render(ctx, w); err != nil {
				return err
			}
			_, err := io.WriteString(w, `</div>`)
			return err
		})
		if _, ok := composables.TryUsePageCtx(ctx); ok {
			layout := Authenticated(AuthenticatedProps{BaseProps: BaseProps{Title: props.Title}})
			return layout.Render(templ.WithChildren(ctx, content), w)
		}
		return Base(&BaseProps{Title: props.Title}).Render(templ.WithChildren(ctx, content), w)
	})
}
