package composables

import (
	"context"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
)

// UseAuthzViewState returns the capabilities evaluated for the session's user
// type, or nil outside the authenticated pages.
func UseAuthzViewState(ctx context.Context) *authz.ViewState {
	return authz.ViewStateFromContext(ctx)
}

func WithAuthzViewState(ctx context.Context, state *authz.ViewState) context.Context {
	return authz.WithViewState(ctx, state)
}

// CanPerform reports whether the current user type may run action on object.
// Nothing is allowed when no capabilities were evaluated for the request.
func CanPerform(ctx context.Context, object, action string) bool {
	return UseAuthzViewState(ctx).Can(object, authz.NormalizeAction(action))
}
