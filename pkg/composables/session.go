package composables

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/restaurant-admin/pkg/constants"
	"github.com/iota-uz/restaurant-admin/pkg/session"
)

var ErrNoSession = errors.New("no session in context")

// WithSession stores s and its backend token in ctx.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	ctx = context.WithValue(ctx, constants.SessionKey, s)
	return context.WithValue(ctx, constants.AuthTokenKey, s.AuthToken)
}

func UseSession(ctx context.Context) (*session.Session, error) {
	s, ok := ctx.Value(constants.SessionKey).(*session.Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// UseUserType returns the logged-in user type, or "" for anonymous requests.
func UseUserType(ctx context.Context) string {
	s, err := UseSession(ctx)
	if err != nil {
		return ""
	}
	return s.UserType
}
