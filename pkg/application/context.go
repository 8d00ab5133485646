package application

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/restaurant-admin/pkg/constants"
)

var ErrAppNotFound = errors.New("application not found in context")

// UseApp returns the application the Provide middleware stored in ctx.
func UseApp(ctx context.Context) (Application, error) {
	app, ok := ctx.Value(constants.AppKey).(Application)
	if !ok {
		return nil, ErrAppNotFound
	}
	return app, nil
}
