package services

import (
	"context"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
)

var authorizeRestaurantFn = defaultAuthorizeRestaurant

func authorizeRestaurant(ctx context.Context, object, action string) error {
	return authorizeRestaurantFn(ctx, object, action)
}

func defaultAuthorizeRestaurant(ctx context.Context, object, action string) error {
	req := authz.NewRequest(
		authz.SubjectForUserType(composables.UseUserType(ctx)),
		object,
		action,
	)
	return authz.Use().Authorize(ctx, req)
}

func userType(ctx context.Context) string {
	return composables.UseUserType(ctx)
}
