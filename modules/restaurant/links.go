package restaurant

import (
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/types"
)

var OrdersLink = types.NavigationItem{
	Name:        "NavigationLinks.Orders",
	Icon:        icons.List(icons.Props{Size: "20"}),
	Href:        "/orders",
	AuthzObject: authz.OrdersObject,
	AuthzAction: authz.ActionView,
}

var DepartmentsLink = types.NavigationItem{
	Name:        "NavigationLinks.Departments",
	Icon:        icons.Buildings(icons.Props{Size: "20"}),
	Href:        "/departments",
	AuthzObject: authz.DepartmentsObject,
	AuthzAction: authz.ActionView,
}

var NavItems = []types.NavigationItem{
	OrdersLink,
	DepartmentsLink,
}
