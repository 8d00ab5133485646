package modules

import (
	"github.com/iota-uz/restaurant-admin/modules/restaurant"
	"github.com/iota-uz/restaurant-admin/pkg/application"
)

// BuiltInModules returns the modules every binary serving the panel loads.
func BuiltInModules(opts *restaurant.ModuleOptions) []application.Module {
	return []application.Module{
		restaurant.NewModule(opts),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
