package application

import (
	"embed"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
	"github.com/iota-uz/restaurant-admin/pkg/spotlight"
	"github.com/iota-uz/restaurant-admin/pkg/types"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

// Application is the registry the restaurant module plugs its controllers,
// services, navigation and translations into.
type Application interface {
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	HashFsAssets() []*hashfs.FS
	Websocket() Huber
	Spotlight() spotlight.Spotlight
	QuickLinks() *spotlight.QuickLinks
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string

	RegisterNavItems(items ...types.NavigationItem)
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterHashFsAssets(fs ...*hashfs.FS)
	RegisterLocaleFiles(fs ...*embed.FS) error
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
}

type Module interface {
	Name() string
	Register(app Application) error
}
