package restaurant

import (
	"embed"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/handlers"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/infrastructure/api"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/controllers"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/backend"
	"github.com/iota-uz/restaurant-admin/pkg/session"
	"github.com/iota-uz/restaurant-admin/pkg/spotlight"
)

//go:embed presentation/locales/*.json presentation/locales/*.toml
var LocaleFiles embed.FS

type ModuleOptions struct {
	Client       *backend.Client
	SessionStore session.Store
	Logger       *logrus.Logger

	CookieKey       string
	SessionDuration time.Duration
	SecureCookie    bool

	// CacheTTL bounds how long a fetched collection is reused; 0 keeps it
	// until the next mutation.
	CacheTTL   time.Duration
	DateLayout string
	Currency   string
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{opts: opts}
}

type Module struct {
	opts *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	if err := app.RegisterLocaleFiles(&LocaleFiles); err != nil {
		return err
	}
	app.RegisterServices(
		services.NewOrderService(
			api.NewOrderRepository(m.opts.Client, m.opts.Currency),
			app.EventPublisher(),
			m.opts.CacheTTL,
			m.opts.DateLayout,
		),
		services.NewDepartmentService(
			api.NewDepartmentRepository(m.opts.Client),
			app.EventPublisher(),
			m.opts.CacheTTL,
			m.opts.DateLayout,
		),
	)

	controllerOpts := &controllers.ControllerOptions{DateLayout: m.opts.DateLayout}
	app.RegisterControllers(
		controllers.NewSessionController(app, controllers.SessionControllerOptions{
			Store:     m.opts.SessionStore,
			CookieKey: m.opts.CookieKey,
			Duration:  m.opts.SessionDuration,
			Secure:    m.opts.SecureCookie,
		}),
		controllers.NewOrdersController(app, controllerOpts),
		controllers.NewDepartmentsController(app, controllerOpts),
		controllers.NewSpotlightController(app),
		controllers.NewWebSocketController(app),
	)
	handlers.RegisterRefreshHandlers(app, m.opts.Logger)

	app.RegisterNavItems(NavItems...)
	app.QuickLinks().Add(
		spotlight.NewQuickLink(OrdersLink.Icon, OrdersLink.Name, OrdersLink.Href).
			RequireAuthz(authz.OrdersObject, authz.ActionView),
		spotlight.NewQuickLink(DepartmentsLink.Icon, DepartmentsLink.Name, DepartmentsLink.Href).
			RequireAuthz(authz.DepartmentsObject, authz.ActionView),
		spotlight.NewQuickLink(nil, "Departments.New", "/departments/new").
			RequireAuthz(authz.DepartmentsObject, authz.ActionCreate),
	)
	return nil
}

func (m *Module) Name() string {
	return "restaurant"
}
