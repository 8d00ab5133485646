package server

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/controllers"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/configuration"
	"github.com/iota-uz/restaurant-admin/pkg/constants"
	"github.com/iota-uz/restaurant-admin/pkg/metrics"
	"github.com/iota-uz/restaurant-admin/pkg/middleware"
	"github.com/iota-uz/restaurant-admin/pkg/server"
	"github.com/iota-uz/restaurant-admin/pkg/session"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	SessionStore  session.Store
	// OpsPaths are hidden by the ops guard in production.
	OpsPaths []string
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	conf := options.Configuration

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger, middleware.DefaultLoggerOptions()),
		middleware.Provide(constants.AppKey, app),

		middleware.TracedMiddleware("session"),
		middleware.WithSession(options.SessionStore, conf.Session.CookieKey),

		middleware.TracedMiddleware("cors"),
		middleware.Cors(conf.CorsOriginList()...),
	}
	if len(options.OpsPaths) > 0 {
		middlewares = append(middlewares, middleware.OpsGuard(middleware.NewOpsGuardConfig(conf, options.OpsPaths...)))
	}

	if conf.RateLimit.Enabled {
		var store limiter.Store
		var err error

		switch conf.RateLimit.Storage {
		case "redis":
			store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
			if err != nil {
				options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
				store = middleware.NewMemoryStore()
			}
		default:
			store = middleware.NewMemoryStore()
		}

		middlewares = append(middlewares,
			middleware.TracedMiddleware("rateLimit"),
			middleware.RateLimit(middleware.RateLimitConfig{
				RequestsPerPeriod: conf.RateLimit.GlobalRPS,
				Store:             store,
			}),
		)
	}

	if conf.Prometheus.Enabled {
		middlewares = append(middlewares, metrics.Instrument())
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("requestParams"),
		middleware.RequestParams(),
	)

	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		controllers.NotFound(app),
		controllers.MethodNotAllowed(),
	)
	return serverInstance, nil
}
