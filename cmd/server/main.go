package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/sirupsen/logrus"

	internalassets "github.com/iota-uz/restaurant-admin/internal/assets"
	"github.com/iota-uz/restaurant-admin/internal/server"
	"github.com/iota-uz/restaurant-admin/modules"
	"github.com/iota-uz/restaurant-admin/modules/restaurant"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/controllers"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/backend"
	"github.com/iota-uz/restaurant-admin/pkg/configuration"
	"github.com/iota-uz/restaurant-admin/pkg/eventbus"
	"github.com/iota-uz/restaurant-admin/pkg/logging"
	"github.com/iota-uz/restaurant-admin/pkg/metrics"
	"github.com/iota-uz/restaurant-admin/pkg/session"
)

const healthPath = "/health"

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	store, err := newSessionStore(conf.Session)
	if err != nil {
		log.Fatalf("failed to create session store: %v", err)
	}
	client := backend.NewClient(conf.Backend, backend.WithLogger(logger))

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Huber: application.NewHub(&application.HuberOptions{
			Logger:      logger,
			CheckOrigin: sameOrigin(conf),
		}),
	})
	moduleOpts := &restaurant.ModuleOptions{
		Client:          client,
		SessionStore:    store,
		Logger:          logger,
		CookieKey:       conf.Session.CookieKey,
		SessionDuration: conf.Session.Duration,
		SecureCookie:    conf.GoAppEnvironment == configuration.Production,
		CacheTTL:        conf.Backend.CacheTTL,
		DateLayout:      conf.Export.DateLayout,
		Currency:        conf.Export.Currency,
	}
	if err := modules.Load(app, modules.BuiltInModules(moduleOpts)...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	app.RegisterHashFsAssets(internalassets.HashFS)
	app.RegisterControllers(
		controllers.NewStaticFilesController(app.HashFsAssets(), conf.GoAppEnvironment == configuration.Production),
		metrics.NewHealthController(healthPath, map[string]metrics.Check{
			"backend": func(*http.Request) (string, bool) {
				state := client.BreakerState()
				return state, state != "open"
			},
		}),
	)
	opsPaths := []string{healthPath}
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
		opsPaths = append(opsPaths, conf.Prometheus.Path)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		SessionStore:  store,
		OpsPaths:      opsPaths,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.WithFields(logrus.Fields{"origin": conf.Origin, "backend": client.BaseURL()}).Info("listening")
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(ctx, conf.SocketAddress); err != nil && err != http.ErrServerClosed {
		log.Fatalf("failed to start server: %v", err)
	}
	conf.Unload()
}

func newSessionStore(opts configuration.SessionOptions) (session.Store, error) {
	if opts.Storage == "redis" {
		rdb, err := session.NewRedisClient(opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(rdb), nil
	}
	return session.NewMemoryStore(), nil
}

// sameOrigin accepts websocket upgrades only from the configured origin in
// production.
func sameOrigin(conf *configuration.Configuration) func(r *http.Request) bool {
	if conf.GoAppEnvironment != configuration.Production {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == conf.Origin
	}
}
