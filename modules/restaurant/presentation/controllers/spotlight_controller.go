package controllers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	icons "github.com/iota-uz/icons/phosphor"

	spotlightui "github.com/iota-uz/restaurant-admin/components/spotlight"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
	"github.com/iota-uz/restaurant-admin/pkg/middleware"
	"github.com/iota-uz/restaurant-admin/pkg/spotlight"
)

type SpotlightController struct {
	app      application.Application
	basePath string
}

func NewSpotlightController(app application.Application) application.Controller {
	app.Spotlight().Register(&departmentSource{
		svc:   application.ServiceOf[services.DepartmentService](app),
		limit: spotlightDepartmentLimit,
	})
	return &SpotlightController{app: app, basePath: "/spotlight"}
}

const spotlightDepartmentLimit = 5

// departmentSource offers departments by name next to the quick links.
type departmentSource struct {
	svc   *services.DepartmentService
	limit int
}

func (s *departmentSource) Find(ctx context.Context, q string) []spotlight.Item {
	if q == "" || !composables.CanPerform(ctx, authz.DepartmentsObject, authz.ActionView) {
		return nil
	}
	deps, err := s.svc.List(ctx, "")
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("spotlight department lookup failed")
		return nil
	}
	labels := make([]string, len(deps))
	for i, d := range deps {
		labels[i] = d.Name()
	}
	icon := icons.Buildings(icons.Props{Size: "16"})
	found := spotlight.Rank(q, labels, func(i int) spotlight.Item {
		return spotlight.Link{Label: deps[i].Name(), Href: "/departments/" + url.PathEscape(deps[i].ID()), Icon: icon}
	})
	if len(found) > s.limit {
		found = found[:s.limit]
	}
	return found
}

func (c *SpotlightController) Key() string {
	return c.basePath
}

func (c *SpotlightController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(
		middleware.RequireSession(sessionPath),
		middleware.ProvideLocalizer(c.app),
		middleware.ProvideAuthzState(authz.Use(), authz.OrdersObject, authz.DepartmentsObject),
	)
	router.HandleFunc("/search", c.Search).Methods(http.MethodGet)
}

func (c *SpotlightController) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	found := c.app.Spotlight().Find(r.Context(), q)
	items := make([]templ.Component, 0, len(found))
	for _, item := range found {
		items = append(items, item)
	}
	empty := intl.T(r.Context(), "Spotlight.NoResults")
	templ.Handler(spotlightui.Results(items, empty), templ.WithStreaming()).ServeHTTP(w, r)
}
