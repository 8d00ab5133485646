package metrics

import (
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/httpapi"
)

// Check reports the status of one dependency; ok=false marks the service degraded.
type Check func(r *http.Request) (status string, ok bool)

type HealthController struct {
	path    string
	started time.Time
	checks  map[string]Check
}

func NewHealthController(path string, checks map[string]Check) application.Controller {
	if path == "" {
		path = "/health"
	}
	return &HealthController{path: path, started: time.Now(), checks: checks}
}

func (c *HealthController) Key() string {
	return c.path
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc(c.path, c.Get).Methods(http.MethodGet)
}

type healthResponse struct {
	Status     string            `json:"status"`
	Uptime     string            `json:"uptime"`
	Components map[string]string `json:"components,omitempty"`
}

func (c *HealthController) Get(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:     "ok",
		Uptime:     time.Since(c.started).Truncate(time.Second).String(),
		Components: make(map[string]string, len(c.checks)),
	}
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		status, ok := c.checks[name](r)
		resp.Components[name] = status
		if !ok {
			resp.Status = "degraded"
		}
	}
	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	_ = httpapi.WriteJSON(w, code, resp)
}
