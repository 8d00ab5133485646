package controllers

import (
	"context"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/controllers/dtos"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/mappers"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/layouts"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/pages/orders"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/viewmodels"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/application"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/htmx"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
	"github.com/iota-uz/restaurant-admin/pkg/mapping"
	"github.com/iota-uz/restaurant-admin/pkg/report"
	"github.com/iota-uz/restaurant-admin/pkg/shared"
)

type ControllerOptions struct {
	// DateLayout formats createdAt in grids.
	DateLayout string
}

func (o *ControllerOptions) dateLayout() string {
	if o == nil || o.DateLayout == "" {
		return "2006-01-02 15:04"
	}
	return o.DateLayout
}

type OrdersController struct {
	app          application.Application
	orderService *services.OrderService
	dateLayout   string
	basePath     string
}

func NewOrdersController(app application.Application, opts *ControllerOptions) application.Controller {
	return &OrdersController{
		app:          app,
		orderService: application.ServiceOf[services.OrderService](app),
		dateLayout:   opts.dateLayout(),
		basePath:     "/orders",
	}
}

func (c *OrdersController) Key() string {
	return c.basePath
}

func (c *OrdersController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(pageMiddleware(c.app)...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	router.HandleFunc("/{id}/confirm", c.Confirm).Methods(http.MethodPost)
	router.HandleFunc("/{id}/cancel", c.Cancel).Methods(http.MethodPost)
	router.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *OrdersController) pageProps(r *http.Request, query string) *viewmodels.OrdersPageProps {
	ctx := r.Context()
	props := &viewmodels.OrdersPageProps{
		Query:     query,
		CanUpdate: can(r, authz.OrdersObject, authz.ActionUpdate),
		CanDelete: can(r, authz.OrdersObject, authz.ActionDelete),
		CanExport: can(r, authz.OrdersObject, authz.ActionExport),
	}
	list, err := c.orderService.List(ctx, query)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to fetch orders")
		props.Error = errorMessage(ctx, err)
		return props
	}
	props.Orders = mapping.MapViewModels(list, func(o order.Order) *viewmodels.Order {
		return mappers.OrderToViewModel(o, c.dateLayout)
	})
	return props
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.OrdersObject, authz.ActionView) {
		return
	}
	props := c.pageProps(r, strings.TrimSpace(composables.GetLastQueryParam(r, "q")))
	if htmx.Target(r) == orders.TableID {
		templ.Handler(orders.Table(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	templ.Handler(orders.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *OrdersController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, authz.ActionUpdate, c.orderService.Confirm, "Orders.Toasts.Confirmed")
}

func (c *OrdersController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, authz.ActionUpdate, c.orderService.Cancel, "Orders.Toasts.Cancelled")
}

func (c *OrdersController) Delete(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, authz.ActionDelete, c.orderService.Delete, "Orders.Toasts.Deleted")
}

// mutate runs one row action and answers with a toast plus the refreshed table.
func (c *OrdersController) mutate(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, id string) error,
	successKey string,
) {
	if !ensureAuthz(w, r, authz.OrdersObject, action) {
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if err := fn(ctx, id); err != nil {
		if errors.Is(err, authz.ErrForbidden) {
			layouts.WriteAuthzForbiddenResponse(w, r, authz.OrdersObject, action)
			return
		}
		composables.UseLogger(ctx).WithError(err).WithFields(logrus.Fields{
			"order":  id,
			"action": successKey,
		}).Error("order action failed")
		htmx.ToastError(w, intl.T(ctx, "Orders.Toasts.FailedTitle"), errorMessage(ctx, err))
	} else {
		htmx.ToastSuccess(w, intl.T(ctx, successKey), "")
	}
	props := c.pageProps(r, strings.TrimSpace(r.FormValue("q")))
	templ.Handler(orders.Table(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *OrdersController) Export(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.OrdersObject, authz.ActionExport) {
		return
	}
	query, err := composables.UseQuery(&dtos.ExportQuery{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, err := c.orderService.Export(r.Context(), query.Q, query.FormatOr(report.FormatPDF))
	if err != nil {
		writeExportError(w, r, err)
		return
	}
	writeExportFile(w, file)
}

func writeExportError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, report.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, authz.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	default:
		composables.UseLogger(ctx).WithError(err).Error("export failed")
		http.Error(w, errorMessage(ctx, err), http.StatusBadGateway)
	}
}

func writeExportFile(w http.ResponseWriter, file *services.ExportFile) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}
