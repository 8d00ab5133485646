package controllers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/controllers/dtos"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/mappers"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/layouts"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/pages/departments"
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

type DepartmentsController struct {
	app               application.Application
	departmentService *services.DepartmentService
	dateLayout        string
	basePath          string
}

func NewDepartmentsController(app application.Application, opts *ControllerOptions) application.Controller {
	return &DepartmentsController{
		app:               app,
		departmentService: application.ServiceOf[services.DepartmentService](app),
		dateLayout:        opts.dateLayout(),
		basePath:          departments.BasePath,
	}
}

func (c *DepartmentsController) Key() string {
	return c.basePath
}

func (c *DepartmentsController) Register(r *mux.Router) {
	getRouter := r.PathPrefix(c.basePath).Subrouter()
	getRouter.Use(pageMiddleware(c.app)...)
	getRouter.HandleFunc("", c.List).Methods(http.MethodGet)
	getRouter.HandleFunc("/new", c.GetNew).Methods(http.MethodGet)
	getRouter.HandleFunc("/export", c.Export).Methods(http.MethodGet)
	getRouter.HandleFunc("/{id}", c.GetEdit).Methods(http.MethodGet)

	setRouter := r.PathPrefix(c.basePath).Subrouter()
	setRouter.Use(pageMiddleware(c.app)...)
	setRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	setRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPost)
	setRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *DepartmentsController) pageProps(r *http.Request, query string) *viewmodels.DepartmentsPageProps {
	ctx := r.Context()
	props := &viewmodels.DepartmentsPageProps{
		Query:     query,
		CanCreate: can(r, authz.DepartmentsObject, authz.ActionCreate),
		CanUpdate: can(r, authz.DepartmentsObject, authz.ActionUpdate),
		CanDelete: can(r, authz.DepartmentsObject, authz.ActionDelete),
		CanExport: can(r, authz.DepartmentsObject, authz.ActionExport),
	}
	list, err := c.departmentService.List(ctx, query)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to fetch departments")
		props.Error = errorMessage(ctx, err)
		return props
	}
	props.Departments = mapping.MapViewModels(list, func(d department.Department) *viewmodels.Department {
		return mappers.DepartmentToViewModel(d, c.dateLayout)
	})
	return props
}

func (c *DepartmentsController) List(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.DepartmentsObject, authz.ActionView) {
		return
	}
	props := c.pageProps(r, strings.TrimSpace(composables.GetLastQueryParam(r, "q")))
	if htmx.Target(r) == departments.TableID {
		templ.Handler(departments.Table(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	templ.Handler(departments.Index(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *DepartmentsController) GetNew(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.DepartmentsObject, authz.ActionCreate) {
		return
	}
	props := &viewmodels.DepartmentFormProps{
		Errors: map[string]string{},
		PostTo: c.basePath,
	}
	templ.Handler(departments.New(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *DepartmentsController) GetEdit(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.DepartmentsObject, authz.ActionUpdate) {
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entity, err := c.departmentService.GetByID(r.Context(), id)
	if errors.Is(err, department.ErrNotFound) {
		renderNotFound(w, r)
		return
	}
	props := &viewmodels.DepartmentFormProps{
		ID:     id,
		Errors: map[string]string{},
		PostTo: departments.EditURL(id),
	}
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).WithField("department", id).Error("failed to fetch department")
		props.Error = errorMessage(r.Context(), err)
	} else {
		props.Form = viewmodels.DepartmentForm{Name: entity.Name(), Description: entity.Description()}
	}
	templ.Handler(departments.Edit(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *DepartmentsController) Create(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.DepartmentsObject, authz.ActionCreate) {
		return
	}
	dto, err := composables.UseForm(&department.CreateDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	errorsMap, ok := dto.Ok(r.Context())
	props := &viewmodels.DepartmentFormProps{
		Form:   viewmodels.DepartmentForm{Name: dto.Name, Description: dto.Description},
		PostTo: c.basePath,
	}
	if !ok {
		props.Errors = errorsMap
		templ.Handler(departments.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	if err := c.departmentService.Create(r.Context(), dto); err != nil {
		c.formFailed(w, r, props, authz.ActionCreate, err)
		return
	}
	shared.Redirect(w, r, c.basePath)
}

func (c *DepartmentsController) Update(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.DepartmentsObject, authz.ActionUpdate) {
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dto, err := composables.UseForm(&department.UpdateDTO{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	errorsMap, ok := dto.Ok(r.Context())
	props := &viewmodels.DepartmentFormProps{
		ID:     id,
		Form:   viewmodels.DepartmentForm{Name: dto.Name, Description: dto.Description},
		PostTo: departments.EditURL(id),
	}
	if !ok {
		props.Errors = errorsMap
		templ.Handler(departments.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
		return
	}
	if err := c.departmentService.Update(r.Context(), id, dto); err != nil {
		c.formFailed(w, r, props, authz.ActionUpdate, err)
		return
	}
	shared.Redirect(w, r, c.basePath)
}

// formFailed re-renders the form with the backend error above the fields.
func (c *DepartmentsController) formFailed(
	w http.ResponseWriter,
	r *http.Request,
	props *viewmodels.DepartmentFormProps,
	action string,
	err error,
) {
	if errors.Is(err, authz.ErrForbidden) {
		layouts.WriteAuthzForbiddenResponse(w, r, authz.DepartmentsObject, action)
		return
	}
	composables.UseLogger(r.Context()).WithError(err).WithField("department", props.ID).Error("department save failed")
	props.Errors = map[string]string{}
	props.Error = errorMessage(r.Context(), err)
	templ.Handler(departments.Form(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *DepartmentsController) Delete(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.DepartmentsObject, authz.ActionDelete) {
		return
	}
	id, err := shared.ParseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	if err := c.departmentService.Delete(ctx, id); err != nil {
		if errors.Is(err, authz.ErrForbidden) {
			layouts.WriteAuthzForbiddenResponse(w, r, authz.DepartmentsObject, authz.ActionDelete)
			return
		}
		composables.UseLogger(ctx).WithError(err).WithField("department", id).Error("department delete failed")
		htmx.ToastError(w, intl.T(ctx, "Departments.Toasts.FailedTitle"), errorMessage(ctx, err))
	} else {
		htmx.ToastSuccess(w, intl.T(ctx, "Departments.Toasts.Deleted"), "")
	}
	props := c.pageProps(r, strings.TrimSpace(r.FormValue("q")))
	templ.Handler(departments.Table(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *DepartmentsController) Export(w http.ResponseWriter, r *http.Request) {
	if !ensureAuthz(w, r, authz.DepartmentsObject, authz.ActionExport) {
		return
	}
	query, err := composables.UseQuery(&dtos.ExportQuery{}, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, err := c.departmentService.Export(r.Context(), query.Q, query.FormatOr(report.FormatXLSX))
	if err != nil {
		writeExportError(w, r, err)
		return
	}
	writeExportFile(w, file)
}
