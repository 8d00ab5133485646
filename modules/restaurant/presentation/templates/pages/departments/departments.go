package departments

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/restaurant-admin/components"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/layouts"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/viewmodels"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
)

const (
	TableID  = "departments-table"
	FormID   = "department-form"
	BasePath = "/departments"
)

func listURL(q string) string {
	if q == "" {
		return BasePath
	}
	return BasePath + "?" + url.Values{"q": {q}}.Encode()
}

func EditURL(id string) string {
	return BasePath + "/" + url.PathEscape(id)
}

func rowActions(d *viewmodels.Department, props *viewmodels.DepartmentsPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div class="flex gap-1" data-actions>`)
		if props.CanUpdate {
			hw.Component(ctx, components.Button(components.ButtonProps{
				Label:   intl.T(ctx, "Departments.Actions.Edit"),
				Variant: components.ButtonSecondary,
				Href:    EditURL(d.ID),
				Class:   "px-2 py-1 text-xs",
			}))
		}
		if props.CanDelete {
			hw.Component(ctx, components.Button(components.ButtonProps{
				Label:   intl.T(ctx, "Departments.Actions.Delete"),
				Variant: components.ButtonDanger,
				Type:    "button",
				Class:   "px-2 py-1 text-xs",
				Attrs: templ.Attributes{
					"hx-delete":  EditURL(d.ID),
					"hx-confirm": intl.T(ctx, "Departments.Prompts.Delete"),
					"hx-target":  "#" + TableID,
					"hx-swap":    "outerHTML",
					"hx-include": "#departments-search",
				},
			}))
		}
		hw.Raw("</div>")
		return hw.Err()
	})
}

func Table(props *viewmodels.DepartmentsPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		withActions := props.CanUpdate || props.CanDelete
		cols := []components.TableColumn{
			{Key: "name", Label: intl.T(ctx, "Departments.Columns.Name")},
			{Key: "description", Label: intl.T(ctx, "Departments.Columns.Description")},
			{Key: "createdAt", Label: intl.T(ctx, "Departments.Columns.CreatedAt")},
		}
		if withActions {
			cols = append(cols, components.TableColumn{Key: "action", Label: intl.T(ctx, "Departments.Columns.Action")})
		}
		rows := make([]components.TableRow, 0, len(props.Departments))
		for _, d := range props.Departments {
			cells := []templ.Component{
				components.Text(d.Name),
				components.Text(d.Description),
				components.Text(d.CreatedAt),
			}
			if withActions {
				cells = append(cells, rowActions(d, props))
			}
			rows = append(rows, components.TableRow{ID: d.ID, Cells: cells})
		}

		hw := components.NewWriter(w)
		hw.Raw("<div").
			Attr("id", TableID).
			Attr("data-refresh-on", "departments.changed").
			Attr("hx-get", listURL(props.Query)).
			Attr("hx-trigger", "refresh").
			Attr("hx-swap", "outerHTML").
			Raw(">")
		hw.Component(ctx, components.ErrorBanner(intl.T(ctx, "Departments.Errors.FetchTitle"), props.Error))
		hw.Component(ctx, components.Table(components.TableProps{Columns: cols, Rows: rows, Empty: intl.T(ctx, "Departments.Empty")}))
		hw.Raw("</div>")
		return hw.Err()
	})
}

func listContent(props *viewmodels.DepartmentsPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="flex flex-col gap-4"><div class="flex items-center justify-between">`)
		hw.Raw(`<h1 class="flex items-center gap-2 text-2xl font-semibold">`).
			Component(ctx, icons.Buildings(icons.Props{Size: "24"})).
			Text(intl.T(ctx, "Departments.Meta.Title")).Raw("</h1>")
		hw.Raw(`<div class="flex gap-2">`)
		if props.CanExport {
			v := url.Values{"format": {"xlsx"}}
			if props.Query != "" {
				v.Set("q", props.Query)
			}
			hw.Component(ctx, components.Button(components.ButtonProps{
				Label:   intl.T(ctx, "Departments.Export"),
				Variant: components.ButtonSecondary,
				Href:    BasePath + "/export?" + v.Encode(),
				Attrs:   templ.Attributes{"download": true},
			}))
		}
		if props.CanCreate {
			hw.Component(ctx, components.Button(components.ButtonProps{
				Label:   intl.T(ctx, "Departments.New"),
				Variant: components.ButtonPrimary,
				Href:    BasePath + "/new",
				Icon:    icons.PlusCircle(icons.Props{Size: "16"}),
			}))
		}
		hw.Raw("</div></div>")
		hw.Raw(`<input id="departments-search" type="search" name="q" class="w-80 rounded-md border border-gray-300 px-3 py-2 text-sm"`).
			Attr("value", props.Query).
			Attr("placeholder", intl.T(ctx, "Departments.Search.Placeholder")).
			Attr("hx-get", BasePath).
			Attr("hx-trigger", "input changed, search").
			Attr("hx-target", "#"+TableID).
			Attr("hx-swap", "outerHTML").
			Raw("/>")
		hw.Component(ctx, Table(props))
		hw.Raw("</section>")
		return hw.Err()
	})
}

func page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout := layouts.Authenticated(layouts.AuthenticatedProps{
			BaseProps: layouts.BaseProps{Title: title, WebsocketURL: "/ws"},
		})
		return layout.Render(templ.WithChildren(ctx, content), w)
	})
}

func Index(props *viewmodels.DepartmentsPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(intl.T(ctx, "Departments.Meta.Title"), listContent(props)).Render(ctx, w)
	})
}

// Form is the editor fragment; invalid submissions re-render only this part.
func Form(props *viewmodels.DepartmentFormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<form class="flex max-w-xl flex-col gap-4" method="post"`).
			Attr("id", FormID).
			Attr("action", props.PostTo).
			Attr("hx-post", props.PostTo).
			Attr("hx-target", "#"+FormID).
			Attr("hx-swap", "outerHTML").
			Raw(">")
		hw.Component(ctx, components.ErrorBanner(intl.T(ctx, "Departments.Errors.SaveTitle"), props.Error))
		hw.Component(ctx, components.Input(components.InputProps{
			Label:    intl.T(ctx, "Departments.Form.Name"),
			Name:     "Name",
			Value:    props.Form.Name,
			Error:    props.Errors["Name"],
			Required: true,
		}))
		hw.Component(ctx, components.Input(components.InputProps{
			Label:     intl.T(ctx, "Departments.Form.Description"),
			Name:      "Description",
			Value:     props.Form.Description,
			Error:     props.Errors["Description"],
			Required:  true,
			Multiline: true,
		}))
		hw.Raw(`<div class="flex gap-2">`)
		hw.Component(ctx, components.Button(components.ButtonProps{
			Label:   intl.T(ctx, "Departments.Form.Save"),
			Variant: components.ButtonPrimary,
			Type:    "submit",
		}))
		hw.Component(ctx, components.Button(components.ButtonProps{
			Label:   intl.T(ctx, "Departments.Form.Back"),
			Variant: components.ButtonGhost,
			Href:    BasePath,
		}))
		hw.Raw("</div></form>")
		return hw.Err()
	})
}

func formContent(titleKey string, props *viewmodels.DepartmentFormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="flex flex-col gap-4"><h1 class="text-2xl font-semibold">`).
			Text(intl.T(ctx, titleKey)).Raw("</h1>")
		hw.Component(ctx, Form(props))
		hw.Raw("</section>")
		return hw.Err()
	})
}

func New(props *viewmodels.DepartmentFormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(intl.T(ctx, "Departments.New"), formContent("Departments.New", props)).Render(ctx, w)
	})
}

func Edit(props *viewmodels.DepartmentFormProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page(intl.T(ctx, "Departments.EditTitle"), formContent("Departments.EditTitle", props)).Render(ctx, w)
	})
}
