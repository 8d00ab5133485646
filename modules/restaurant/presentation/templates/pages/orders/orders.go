package orders

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
	TableID  = "orders-table"
	basePath = "/orders"
)

func tableURL(q string) string {
	if q == "" {
		return basePath
	}
	return basePath + "?" + url.Values{"q": {q}}.Encode()
}

// ExportURL builds the download link for the current filter.
func ExportURL(format, q string) string {
	v := url.Values{"format": {format}}
	if q != "" {
		v.Set("q", q)
	}
	return basePath + "/export?" + v.Encode()
}

func columns(ctx context.Context, withActions bool) []components.TableColumn {
	cols := []components.TableColumn{
		{Key: "orderId", Label: intl.T(ctx, "Orders.Columns.OrderID")},
		{Key: "user", Label: intl.T(ctx, "Orders.Columns.Customer")},
		{Key: "items", Label: intl.T(ctx, "Orders.Columns.Items")},
		{Key: "totalPrice", Label: intl.T(ctx, "Orders.Columns.TotalPrice")},
		{Key: "deliveryAddress", Label: intl.T(ctx, "Orders.Columns.DeliveryAddress")},
		{Key: "status", Label: intl.T(ctx, "Orders.Columns.Status")},
		{Key: "createdAt", Label: intl.T(ctx, "Orders.Columns.CreatedAt")},
	}
	if withActions {
		cols = append(cols, components.TableColumn{Key: "action", Label: intl.T(ctx, "Orders.Columns.Action")})
	}
	return cols
}

// statusLabel translates known statuses; anything else is shown verbatim.
func statusLabel(ctx context.Context, status string) string {
	key := "Orders.Statuses." + status
	if label := intl.T(ctx, key); label != key {
		return label
	}
	return status
}

// rowAction posts to the order endpoint and swaps the refreshed table in.
func rowAction(label, method, endpoint, confirm string, variant components.ButtonVariant) templ.Component {
	return components.Button(components.ButtonProps{
		Label:   label,
		Variant: variant,
		Type:    "button",
		Class:   "px-2 py-1 text-xs",
		Attrs: templ.Attributes{
			"hx-" + method: endpoint,
			"hx-confirm":   confirm,
			"hx-target":    "#" + TableID,
			"hx-swap":      "outerHTML",
			"hx-include":   "#orders-search",
		},
	})
}

func actions(o *viewmodels.Order, props *viewmodels.OrdersPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div class="flex gap-1" data-actions>`)
		endpoint := basePath + "/" + url.PathEscape(o.ID)
		if props.CanUpdate && o.CanConfirm {
			hw.Component(ctx, rowAction(intl.T(ctx, "Orders.Actions.Confirm"), "post", endpoint+"/confirm",
				intl.T(ctx, "Orders.Prompts.Confirm"), components.ButtonPrimary))
		}
		if props.CanUpdate && o.CanCancel {
			hw.Component(ctx, rowAction(intl.T(ctx, "Orders.Actions.Cancel"), "post", endpoint+"/cancel",
				intl.T(ctx, "Orders.Prompts.Cancel"), components.ButtonSecondary))
		}
		if props.CanDelete {
			hw.Component(ctx, rowAction(intl.T(ctx, "Orders.Actions.Delete"), "delete", endpoint,
				intl.T(ctx, "Orders.Prompts.Delete"), components.ButtonDanger))
		}
		hw.Raw("</div>")
		return hw.Err()
	})
}

// Table is the grid fragment swapped by search, row actions and live refresh.
func Table(props *viewmodels.OrdersPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		withActions := props.CanUpdate || props.CanDelete
		rows := make([]components.TableRow, 0, len(props.Orders))
		for _, o := range props.Orders {
			cells := []templ.Component{
				components.Text(o.Number),
				components.Text(o.Customer),
				components.Lines(o.Items),
				components.Text(o.TotalPrice),
				components.Text(o.DeliveryAddress),
				components.Badge(statusLabel(ctx, o.Status), components.BadgeColor(o.StatusColor)),
				components.Text(o.CreatedAt),
			}
			if withActions {
				cells = append(cells, actions(o, props))
			}
			rows = append(rows, components.TableRow{ID: o.ID, Cells: cells})
		}

		hw := components.NewWriter(w)
		hw.Raw("<div").
			Attr("id", TableID).
			Attr("data-refresh-on", "orders.changed").
			Attr("hx-get", tableURL(props.Query)).
			Attr("hx-trigger", "refresh").
			Attr("hx-swap", "outerHTML").
			Raw(">")
		hw.Component(ctx, components.ErrorBanner(intl.T(ctx, "Orders.Errors.FetchTitle"), props.Error))
		hw.Component(ctx, components.Table(components.TableProps{
			Columns: columns(ctx, withActions),
			Rows:    rows,
			Empty:   intl.T(ctx, "Orders.Empty"),
		}))
		hw.Raw("</div>")
		return hw.Err()
	})
}

func exportButtons(q string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div class="flex gap-2" data-export>`)
		for _, f := range []struct{ format, key string }{
			{"pdf", "Orders.Export.PDF"},
			{"xlsx", "Orders.Export.Excel"},
			{"csv", "Orders.Export.CSV"},
		} {
			hw.Component(ctx, components.Button(components.ButtonProps{
				Label:   intl.T(ctx, f.key),
				Variant: components.ButtonSecondary,
				Href:    ExportURL(f.format, q),
				Attrs:   templ.Attributes{"hx-boost": "false", "download": true},
			}))
		}
		hw.Raw("</div>")
		return hw.Err()
	})
}

func content(props *viewmodels.OrdersPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="flex flex-col gap-4">`)
		hw.Raw(`<div class="flex items-center justify-between"><h1 class="flex items-center gap-2 text-2xl font-semibold">`).
			Component(ctx, icons.List(icons.Props{Size: "24"})).
			Text(intl.T(ctx, "Orders.Meta.Title")).Raw("</h1>")
		if props.CanExport {
			hw.Component(ctx, exportButtons(props.Query))
		}
		hw.Raw("</div>")
		hw.Raw(`<input id="orders-search" type="search" name="q" class="w-80 rounded-md border border-gray-300 px-3 py-2 text-sm"`).
			Attr("value", props.Query).
			Attr("placeholder", intl.T(ctx, "Orders.Search.Placeholder")).
			Attr("hx-get", basePath).
			Attr("hx-trigger", "input changed, search").
			Attr("hx-target", "#"+TableID).
			Attr("hx-swap", "outerHTML").
			Attr("hx-push-url", "true").
			Raw("/>")
		hw.Component(ctx, Table(props))
		hw.Raw("</section>")
		return hw.Err()
	})
}

func Index(props *viewmodels.OrdersPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		layout := layouts.Authenticated(layouts.AuthenticatedProps{
			BaseProps: layouts.BaseProps{Title: intl.T(ctx, "Orders.Meta.Title"), WebsocketURL: "/ws"},
		})
		return layout.Render(templ.WithChildren(ctx, content(props)), w)
	})
}
