package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/restaurant-admin/components"
	spotlightui "github.com/iota-uz/restaurant-admin/components/spotlight"
	"github.com/iota-uz/restaurant-admin/internal/assets"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/constants"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
	"github.com/iota-uz/restaurant-admin/pkg/types"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

type BaseProps struct {
	Title string
	// WebsocketURL enables live refresh when set.
	WebsocketURL string
}

func UseNavItems(ctx context.Context) []types.NavigationItem {
	items, _ := ctx.Value(constants.NavItemsKey).([]types.NavigationItem)
	return items
}

// Base is the HTML document shell. Children render inside <body>.
func Base(p *BaseProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		children := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		lang := "en"
		if tag, ok := intl.UseLocale(ctx); ok {
			lang = tag.String()
		}
		hw := components.NewWriter(w)
		hw.Raw("<!DOCTYPE html><html").Attr("lang", lang).Raw("><head>")
		hw.Raw(`<meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		hw.Raw("<title>").Text(p.Title).Raw("</title>")
		hw.Raw(`<link rel="stylesheet"`).Attr("href", assets.Path("static/css/app.css")).Raw("/>")
		hw.Raw("<script").Attr("src", htmxScript).Raw("></script>")
		hw.Raw("<script defer").Attr("src", assets.Path("static/js/app.js")).Raw("></script>")
		hw.Raw(`</head><body class="min-h-screen bg-gray-50 text-gray-900"`)
		if p.WebsocketURL != "" {
			hw.Attr("data-ws-url", p.WebsocketURL)
		}
		hw.Raw(">")
		hw.Component(ctx, children)
		hw.Component(ctx, components.ToastContainer())
		hw.Raw("</body></html>")
		return hw.Err()
	})
}

type AuthenticatedProps struct {
	BaseProps
}

func navLink(ctx context.Context, hw *components.Writer, item types.NavigationItem, active bool) {
	class := "flex items-center gap-2 rounded-md px-3 py-2 text-sm text-gray-700 hover:bg-gray-100"
	if active {
		class = components.ClassNames(class, "bg-brand-50 text-brand-700 font-semibold")
	}
	hw.Raw("<li><a").Attr("href", item.Href).Attr("class", class).Raw(">")
	hw.Component(ctx, item.Icon)
	hw.Raw("<span>").Text(item.Name).Raw("</span></a></li>")
}

// Authenticated wraps page content with the navigation sidebar and header.
func Authenticated(p AuthenticatedProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.GetChildren(ctx)
		ctx = templ.ClearChildren(ctx)

		isActive := func(string) bool { return false }
		userType := ""
		if pageCtx, ok := composables.TryUsePageCtx(ctx); ok {
			isActive = pageCtx.IsActive
			userType = pageCtx.UserType()
		}

		shell := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			hw := components.NewWriter(w)
			hw.Raw(`<div class="flex min-h-screen"><aside class="w-60 shrink-0 border-r border-gray-200 bg-white p-4">`)
			hw.Raw(`<div class="mb-6 flex items-center gap-2 text-lg font-semibold">`).
				Component(ctx, icons.Gauge(icons.Props{Size: "24"})).
				Text(intl.T(ctx, "Layout.Brand")).Raw("</div>")
			hw.Raw(`<nav><ul class="flex flex-col gap-1">`)
			for _, item := range UseNavItems(ctx) {
				navLink(ctx, hw, item, isActive(item.Href))
			}
			hw.Raw(`</ul></nav></aside><div class="flex flex-1 flex-col">`)
			hw.Raw(`<header class="flex items-center justify-between border-b border-gray-200 bg-white px-6 py-3">`)
			hw.Component(ctx, spotlightui.Search(spotlightui.SearchProps{
				Placeholder: intl.T(ctx, "Spotlight.Placeholder"),
				Endpoint:    "/spotlight/search",
			}))
			hw.Raw(`<div class="flex items-center gap-3 text-sm">`)
			if userType != "" {
				hw.Raw(`<span class="flex items-center gap-1" data-user-type>`).
					Component(ctx, icons.UserCircle(icons.Props{Size: "16"})).
					Text(intl.T(ctx, "UserTypes."+userType)).Raw("</span>")
			}
			hw.Raw(`<form method="post" action="/session/logout">`).
				Component(ctx, components.Button(components.ButtonProps{
					Label:   intl.T(ctx, "Session.Logout"),
					Variant: components.ButtonGhost,
					Type:    "submit",
				})).
				Raw("</form></div></header>")
			hw.Raw(`<main class="flex-1 p-6">`).Component(ctx, content).Raw("</main></div></div>")
			return hw.Err()
		})

		base := p.BaseProps
		return Base(&base).Render(templ.WithChildren(ctx, shell), w)
	})
}
