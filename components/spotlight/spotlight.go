package spotlight

import (
	"context"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/iota-uz/restaurant-admin/components"
)

func LinkItem(label, link string, icon templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<li><a class="flex items-center gap-3 rounded-md px-3 py-2 text-sm hover:bg-gray-100"`).
			Attr("href", link).Raw(">")
		hw.Component(ctx, icon)
		hw.Raw("<span>").Text(label).Raw("</span></a></li>")
		return hw.Err()
	})
}

type SearchProps struct {
	Placeholder string
	// Endpoint answers GET ?q= with Results.
	Endpoint string
}

// Search is the header quick-jump box; results load into #spotlight-results.
func Search(p SearchProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<div class="relative w-72" id="spotlight">`)
		hw.Raw(`<label class="flex items-center gap-2 rounded-md border border-gray-300 px-2 py-1">`)
		hw.Component(ctx, icons.MagnifyingGlass(icons.Props{Size: "16"}))
		hw.Raw(`<input type="search" name="q" autocomplete="off" class="w-full border-0 text-sm focus:outline-none"`).
			Attr("placeholder", p.Placeholder).
			Attr("hx-get", p.Endpoint).
			Attr("hx-trigger", "input changed delay:250ms, search").
			Attr("hx-target", "#spotlight-results").
			Raw("/></label>")
		hw.Raw(`<ul id="spotlight-results" class="absolute z-40 mt-1 w-full rounded-md bg-white shadow"></ul></div>`)
		return hw.Err()
	})
}

// Results renders found items, or the empty message.
func Results(items []templ.Component, empty string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		if len(items) == 0 {
			hw.Raw(`<li class="px-3 py-2 text-sm text-gray-500">`).Text(empty).Raw("</li>")
			return hw.Err()
		}
		for _, item := range items {
			hw.Component(ctx, item)
		}
		return hw.Err()
	})
}
