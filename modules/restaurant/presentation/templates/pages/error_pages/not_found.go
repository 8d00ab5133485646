package error_pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/restaurant-admin/components"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/layouts"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
)

func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			hw := components.NewWriter(w)
			hw.Raw(`<main class="mx-auto mt-24 max-w-md text-center" data-not-found>`)
			hw.Raw(`<h1 class="text-4xl font-bold">404</h1><p class="mt-2 text-gray-600">`).
				Text(intl.T(ctx, "Errors.NotFound.Message")).Raw("</p>")
			hw.Raw(`<p class="mt-6">`).Component(ctx, components.Button(components.ButtonProps{
				Label:   intl.T(ctx, "Errors.NotFound.Back"),
				Variant: components.ButtonSecondary,
				Href:    "/",
			})).Raw("</p></main>")
			return hw.Err()
		})
		base := layouts.Base(&layouts.BaseProps{Title: intl.T(ctx, "Errors.NotFound.Title")})
		return base.Render(templ.WithChildren(ctx, content), w)
	})
}
