package session

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/iota-uz/restaurant-admin/components"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/templates/layouts"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/presentation/viewmodels"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
)

func selectField(ctx context.Context, hw *components.Writer, name, label, selected, keyPrefix string, options []string) {
	hw.Raw(`<label class="flex flex-col gap-1 text-sm"><span class="font-medium">`).Text(label).Raw("</span>")
	hw.Raw(`<select class="rounded-md border border-gray-300 px-3 py-2"`).Attr("name", name).Raw(">")
	for _, opt := range options {
		hw.Raw("<option").Attr("value", opt)
		if opt == selected {
			hw.Raw(" selected")
		}
		hw.Raw(">").Text(intl.T(ctx, keyPrefix+opt)).Raw("</option>")
	}
	hw.Raw("</select></label>")
}

func form(props *viewmodels.SessionPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<main class="mx-auto mt-16 w-full max-w-md rounded-lg border border-gray-200 bg-white p-6">`)
		hw.Raw(`<h1 class="mb-4 text-xl font-semibold">`).Text(intl.T(ctx, "Session.Title")).Raw("</h1>")
		if props.LoggedInAs != "" {
			hw.Raw(`<p class="mb-4 text-sm text-gray-600" data-current>`).
				Text(intl.T(ctx, "Session.Current", map[string]interface{}{"UserType": intl.T(ctx, "UserTypes."+props.LoggedInAs)})).
				Raw("</p>")
		}
		hw.Raw(`<form method="post" action="/session" class="flex flex-col gap-4">`)
		hw.Raw(`<input type="hidden" name="Next"`).Attr("value", props.Next).Raw("/>")
		hw.Component(ctx, components.Input(components.InputProps{
			Label:    intl.T(ctx, "Session.Token"),
			Name:     "Token",
			Value:    props.Token,
			Error:    props.Errors["Token"],
			Required: true,
		}))
		selectField(ctx, hw, "UserType", intl.T(ctx, "Session.UserType"), props.UserType, "UserTypes.", props.UserTypes)
		if msg := props.Errors["UserType"]; msg != "" {
			hw.Raw(`<p class="text-xs text-red-600" data-error="UserType">`).Text(msg).Raw("</p>")
		}
		selectField(ctx, hw, "Language", intl.T(ctx, "Session.Language"), props.Language, "Languages.", props.Languages)
		hw.Component(ctx, components.Button(components.ButtonProps{
			Label:   intl.T(ctx, "Session.Save"),
			Variant: components.ButtonPrimary,
			Type:    "submit",
		}))
		hw.Raw("</form></main>")
		return hw.Err()
	})
}

// Index is the page that stores the backend token and user type of the browser.
func Index(props *viewmodels.SessionPageProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		base := layouts.Base(&layouts.BaseProps{Title: intl.T(ctx, "Session.Title")})
		return base.Render(templ.WithChildren(ctx, form(props)), w)
	})
}
