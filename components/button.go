package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonDanger    ButtonVariant = "danger"
	ButtonGhost     ButtonVariant = "ghost"
)

var buttonVariantClasses = map[ButtonVariant]string{
	ButtonPrimary:   "bg-brand-600 text-white hover:bg-brand-700",
	ButtonSecondary: "bg-white text-gray-800 border border-gray-300 hover:bg-gray-50",
	ButtonDanger:    "bg-red-600 text-white hover:bg-red-700",
	ButtonGhost:     "bg-transparent text-gray-700 hover:bg-gray-100",
}

const buttonBase = "inline-flex items-center gap-2 rounded-md px-3 py-2 text-sm font-medium disabled:opacity-50"

type ButtonProps struct {
	Label   string
	Variant ButtonVariant
	// Href renders an anchor instead of a button.
	Href  string
	Type  string
	Icon  templ.Component
	Class string
	Attrs templ.Attributes
}

func Button(p ButtonProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		variant := p.Variant
		if variant == "" {
			variant = ButtonPrimary
		}
		class := ClassNames(buttonBase, buttonVariantClasses[variant], p.Class)

		hw := NewWriter(w)
		if p.Href != "" {
			hw.Raw("<a").Attr("href", p.Href)
		} else {
			typ := p.Type
			if typ == "" {
				typ = "button"
			}
			hw.Raw("<button").Attr("type", typ)
		}
		hw.Attr("class", class).Attrs(p.Attrs).Raw(">")
		hw.Component(ctx, p.Icon)
		hw.Raw("<span>").Text(p.Label).Raw("</span>")
		if p.Href != "" {
			hw.Raw("</a>")
		} else {
			hw.Raw("</button>")
		}
		return hw.Err()
	})
}
