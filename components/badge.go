package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type BadgeColor string

const (
	BadgeOrange BadgeColor = "orange"
	BadgeGreen  BadgeColor = "green"
	BadgeBrown  BadgeColor = "brown"
	BadgeRed    BadgeColor = "red"
	BadgeGray   BadgeColor = "gray"
)

var badgeClasses = map[BadgeColor]string{
	BadgeOrange: "bg-orange-100 text-orange-700",
	BadgeGreen:  "bg-green-100 text-green-700",
	BadgeBrown:  "bg-amber-900/10 text-amber-900",
	BadgeRed:    "bg-red-100 text-red-700",
	BadgeGray:   "bg-gray-100 text-gray-700",
}

// Badge renders a pill; data-color keeps the semantic colour visible to tests and scripts.
func Badge(label string, color BadgeColor) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class, ok := badgeClasses[color]
		if !ok {
			color = BadgeGray
			class = badgeClasses[BadgeGray]
		}
		return NewWriter(w).
			Raw("<span").
			Attr("class", ClassNames("inline-flex rounded-full px-2 py-0.5 text-xs font-semibold", class)).
			Attr("data-color", string(color)).
			Raw(">").Text(label).Raw("</span>").
			Err()
	})
}
