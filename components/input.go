package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type InputProps struct {
	Label       string
	Name        string
	Value       string
	Placeholder string
	Error       string
	Required    bool
	// Multiline renders a textarea.
	Multiline bool
	Attrs     templ.Attributes
}

const inputClass = "block w-full rounded-md border border-gray-300 px-3 py-2 text-sm focus:border-brand-500 focus:outline-none"

// Input renders a labelled field with its validation message underneath.
func Input(p InputProps) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		id := "field-" + p.Name
		class := inputClass
		if p.Error != "" {
			class = ClassNames(inputClass, "border-red-500")
		}

		hw := NewWriter(w)
		hw.Raw(`<div class="flex flex-col gap-1">`)
		hw.Raw("<label").Attr("for", id).Raw(` class="text-sm font-medium text-gray-700">`).Text(p.Label)
		if p.Required {
			hw.Raw(`<span class="text-red-500"> *</span>`)
		}
		hw.Raw("</label>")

		if p.Multiline {
			hw.Raw("<textarea")
		} else {
			hw.Raw(`<input type="text"`).Attr("value", p.Value)
		}
		hw.Attr("id", id).Attr("name", p.Name).Attr("class", class)
		if p.Placeholder != "" {
			hw.Attr("placeholder", p.Placeholder)
		}
		if p.Required {
			hw.Raw(" required")
		}
		hw.Attrs(p.Attrs)
		if p.Multiline {
			hw.Raw(` rows="4">`).Text(p.Value).Raw("</textarea>")
		} else {
			hw.Raw("/>")
		}

		if p.Error != "" {
			hw.Raw(`<p class="text-xs text-red-600" data-error`).Attr("data-field", p.Name).Raw(">").Text(p.Error).Raw("</p>")
		}
		hw.Raw("</div>")
		return hw.Err()
	})
}
