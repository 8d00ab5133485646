package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

type TableColumn struct {
	Key   string
	Label string
	Class string
}

type TableRow struct {
	ID    string
	Cells []templ.Component
}

type TableProps struct {
	ID      string
	Columns []TableColumn
	Rows    []TableRow
	// Empty is shown in a single full-width cell when there are no rows.
	Empty string
}

func Table(p TableProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := NewWriter(w)
		hw.Raw(`<div class="overflow-x-auto rounded-lg border border-gray-200"`)
		if p.ID != "" {
			hw.Attr("id", p.ID)
		}
		hw.Raw(`><table class="min-w-full divide-y divide-gray-200 text-sm"><thead class="bg-gray-50"><tr>`)
		for _, col := range p.Columns {
			hw.Raw("<th").
				Attr("class", ClassNames("px-4 py-2 text-left font-semibold text-gray-600", col.Class)).
				Attr("data-key", col.Key).
				Raw(">").Text(col.Label).Raw("</th>")
		}
		hw.Raw(`</tr></thead><tbody class="divide-y divide-gray-100">`)
		if len(p.Rows) == 0 {
			hw.Raw("<tr><td").
				Attr("colspan", strconv.Itoa(len(p.Columns))).
				Raw(` class="px-4 py-6 text-center text-gray-500" data-empty>`).
				Text(p.Empty).Raw("</td></tr>")
		}
		for _, row := range p.Rows {
			hw.Raw("<tr")
			if row.ID != "" {
				hw.Attr("data-id", row.ID)
			}
			hw.Raw(">")
			for _, cell := range row.Cells {
				hw.Raw(`<td class="px-4 py-2 align-top">`).Component(ctx, cell).Raw("</td>")
			}
			hw.Raw("</tr>")
		}
		hw.Raw("</tbody></table></div>")
		return hw.Err()
	})
}
