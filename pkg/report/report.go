// Package report turns flat rows into downloadable tabular documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// Fields that never make it into an exported document.
const (
	ActionField = "action"
	ImageField  = "imageUrls"
)

var ErrUnknownFormat = errors.New("unknown report format")

type Column struct {
	Field  string
	Header string
	// Width is a relative weight. Zero means 1.
	Width float64
	// NonTabular marks grid-only columns such as images and row actions.
	NonTabular bool
}

func (c Column) weight() float64 {
	if c.Width <= 0 {
		return 1
	}
	return c.Width
}

// TabularColumns returns the columns that can be exported.
func TabularColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.NonTabular || c.Field == ActionField || c.Field == ImageField {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Row maps a column field to a string, a []string or a verbatim scalar.
type Row map[string]any

// CellText renders a row value as display text. Lists are joined one entry per line.
func CellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, "\n")
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

type Report struct {
	Title       string
	Columns     []Column
	Rows        []Row
	GeneratedAt time.Time
}

// Cells returns the display text of every row in column order.
func (r *Report) Cells() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		line := make([]string, len(r.Columns))
		for i, c := range r.Columns {
			line[i] = CellText(row[c.Field])
		}
		out = append(out, line)
	}
	return out
}

func (r *Report) Headers() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = c.Header
		if out[i] == "" {
			out[i] = c.Field
		}
	}
	return out
}

// Filename returns a download name such as "orders-report-20260102-1504.pdf".
func (r *Report) Filename(ext string) string {
	base := strings.ToLower(strings.Join(strings.Fields(r.Title), "-"))
	if base == "" {
		base = "report"
	}
	ts := r.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return fmt.Sprintf("%s-%s.%s", base, ts.Format("20060102-1504"), ext)
}

type Renderer interface {
	Render(w io.Writer, r *Report) error
	ContentType() string
	Extension() string
}

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatPDF, "":
		return PDFRenderer{}, nil
	case FormatXLSX, "excel":
		return XLSXRenderer{}, nil
	case FormatCSV:
		return CSVRenderer{}, nil
	default:
		return nil, errors.Wrap(ErrUnknownFormat, format)
	}
}
