package report

import (
	"encoding/csv"
	"io"

	"github.com/go-faster/errors"
)

type CSVRenderer struct{}

func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVRenderer) Extension() string { return FormatCSV }

func (CSVRenderer) Render(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Headers()); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, line := range r.Cells() {
		if err := cw.Write(line); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	cw.Flush()
	return cw.Error()
}
