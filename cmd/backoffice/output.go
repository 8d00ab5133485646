package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/services"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/report"
)

// printTable writes the report as aligned columns. Multi-line cells are
// joined with commas.
func printTable(w io.Writer, rep *report.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rep.Headers(), "\t"))
	for _, cells := range rep.Cells() {
		for i, c := range cells {
			cells[i] = strings.ReplaceAll(c, "\n", ", ")
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// writeExport stores file under output. An empty output keeps the generated
// name in the working directory, "-" writes to w, and a directory receives the
// generated name.
func writeExport(w io.Writer, file *services.ExportFile, output string) (string, error) {
	if output == "-" {
		_, err := w.Write(file.Body)
		return "", err
	}
	path := output
	if path == "" {
		path = file.Name
	} else if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, file.Name)
	}
	if err := os.WriteFile(path, file.Body, 0o644); err != nil {
		return "", withCode(exitUsage, errors.Wrap(err, "write export"))
	}
	return path, nil
}

// serviceError classifies a service failure into an exit code.
func serviceError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, authz.ErrForbidden), errors.Is(err, report.ErrUnknownFormat):
		return withCode(exitUsage, err)
	default:
		return withCode(exitBackend, err)
	}
}
