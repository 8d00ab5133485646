package report

import (
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxDefaultSheet = "Sheet1"
	xlsxBaseWidth    = 18.0
)

type XLSXRenderer struct{}

func (XLSXRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXRenderer) Extension() string { return FormatXLSX }

func (XLSXRenderer) Render(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(r.Title)
	if err := f.SetSheetName(xlsxDefaultSheet, sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   r.Title,
		Creator: "restaurant-admin",
		Created: r.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}); err != nil {
		return errors.Wrap(err, "set doc props")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return errors.Wrap(err, "body style")
	}

	for i, h := range r.Headers() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, xlsxBaseWidth*r.Columns[i].weight()); err != nil {
			return err
		}
	}

	cells := r.Cells()
	for ri, line := range cells {
		for ci, text := range line {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return err
			}
		}
	}

	if len(r.Columns) == 0 {
		return errors.Wrap(f.Write(w), "write workbook")
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(r.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}
	lastCell, err := excelize.CoordinatesToCellName(len(r.Columns), len(cells)+1)
	if err != nil {
		return err
	}
	if len(cells) > 0 {
		if err := f.SetCellStyle(sheet, "A2", lastCell, bodyStyle); err != nil {
			return err
		}
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCell, nil); err != nil {
		return errors.Wrap(err, "auto filter")
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.Wrap(err, "freeze header")
	}

	return errors.Wrap(f.Write(w), "write workbook")
}

// sheetName strips the characters Excel rejects and keeps the 31 character limit.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "Report"
	}
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	return name
}
