package report

import (
	_ "embed"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 10.0
	pdfLineHeight = 5.0
	pdfPadding    = 1.0
	pdfFont       = "DejaVu"
)

// DejaVu covers Latin, Greek and Cyrillic. Scripts outside it, CJK included,
// come out as empty glyphs.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// PDFRenderer lays the report out as a landscape A4 table. The header row is
// repeated on every page and long cells wrap onto several lines. A row taller
// than a page continues on the next one.
type PDFRenderer struct{}

func (PDFRenderer) ContentType() string { return "application/pdf" }

func (PDFRenderer) Extension() string { return FormatPDF }

func (PDFRenderer) Render(w io.Writer, r *Report) error {
	pdf, err := layoutPDF(r)
	if err != nil {
		return err
	}
	return errors.Wrap(pdf.Output(w), "write pdf")
}

func layoutPDF(r *Report) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator("restaurant-admin", true)

	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(r.Columns, pageW-2*pdfMargin)
	bottom := pageH - pdfMargin

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, pdfText(r.Title), "", 1, "L", false, 0, "")
	if !r.GeneratedAt.IsZero() {
		pdf.SetFont(pdfFont, "", 8)
		pdf.CellFormat(0, 5, r.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	if len(r.Columns) > 0 {
		var pageTop float64
		drawHeader := func() {
			pdf.SetFont(pdfFont, "B", 9)
			pdf.SetFillColor(231, 230, 230)
			drawLines(pdf, widths, wrapCells(pdf, widths, r.Headers()), true)
			pdf.SetFont(pdfFont, "", 9)
			pageTop = pdf.GetY()
		}
		newPage := func() {
			pdf.AddPage()
			drawHeader()
		}
		drawHeader()

		for _, row := range r.Cells() {
			pdf.SetFont(pdfFont, "", 9)
			lines := wrapCells(pdf, widths, row)
			for {
				room := int((bottom - pdf.GetY() - 2*pdfPadding) / pdfLineHeight)
				need := lineCount(lines)
				if need > room && pdf.GetY() > pageTop {
					newPage()
					continue
				}
				n := min(need, max(room, 1))
				drawLines(pdf, widths, takeLines(lines, n), false)
				lines = dropLines(lines, n)
				if lineCount(lines) == 0 {
					break
				}
				newPage()
			}
		}
	}

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "layout pdf")
	}
	return pdf, nil
}

func columnWidths(cols []Column, total float64) []float64 {
	sum := 0.0
	for _, c := range cols {
		sum += c.weight()
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = total * c.weight() / sum
	}
	return out
}

// pdfText replaces runes the font tables cannot index.
func pdfText(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return '?'
		}
		return r
	}, s)
}

func cellLines(pdf *fpdf.Fpdf, width float64, text string) []string {
	var lines []string
	for _, part := range strings.Split(pdfText(text), "\n") {
		split := pdf.SplitText(part, width-2*pdfPadding)
		if len(split) == 0 {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, split...)
	}
	return lines
}

func wrapCells(pdf *fpdf.Fpdf, widths []float64, cells []string) [][]string {
	out := make([][]string, len(cells))
	for i, text := range cells {
		out[i] = cellLines(pdf, widths[i], text)
	}
	return out
}

func lineCount(cells [][]string) int {
	n := 0
	for _, lines := range cells {
		n = max(n, len(lines))
	}
	return n
}

func takeLines(cells [][]string, n int) [][]string {
	out := make([][]string, len(cells))
	for i, lines := range cells {
		out[i] = lines[:min(n, len(lines))]
	}
	return out
}

func dropLines(cells [][]string, n int) [][]string {
	out := make([][]string, len(cells))
	for i, lines := range cells {
		out[i] = lines[min(n, len(lines)):]
	}
	return out
}

func drawLines(pdf *fpdf.Fpdf, widths []float64, cells [][]string, fill bool) {
	h := float64(max(lineCount(cells), 1))*pdfLineHeight + 2*pdfPadding
	x, y := pdf.GetX(), pdf.GetY()
	style := "D"
	if fill {
		style = "FD"
	}
	for i, lines := range cells {
		pdf.Rect(x, y, widths[i], h, style)
		for li, line := range lines {
			pdf.SetXY(x+pdfPadding, y+pdfPadding+float64(li)*pdfLineHeight)
			pdf.CellFormat(widths[i]-2*pdfPadding, pdfLineHeight, line, "", 0, "L", false, 0, "")
		}
		x += widths[i]
	}
	pdf.SetXY(pdfMargin, y+h)
}
