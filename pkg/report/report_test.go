package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport(rows int) *Report {
	cols := TabularColumns([]Column{
		{Field: "orderId", Header: "Order ID"},
		{Field: "customer", Header: "Customer", Width: 1.5},
		{Field: "items", Header: "Items", Width: 2},
		{Field: "status", Header: "Status"},
		{Field: "imageUrls", Header: "Images"},
		{Field: "action", Header: "Actions"},
		{Field: "thumb", Header: "Thumb", NonTabular: true},
	})
	r := &Report{
		Title:       "Orders Report",
		Columns:     cols,
		GeneratedAt: time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
	}
	for i := 0; i < rows; i++ {
		r.Rows = append(r.Rows, Row{
			"orderId":   fmt.Sprintf("A%d", i),
			"customer":  "Jo N/A",
			"items":     []string{"Soup (2)", "Tea (1)"},
			"status":    "Pending",
			"imageUrls": []string{"http://img"},
		})
	}
	return r
}

func TestTabularColumns_DropsGridOnlyColumns(t *testing.T) {
	cols := sampleReport(0).Columns
	fields := make([]string, 0, len(cols))
	for _, c := range cols {
		fields = append(fields, c.Field)
	}
	require.Equal(t, []string{"orderId", "customer", "items", "status"}, fields)
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", CellText(nil))
	assert.Equal(t, "a\nb", CellText([]string{"a", "b"}))
	assert.Equal(t, "12.5", CellText(12.5))
	assert.Equal(t, "true", CellText(true))
}

func TestRendererFor(t *testing.T) {
	for format, ext := range map[string]string{"pdf": "pdf", "XLSX": "xlsx", "excel": "xlsx", "csv": "csv"} {
		r, err := RendererFor(format)
		require.NoError(t, err)
		require.Equal(t, ext, r.Extension())
	}
	_, err := RendererFor("docx")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestFilename(t *testing.T) {
	r := sampleReport(0)
	require.Equal(t, "orders-report-20260102-1504.pdf", r.Filename("pdf"))
}

func TestCSVRenderer(t *testing.T) {
	r := sampleReport(3)
	var buf bytes.Buffer
	require.NoError(t, CSVRenderer{}.Render(&buf, r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	require.Equal(t, []string{"Order ID", "Customer", "Items", "Status"}, records[0])
	require.Equal(t, "Soup (2)\nTea (1)", records[1][2])
	for _, rec := range records {
		require.NotContains(t, rec, "http://img")
	}
}

func TestXLSXRenderer(t *testing.T) {
	r := sampleReport(5)
	var buf bytes.Buffer
	require.NoError(t, XLSXRenderer{}.Render(&buf, r))
	require.True(t, isZipContainer(buf.Bytes()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Orders Report")
	require.NoError(t, err)
	require.Len(t, rows, 6, "header plus one row per record")
	require.Equal(t, []string{"Order ID", "Customer", "Items", "Status"}, rows[0])
	require.Equal(t, "A4", rows[5][0])

	props, err := f.GetDocProps()
	require.NoError(t, err)
	require.Equal(t, "Orders Report", props.Title)
}

func TestPDFRenderer(t *testing.T) {
	// enough rows to force several page breaks
	r := sampleReport(120)
	var buf bytes.Buffer
	require.NoError(t, PDFRenderer{}.Render(&buf, r))
	require.True(t, mimetype.Detect(buf.Bytes()).Is("application/pdf"))
	require.Greater(t, buf.Len(), 2048)
}

func TestPDFRenderer_RowTallerThanPage(t *testing.T) {
	r := sampleReport(1)
	items := make([]string, 90)
	for i := range items {
		items[i] = fmt.Sprintf("Борщ %d", i)
	}
	r.Rows[0]["items"] = items
	r.Rows[0]["customer"] = "Zoë 😀"

	pdf, err := layoutPDF(r)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pdf.PageCount(), 3, "90 item lines cannot fit on one page")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	require.True(t, mimetype.Detect(buf.Bytes()).Is("application/pdf"))
}

func TestPDFText(t *testing.T) {
	assert.Equal(t, "Zoë ?", pdfText("Zoë 😀"))
}

func TestPDFRenderer_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDFRenderer{}.Render(&buf, &Report{Title: "Empty"}))
	require.True(t, mimetype.Detect(buf.Bytes()).Is("application/pdf"))
}

func TestSheetName(t *testing.T) {
	require.Equal(t, "Report", sheetName(" "))
	require.Equal(t, "ab", sheetName("a/b"))
	require.Len(t, []rune(sheetName("a very long report title that exceeds the limit")), 31)
}

// isZipContainer reports whether b is a zip archive or one of its OOXML descendants.
func isZipContainer(b []byte) bool {
	for m := mimetype.Detect(b); m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}
