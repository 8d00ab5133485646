package services

import (
	"bytes"
	"time"

	"github.com/go-faster/errors"

	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/department"
	"github.com/iota-uz/restaurant-admin/modules/restaurant/domain/aggregates/order"
	"github.com/iota-uz/restaurant-admin/pkg/report"
)

const (
	OrdersReportTitle      = "Orders Report"
	DepartmentsReportTitle = "Departments Report"
)

// OrderColumns are the columns of the orders grid, in display order.
var OrderColumns = []report.Column{
	{Field: "orderId", Header: "Order ID", Width: 150},
	{Field: "user", Header: "Customer", Width: 150},
	{Field: "items", Header: "Items", Width: 300},
	{Field: "totalPrice", Header: "Total Price", Width: 150},
	{Field: "deliveryAddress", Header: "Delivery Address", Width: 150},
	{Field: "status", Header: "Order Status", Width: 200},
	{Field: "createdAt", Header: "Created At", Width: 200},
	{Field: report.ActionField, Header: "Action", Width: 150, NonTabular: true},
}

var DepartmentColumns = []report.Column{
	{Field: "name", Header: "Name", Width: 200},
	{Field: "description", Header: "Description", Width: 400},
	{Field: "createdAt", Header: "Created At", Width: 200},
	{Field: report.ActionField, Header: "Action", Width: 150, NonTabular: true},
}

// ExportFile is a rendered report ready to be downloaded.
type ExportFile struct {
	Name        string
	ContentType string
	Body        []byte
}

func formatDate(t time.Time, raw any, layout string) any {
	if t.IsZero() {
		return raw
	}
	return t.Format(layout)
}

// OrderReport flattens orders into one row per order over the exportable columns.
func OrderReport(orders []order.Order, cols []report.Column, layout string) *report.Report {
	cols = report.TabularColumns(cols)
	rows := make([]report.Row, 0, len(orders))
	for _, o := range orders {
		row := make(report.Row, len(cols))
		for _, c := range cols {
			switch c.Field {
			case "user":
				row[c.Field] = o.Customer().FullName()
			case "items":
				labels := make([]string, 0, len(o.Items()))
				for _, item := range o.Items() {
					labels = append(labels, item.Label())
				}
				row[c.Field] = labels
			case "createdAt":
				row[c.Field] = formatDate(o.CreatedAt(), o.Field(c.Field), layout)
			case "orderId":
				row[c.Field] = o.Number()
			default:
				row[c.Field] = o.Field(c.Field)
			}
		}
		rows = append(rows, row)
	}
	return &report.Report{Title: OrdersReportTitle, Columns: cols, Rows: rows, GeneratedAt: time.Now()}
}

func DepartmentReport(departments []department.Department, cols []report.Column, layout string) *report.Report {
	cols = report.TabularColumns(cols)
	rows := make([]report.Row, 0, len(departments))
	for _, d := range departments {
		row := make(report.Row, len(cols))
		for _, c := range cols {
			switch c.Field {
			case "name":
				row[c.Field] = d.Name()
			case "description":
				row[c.Field] = d.Description()
			case "createdAt":
				row[c.Field] = formatDate(d.CreatedAt(), d.Field(c.Field), layout)
			default:
				row[c.Field] = d.Field(c.Field)
			}
		}
		rows = append(rows, row)
	}
	return &report.Report{Title: DepartmentsReportTitle, Columns: cols, Rows: rows, GeneratedAt: time.Now()}
}

func render(rep *report.Report, format string) (*ExportFile, error) {
	renderer, err := report.RendererFor(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, rep); err != nil {
		return nil, errors.Wrapf(err, "render %s", renderer.Extension())
	}
	return &ExportFile{
		Name:        rep.Filename(renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
