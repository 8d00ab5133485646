package dtos

import "strings"

// ExportQuery is the query string behind the export links: the active search
// and the file format.
type ExportQuery struct {
	Q      string `form:"q"`
	Format string `form:"format"`
}

// FormatOr returns the requested format, or fallback when none was asked for.
func (q *ExportQuery) FormatOr(fallback string) string {
	if f := strings.ToLower(q.Format); f != "" {
		return f
	}
	return fallback
}
