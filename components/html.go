// Package components holds the shared HTML building blocks of the back-office.
package components

import (
	"context"
	"io"
	"sort"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// Writer accumulates the first write error so components can emit markup
// without checking every call.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (hw *Writer) Raw(parts ...string) *Writer {
	for _, p := range parts {
		if hw.err != nil {
			return hw
		}
		_, hw.err = io.WriteString(hw.w, p)
	}
	return hw
}

// Text writes escaped text content.
func (hw *Writer) Text(s string) *Writer {
	return hw.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (hw *Writer) Attr(name, value string) *Writer {
	return hw.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// Attrs writes attributes in key order so output is stable.
func (hw *Writer) Attrs(attrs templ.Attributes) *Writer {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				hw.Raw(" ", k)
			}
		case string:
			hw.Attr(k, v)
		}
	}
	return hw
}

func (hw *Writer) Component(ctx context.Context, c templ.Component) *Writer {
	if hw.err != nil || c == nil {
		return hw
	}
	hw.err = c.Render(ctx, hw.w)
	return hw
}

func (hw *Writer) Err() error {
	return hw.err
}

// ClassNames joins class lists and lets later utilities win over earlier ones.
func ClassNames(classes ...string) string {
	return twmerge.Merge(strings.Join(classes, " "))
}

// Text is a component rendering escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return NewWriter(w).Text(s).Err()
	})
}

// Lines renders each value on its own line.
func Lines(values []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := NewWriter(w)
		for i, v := range values {
			if i > 0 {
				hw.Raw("<br/>")
			}
			hw.Text(v)
		}
		return hw.Err()
	})
}
