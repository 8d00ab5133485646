// Package filtering implements the free-text search applied to fetched collections.
//
// A query matches a record when it is a case-insensitive substring of the string
// form of any top-level scalar value, or of any value of a nested line. Nil values
// never match, and a nested line holding a nil value is skipped entirely.
package filtering

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Matchable is implemented by records that can be searched.
type Matchable interface {
	// SearchValues returns the record's top-level values. Non-scalar values are ignored.
	SearchValues() []any
	// NestedSearchValues returns one slice per nested line (e.g. an order's line items).
	NestedSearchValues() [][]any
}

// Record is a loosely typed backend record.
type Record map[string]any

func (r Record) SearchValues() []any {
	values := make([]any, 0, len(r))
	for _, v := range r {
		values = append(values, v)
	}
	return values
}

func (r Record) NestedSearchValues() [][]any {
	return nil
}

// Stringify returns the display form of a scalar. It reports false for nil and
// for maps, slices and structs that do not implement fmt.Stringer.
func Stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int32:
		return strconv.FormatInt(int64(t), 10), true
	case uint:
		return strconv.FormatUint(uint64(t), 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", false
		}
		return t.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", false
		}
		return Stringify(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Func, reflect.Chan:
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// Matches reports whether m matches query. An empty query matches everything.
func Matches(m Matchable, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)

	for _, v := range m.SearchValues() {
		if s, ok := Stringify(v); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}

	for _, line := range m.NestedSearchValues() {
		if lineMatches(line, needle) {
			return true
		}
	}
	return false
}

func lineMatches(line []any, needle string) bool {
	texts := make([]string, 0, len(line))
	for _, v := range line {
		s, ok := Stringify(v)
		if !ok {
			return false
		}
		texts = append(texts, s)
	}
	for _, s := range texts {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// Filter returns a new slice with the items matching query, preserving order.
func Filter[T Matchable](items []T, query string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, query) {
			out = append(out, item)
		}
	}
	return out
}
