package department

import (
	"strings"
	"time"

	"github.com/iota-uz/restaurant-admin/pkg/filtering"
)

type Department struct {
	id          string
	name        string
	description string
	createdAt   time.Time
	raw         filtering.Record
}

func New(name, description string) Department {
	return Department{
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		raw:         filtering.Record{},
	}
}

func Hydrate(id, name, description string, createdAt time.Time, raw filtering.Record) Department {
	if raw == nil {
		raw = filtering.Record{}
	}
	return Department{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
		raw:         raw,
	}
}

func (d Department) ID() string            { return d.id }
func (d Department) Name() string          { return d.name }
func (d Department) Description() string   { return d.description }
func (d Department) CreatedAt() time.Time  { return d.createdAt }
func (d Department) Raw() filtering.Record { return d.raw }
func (d Department) Field(name string) any { return d.raw[name] }

func (d Department) SetName(name string) Department {
	d.name = strings.TrimSpace(name)
	return d
}

func (d Department) SetDescription(description string) Department {
	d.description = strings.TrimSpace(description)
	return d
}

// Payload is the editable part of the department as sent to the backend.
func (d Department) Payload() map[string]any {
	return map[string]any{
		"name":        d.name,
		"description": d.description,
	}
}

func (d Department) SearchValues() []any {
	if len(d.raw) == 0 {
		return []any{d.id, d.name, d.description}
	}
	return d.raw.SearchValues()
}

func (d Department) NestedSearchValues() [][]any {
	return nil
}
