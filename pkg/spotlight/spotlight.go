// Package spotlight powers the quick search box of the layout.
package spotlight

import (
	"context"
	"sync"
)

type DataSource interface {
	Find(ctx context.Context, q string) []Item
}

type Spotlight interface {
	Find(ctx context.Context, q string) []Item
	Register(ds DataSource)
}

func New() Spotlight {
	return &spotlight{}
}

type spotlight struct {
	mu          sync.RWMutex
	dataSources []DataSource
}

func (s *spotlight) Register(ds DataSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataSources = append(s.dataSources, ds)
}

func (s *spotlight) Find(ctx context.Context, q string) []Item {
	s.mu.RLock()
	sources := append([]DataSource(nil), s.dataSources...)
	s.mu.RUnlock()

	var items []Item
	for _, ds := range sources {
		items = append(items, ds.Find(ctx, q)...)
	}
	return items
}
