package types

import (
	"github.com/a-h/templ"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
)

type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
	Icon     templ.Component
	// AuthzObject gates visibility; empty means always visible.
	AuthzObject string
	AuthzAction string
}

// Visible reports whether the item may be shown to the holder of state.
func (n NavigationItem) Visible(state *authz.ViewState) bool {
	if n.AuthzObject == "" {
		return true
	}
	action := n.AuthzAction
	if action == "" {
		action = authz.ActionView
	}
	return state.Can(n.AuthzObject, action)
}

// FilterVisible drops the items, and children, state may not see.
func FilterVisible(items []NavigationItem, state *authz.ViewState) []NavigationItem {
	out := make([]NavigationItem, 0, len(items))
	for _, item := range items {
		if !item.Visible(state) {
			continue
		}
		item.Children = FilterVisible(item.Children, state)
		out = append(out, item)
	}
	return out
}
