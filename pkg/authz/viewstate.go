package authz

import (
	"context"
	"strings"
)

// ViewState exposes the capabilities of the current user to templates.
type ViewState struct {
	Subject      string          `json:"subject"`
	Capabilities map[string]bool `json:"capabilities"`
}

func NewViewState(subject string) *ViewState {
	return &ViewState{
		Subject:      subject,
		Capabilities: map[string]bool{},
	}
}

// CapabilityKey builds the key used for an object/action pair, e.g. "restaurant.orders.delete".
func CapabilityKey(object, action string) string {
	return normalizeCapabilityKey(object + objectSeparator + action)
}

// SetCapability stores a boolean flag for later template use.
func (v *ViewState) SetCapability(name string, allowed bool) {
	if v == nil {
		return
	}
	v.Capabilities[normalizeCapabilityKey(name)] = allowed
}

// Capability reports whether a capability was previously recorded as allowed.
func (v *ViewState) Capability(name string) bool {
	if v == nil {
		return false
	}
	return v.Capabilities[normalizeCapabilityKey(name)]
}

func (v *ViewState) Can(object, action string) bool {
	return v.Capability(CapabilityKey(object, action))
}

func normalizeCapabilityKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildViewState evaluates every action on the given objects for subject.
func (s *Service) BuildViewState(ctx context.Context, subject string, objects ...string) *ViewState {
	state := NewViewState(subject)
	for _, obj := range objects {
		for _, act := range []string{ActionView, ActionCreate, ActionUpdate, ActionDelete, ActionExport} {
			state.SetCapability(CapabilityKey(obj, act), s.Can(ctx, subject, obj, act))
		}
	}
	return state
}

type viewStateContextKey struct{}

func WithViewState(ctx context.Context, state *ViewState) context.Context {
	if state == nil {
		return ctx
	}
	return context.WithValue(ctx, viewStateContextKey{}, state)
}

func ViewStateFromContext(ctx context.Context) *ViewState {
	if ctx == nil {
		return nil
	}
	if state, ok := ctx.Value(viewStateContextKey{}).(*ViewState); ok {
		return state
	}
	return nil
}
