package spotlight

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/a-h/templ"
	"github.com/lithammer/fuzzysearch/fuzzy"

	spotlightui "github.com/iota-uz/restaurant-admin/components/spotlight"
	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/intl"
)

// Item is one rendered search result.
type Item interface {
	templ.Component
	Link() string
}

// Link is a result with a fixed label, such as a department name.
type Link struct {
	Label string
	Href  string
	Icon  templ.Component
}

func (l Link) Link() string { return l.Href }

func (l Link) Render(ctx context.Context, w io.Writer) error {
	return spotlightui.LinkItem(l.Label, l.Href, l.Icon).Render(ctx, w)
}

// QuickLink is a navigation shortcut whose label is a message ID, optionally
// hidden from user types lacking a capability.
type QuickLink struct {
	trKey  string
	icon   templ.Component
	href   string
	object string
	action string
}

func NewQuickLink(icon templ.Component, trKey, href string) *QuickLink {
	return &QuickLink{trKey: trKey, icon: icon, href: href}
}

// RequireAuthz hides the link unless the user may run action on object.
// An empty action means view.
func (q *QuickLink) RequireAuthz(object, action string) *QuickLink {
	q.object = strings.TrimSpace(object)
	q.action = action
	return q
}

func (q *QuickLink) Link() string { return q.href }

func (q *QuickLink) Render(ctx context.Context, w io.Writer) error {
	return spotlightui.LinkItem(intl.T(ctx, q.trKey), q.href, q.icon).Render(ctx, w)
}

func (q *QuickLink) visible(state *authz.ViewState) bool {
	if q.object == "" {
		return true
	}
	if q.action == "" {
		return state.Can(q.object, authz.ActionView)
	}
	return state.Can(q.object, authz.NormalizeAction(q.action))
}

// QuickLinks is a DataSource over the registered navigation shortcuts.
type QuickLinks struct {
	mu    sync.RWMutex
	links []*QuickLink
}

func (ql *QuickLinks) Add(links ...*QuickLink) {
	ql.mu.Lock()
	defer ql.mu.Unlock()
	ql.links = append(ql.links, links...)
}

// Find ranks the visible links by a fuzzy match on their translated label.
func (ql *QuickLinks) Find(ctx context.Context, q string) []Item {
	state := authz.ViewStateFromContext(ctx)

	ql.mu.RLock()
	visible := make([]*QuickLink, 0, len(ql.links))
	for _, l := range ql.links {
		if l.visible(state) {
			visible = append(visible, l)
		}
	}
	ql.mu.RUnlock()

	labels := make([]string, len(visible))
	for i, l := range visible {
		labels[i] = intl.T(ctx, l.trKey)
	}
	return Rank(q, labels, func(i int) Item { return visible[i] })
}

// Rank orders candidates by fuzzy distance between q and their label; item
// builds the result for the candidate at index i.
func Rank(q string, labels []string, item func(i int) Item) []Item {
	if len(labels) == 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(q, labels)
	sort.Sort(ranks)
	out := make([]Item, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, item(r.OriginalIndex))
	}
	return out
}
