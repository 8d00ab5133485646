package authorization

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
)

func TestResolveSubject(t *testing.T) {
	t.Parallel()

	state := authz.NewViewState("role:staff")
	require.Equal(t, "role:staff", resolveSubject(state, ""))
	require.Equal(t, "role:admin", resolveSubject(state, " role:admin "))
	require.Equal(t, "role:anonymous", resolveSubject(nil, ""))
}

func TestGrantedActions(t *testing.T) {
	t.Parallel()

	state := authz.NewViewState("role:staff")
	state.SetCapability(authz.CapabilityKey(authz.OrdersObject, authz.ActionView), true)
	state.SetCapability(authz.CapabilityKey(authz.OrdersObject, authz.ActionExport), true)
	state.SetCapability(authz.CapabilityKey(authz.OrdersObject, authz.ActionDelete), false)

	require.Equal(t, []string{"export", "view"}, grantedActions(state, authz.OrdersObject))
	require.Empty(t, grantedActions(nil, authz.OrdersObject))
}

func TestUnauthorized_Render(t *testing.T) {
	t.Parallel()

	state := authz.NewViewState("role:staff")
	state.SetCapability(authz.CapabilityKey(authz.OrdersObject, authz.ActionView), true)

	var buf bytes.Buffer
	err := Unauthorized(&UnauthorizedProps{
		State:     state,
		Object:    authz.OrdersObject,
		Action:    "DELETE",
		RequestID: "req-1",
		Message:   "You cannot delete orders.",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	section := doc.Find("section[data-authz-denied]")
	require.Equal(t, 1, section.Length())
	action, _ := section.Attr("data-action")
	require.Equal(t, "delete", action)
	require.Contains(t, section.Text(), "restaurant.orders delete")
	require.Contains(t, section.Text(), "role:staff")
	require.Contains(t, section.Text(), "req-1")
}
