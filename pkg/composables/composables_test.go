package composables

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/pkg/constants"
	"github.com/iota-uz/restaurant-admin/pkg/session"
)

func TestSessionRoundTrip(t *testing.T) {
	_, err := UseSession(context.Background())
	require.ErrorIs(t, err, ErrNoSession)
	require.Empty(t, UseUserType(context.Background()))

	s := session.New("tok", "admin", "en", time.Hour)
	ctx := WithSession(context.Background(), s)

	got, err := UseSession(ctx)
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Equal(t, "admin", UseUserType(ctx))
	require.Equal(t, "tok", ctx.Value(constants.AuthTokenKey))
}

func TestUseLogger_FallsBack(t *testing.T) {
	require.NotNil(t, UseLogger(context.Background()))
}

type searchQuery struct {
	Q      string `form:"q"`
	Format string `form:"format"`
}

func TestUseQueryAndForm(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?q=soup&format=pdf", nil)
	q, err := UseQuery(&searchQuery{}, r)
	require.NoError(t, err)
	require.Equal(t, "soup", q.Q)
	require.Equal(t, "pdf", q.Format)

	form := url.Values{"q": {"tea"}}
	r = httptest.NewRequest("POST", "/orders", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	q, err = UseForm(&searchQuery{}, r)
	require.NoError(t, err)
	require.Equal(t, "tea", q.Q)
}

func TestGetLastQueryParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/orders?q=a&q=b", nil)
	require.Equal(t, "b", GetLastQueryParam(r, "q"))
	require.Empty(t, GetLastQueryParam(r, "missing"))
}
