package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/pkg/authz"
	"github.com/iota-uz/restaurant-admin/pkg/composables"
	"github.com/iota-uz/restaurant-admin/pkg/configuration"
	"github.com/iota-uz/restaurant-admin/pkg/session"
	"github.com/iota-uz/restaurant-admin/pkg/types"
)

type staticStore struct {
	session *session.Session
	deleted []string
}

func (s *staticStore) Get(_ context.Context, id string) (*session.Session, error) {
	if s.session == nil || s.session.ID != id {
		return nil, session.ErrNotFound
	}
	return s.session, nil
}

func (s *staticStore) Save(_ context.Context, sess *session.Session) error {
	s.session = sess
	return nil
}

func (s *staticStore) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func captureSession(t *testing.T, got **session.Session) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := composables.UseSession(r.Context())
		if err == nil {
			*got = s
		}
	})
}

func TestWithSession(t *testing.T) {
	store := session.NewMemoryStore()
	s := session.New("tok-1", "staff", "en", time.Hour)
	require.NoError(t, store.Save(context.Background(), s))
	mw := WithSession(store, "sid")

	t.Run("loads known session", func(t *testing.T) {
		var got *session.Session
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: s.ID})
		mw(captureSession(t, &got)).ServeHTTP(httptest.NewRecorder(), req)
		require.NotNil(t, got)
		assert.Equal(t, "tok-1", got.AuthToken)
	})

	t.Run("unknown session clears cookie", func(t *testing.T) {
		var got *session.Session
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "nope"})
		mw(captureSession(t, &got)).ServeHTTP(rec, req)
		assert.Nil(t, got)
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "sid=;")
	})

	t.Run("no cookie", func(t *testing.T) {
		var got *session.Session
		mw(captureSession(t, &got)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, got)
	})
}

func TestWithSession_ExpiredIsDeleted(t *testing.T) {
	expired := session.New("tok", "staff", "en", time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	store := &staticStore{session: expired}

	var got *session.Session
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: expired.ID})
	WithSession(store, "sid")(captureSession(t, &got)).ServeHTTP(rec, req)

	assert.Nil(t, got)
	assert.Equal(t, []string{expired.ID}, store.deleted)
}

func TestRequireSession(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := RequireSession("/session")(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?q=a", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/session?next=%2Forders%3Fq%3Da", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/1/confirm", nil)
	req.Header.Set("Hx-Request", "true")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/session", rec.Header().Get("Hx-Redirect"))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Accept", "application/json")
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	req = req.WithContext(composables.WithSession(req.Context(), session.New("tok", "staff", "en", time.Hour)))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestProvideAuthzState(t *testing.T) {
	svc, err := authz.NewService(authz.Config{FlagProvider: authz.StaticFlagProvider(authz.ModeEnforce)})
	require.NoError(t, err)

	var state *authz.ViewState
	h := ProvideAuthzState(svc, authz.OrdersObject, authz.DepartmentsObject)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state = composables.UseAuthzViewState(r.Context())
		}),
	)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(composables.WithSession(req.Context(), session.New("tok", "staff", "en", time.Hour)))
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, state)
	assert.Equal(t, "role:staff", state.Subject)
	assert.True(t, state.Can(authz.OrdersObject, authz.ActionView))
	assert.False(t, state.Can(authz.OrdersObject, authz.ActionDelete))
	assert.False(t, state.Can(authz.DepartmentsObject, authz.ActionCreate))
}

func TestGetEnabledNavItems(t *testing.T) {
	items := []types.NavigationItem{
		{Name: "Orders", Href: "/orders"},
		{Name: "Group", Children: []types.NavigationItem{{Name: "Departments", Href: "/departments"}}},
		{Name: "Empty", Children: []types.NavigationItem{}},
	}
	got := getEnabledNavItems(items)
	require.Len(t, got, 2)
	assert.Equal(t, "/departments", got[1].Href)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{
		RequestsPerPeriod: 2,
		Period:            time.Minute,
		Store:             NewMemoryStore(),
		KeyFunc:           func(r *http.Request) string { return "client" },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestOpsGuard(t *testing.T) {
	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		OpsGuardEnabled:  true,
		OpsGuardToken:    "secret",
		OpsGuardCIDRs:    "10.0.0.0/8",
		RealIPHeader:     "X-Real-IP",
	}
	h := OpsGuard(NewOpsGuardConfig(conf, "/health", "/debug/prometheus"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	cases := []struct {
		name   string
		path   string
		header map[string]string
		code   int
	}{
		{"non ops path", "/orders", nil, http.StatusOK},
		{"hidden", "/health", nil, http.StatusNotFound},
		{"token", "/debug/prometheus", map[string]string{"X-Ops-Token": "secret"}, http.StatusOK},
		{"bearer", "/health", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
		{"cidr", "/health", map[string]string{"X-Real-IP": "10.1.2.3"}, http.StatusOK},
		{"wrong token", "/health", map[string]string{"X-Ops-Token": "nope"}, http.StatusNotFound},
		{"outside cidr", "/debug/prometheus/", map[string]string{"X-Real-IP": "192.168.0.1, 10.0.0.1"}, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
		})
	}

	conf.GoAppEnvironment = "development"
	rec := httptest.NewRecorder()
	OpsGuard(NewOpsGuardConfig(conf, "/health"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCors_Preflight(t *testing.T) {
	h := Cors("http://localhost:3000")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
