package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/pkg/session"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieKey {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieKey)
	return nil
}

func TestSession_Form(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/session?next=/departments", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, 1, doc.Find(`input[name="Token"]`).Length())
	var userTypes []string
	doc.Find(`select[name="UserType"] option`).Each(func(_ int, s *goquery.Selection) {
		v, _ := s.Attr("value")
		userTypes = append(userTypes, v)
	})
	assert.Equal(t, []string{"admin", "restaurant", "staff"}, userTypes)
	next, _ := doc.Find(`input[name="Next"]`).Attr("value")
	assert.Equal(t, "/departments", next)
	assert.Equal(t, 0, doc.Find("[data-current]").Length())
}

func TestSession_Save(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(formRequest(http.MethodPost, "/session", "Token=+abc+&UserType=Restaurant&Language=zh&Next=%2Fdepartments"), nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/departments", rec.Header().Get("Location"))

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	s, err := env.store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "abc", s.AuthToken)
	assert.Equal(t, "restaurant", s.UserType)
	assert.Equal(t, "zh", s.Language)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/session", nil), &http.Cookie{Name: cookieKey, Value: cookie.Value})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, parse(t, rec).Find("[data-current]").Length())
}

func TestSession_UnsafeNextFallsBackToOrders(t *testing.T) {
	env := newTestEnv(t)
	for _, next := range []string{"%2F%2Fevil.example", "https%3A%2F%2Fevil.example", "%2Fsession", ""} {
		rec := env.do(formRequest(http.MethodPost, "/session", "Token=abc&UserType=staff&Language=fr&Next="+next), nil)
		require.Equal(t, http.StatusFound, rec.Code, next)
		assert.Equal(t, "/orders", rec.Header().Get("Location"), next)
	}
}

func TestSession_UnsupportedLanguageFallsBack(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(formRequest(http.MethodPost, "/session", "Token=abc&UserType=staff&Language=fr"), nil)
	require.Equal(t, http.StatusFound, rec.Code)

	s, err := env.store.Get(context.Background(), sessionCookie(t, rec).Value)
	require.NoError(t, err)
	assert.Equal(t, "en", s.Language)
}

func TestSession_Invalid(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(formRequest(http.MethodPost, "/session", "Token=&UserType=chef&Language=en"), nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, "Please input the access token!", doc.Find(`[data-error][data-field="Token"]`).Text())
	assert.Equal(t, "Unknown user type", doc.Find(`[data-error="UserType"]`).Text())
	assert.Empty(t, rec.Result().Cookies())
}

func TestSession_ReplacesPreviousSession(t *testing.T) {
	env := newTestEnv(t)
	old := env.login(t, "staff")

	rec := env.do(formRequest(http.MethodPost, "/session", "Token=new&UserType=admin&Language=en"), old)
	require.Equal(t, http.StatusFound, rec.Code)

	_, err := env.store.Get(context.Background(), old.Value)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NotEqual(t, old.Value, sessionCookie(t, rec).Value)
}

func TestSession_Logout(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "admin")

	rec := env.do(formRequest(http.MethodPost, "/session/logout", ""), cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/session", rec.Header().Get("Location"))
	assert.Negative(t, sessionCookie(t, rec).MaxAge)

	_, err := env.store.Get(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, session.ErrNotFound)

	rec = env.do(httptest.NewRequest(http.MethodGet, "/orders", nil), cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestRootRedirectsToOrders(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/orders", rec.Header().Get("Location"))
}
