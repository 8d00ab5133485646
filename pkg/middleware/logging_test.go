package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/pkg/composables"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "middleware-test")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("LOG_PATH", filepath.Join(dir, "app.log"))
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func entryWith(entries []*logrus.Entry, msg string) *logrus.Entry {
	for _, e := range entries {
		if e.Message == msg {
			return e
		}
	}
	return nil
}

func TestWithLogger_RedactsSessionToken(t *testing.T) {
	logger, hook := test.NewNullLogger()
	var body string
	h := WithLogger(logger, DefaultLoggerOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		composables.UseLogger(r.Context()).Info("inside handler")
	}))

	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader("Token=s3cret&UserType=staff"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", "sid=abc")
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "Token=s3cret&UserType=staff", body, "handler still sees the full body")
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))

	form := entryWith(hook.AllEntries(), "form request-body")
	require.NotNil(t, form)
	fields := form.Data["request-body"].(map[string]string)
	assert.Equal(t, redacted, fields["Token"])
	assert.Equal(t, "staff", fields["UserType"])

	started := entryWith(hook.AllEntries(), "request started")
	require.NotNil(t, started)
	assert.Equal(t, redacted, started.Data["request-headers"].(map[string]string)["Cookie"])

	inside := entryWith(hook.AllEntries(), "inside handler")
	require.NotNil(t, inside)
	assert.Equal(t, "req-1", inside.Data["request-id"])

	for _, e := range hook.AllEntries() {
		s, err := e.String()
		require.NoError(t, err)
		assert.NotContains(t, s, "s3cret")
	}
}

func TestWithLogger_RecoversPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := WithLogger(logger, DefaultLoggerOptions())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", "req-2")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"INTERNAL_ERROR"`)
	assert.Contains(t, rec.Body.String(), `"req-2"`)
	require.NotNil(t, entryWith(hook.AllEntries(), "panic recovered in request handler"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestWithLogger_ServerErrorsLogAsWarnings(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := WithLogger(logger, DefaultLoggerOptions())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/orders", nil))

	completed := entryWith(hook.AllEntries(), "request completed")
	require.NotNil(t, completed)
	assert.Equal(t, logrus.WarnLevel, completed.Level)
	assert.Equal(t, http.StatusBadGateway, completed.Data["status-code"])
}
