package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/restaurant-admin/pkg/configuration"
)

func testOptions(baseURL string) configuration.BackendOptions {
	return configuration.BackendOptions{
		BaseURL:                 baseURL,
		Timeout:                 2 * time.Second,
		BreakerMaxRequests:      1,
		BreakerInterval:         time.Minute,
		BreakerTimeout:          time.Minute,
		BreakerMinRequests:      2,
		BreakerFailureThreshold: 1,
	}
}

func TestClient_GetCollectionSendsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, "/orders", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":[{"_id":"1","totalPrice":12.50}]}`)
	}))
	defer srv.Close()

	c := NewClient(testOptions(srv.URL + "/"))
	records, err := c.GetCollection(WithToken(context.Background(), "tok-1"), "/orders")
	require.NoError(t, err)
	require.Equal(t, "tok-1", gotAuth)
	require.Len(t, records, 1)
	require.Equal(t, json.Number("12.50"), records[0]["totalPrice"])
}

func TestClient_ExplicitTokenWins(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := NewClient(testOptions(srv.URL))
	_, err := c.Do(WithToken(context.Background(), "ctx"), Request{Method: http.MethodDelete, Path: "/orders/1", Token: "explicit"})
	require.NoError(t, err)
	require.Equal(t, "explicit", gotAuth)
}

func TestClient_MutateSendsJSONAndChecksAck(t *testing.T) {
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["status"] == "Cancelled" {
			_, _ = io.WriteString(w, `{"success":false,"message":"too late"}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c := NewClient(testOptions(srv.URL))
	require.NoError(t, c.Mutate(context.Background(), http.MethodPut, "/orders/1", map[string]string{"status": "Confirmed"}))
	require.Equal(t, "Confirmed", body["status"])

	err := c.Mutate(context.Background(), http.MethodPut, "/orders/1", map[string]string{"status": "Cancelled"})
	require.ErrorIs(t, err, ErrNotAcknowledged)
	require.Contains(t, err.Error(), "too late")
}

func TestClient_StatusErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/unauthorized":
			w.WriteHeader(http.StatusUnauthorized)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
		_, _ = io.WriteString(w, "nope")
	}))
	defer srv.Close()

	c := NewClient(testOptions(srv.URL))

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/unauthorized"})
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/missing"})
	require.ErrorIs(t, err, ErrNotFound)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "nope", se.Body)
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(testOptions(srv.URL))
	for i := 0; i < 2; i++ {
		_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders"})
		require.ErrorIs(t, err, ErrUnavailable)
	}

	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders"})
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, int32(2), calls.Load(), "open breaker must not reach the backend")
}

func TestClient_ClientErrorsDoNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(testOptions(srv.URL))
	for i := 0; i < 4; i++ {
		_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders"})
		require.ErrorIs(t, err, ErrUnauthorized)
	}
	require.Equal(t, int32(4), calls.Load())
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	opts := testOptions(srv.URL)
	opts.Timeout = 50 * time.Millisecond
	c := NewClient(opts)
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/orders"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRouteLabel(t *testing.T) {
	require.Equal(t, "/orders", routeLabel("/orders"))
	require.Equal(t, "/orders/:id", routeLabel("/orders/abc123"))
	require.Equal(t, "/departments/:id", routeLabel("/departments/1?x=y"))
}
