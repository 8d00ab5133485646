package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New("tok", "admin", "en", time.Hour)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "tok", got.AuthToken)
	require.Equal(t, "admin", got.UserType)
	require.True(t, got.Authenticated())

	got.AuthToken = "mutated"
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "tok", again.AuthToken, "store must not hand out shared pointers")

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	s := &Session{ID: "s1", AuthToken: "tok", ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, store.Save(ctx, s))

	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSession_Authenticated(t *testing.T) {
	var nilSession *Session
	require.False(t, nilSession.Authenticated())
	require.False(t, (&Session{}).Authenticated())
}

func TestCookie(t *testing.T) {
	s := New("tok", "staff", "en", time.Hour)
	c := Cookie("sid", s, true)
	require.Equal(t, s.ID, c.Value)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, -1, ExpiredCookie("sid").MaxAge)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("SESSION_REDIS_TEST_URL")
	if addr == "" {
		t.Skip("SESSION_REDIS_TEST_URL not set")
	}
	client, err := NewRedisClient(addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := NewRedisStore(client)
	s := New("tok", "admin", "zh", time.Minute)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "zh", got.Language)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
