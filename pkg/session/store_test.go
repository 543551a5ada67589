package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	sess := store.Create()
	require.NotEmpty(t, sess.ID)
	require.False(t, sess.BoxAuthorized())

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	require.Equal(t, sess.ID, got.ID)
}

func TestStoreUnknownSession(t *testing.T) {
	store := NewStore(time.Hour)

	_, ok := store.Get("nope")
	require.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	sess := store.Create()
	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get(sess.ID)
	require.False(t, ok)

	// Creating a new session purges the expired one.
	store.Create()
	require.Equal(t, 1, store.Len())
}

func TestStoreSetBoxToken(t *testing.T) {
	store := NewStore(time.Hour)
	sess := store.Create()

	token := &oauth2.Token{
		AccessToken: "box-token",
		Expiry:      time.Now().Add(time.Hour),
	}
	require.True(t, store.SetBoxToken(sess.ID, token))
	require.False(t, store.SetBoxToken("unknown", token))

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	require.True(t, got.BoxAuthorized())
	require.Equal(t, "box-token", got.BoxToken.AccessToken)
}

func TestStoreUniqueIDs(t *testing.T) {
	store := NewStore(time.Hour)
	first := store.Create()
	second := store.Create()
	require.NotEqual(t, first.ID, second.ID)
}
