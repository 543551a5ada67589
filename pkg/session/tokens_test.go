package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, accessToken string, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": accessToken,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
}

func TestInternalTokenCached(t *testing.T) {
	var calls atomic.Int64
	server := newTokenServer(t, "forge-token", &calls)
	defer server.Close()

	tokens := NewTokens(TokensOptions{
		ForgeClientID:     "id",
		ForgeClientSecret: "secret",
		ForgeTokenURL:     server.URL,
	})

	first, err := tokens.Internal()
	require.NoError(t, err)
	require.Equal(t, "forge-token", first.AccessToken)

	second, err := tokens.Internal()
	require.NoError(t, err)
	require.Equal(t, first.AccessToken, second.AccessToken)

	// Unexpired token is served from cache, not re-fetched.
	require.Equal(t, int64(1), calls.Load())
}

func TestBoxAuthURL(t *testing.T) {
	tokens := NewTokens(TokensOptions{
		BoxClientID:    "box-id",
		BoxAuthURL:     "https://account.example.com/authorize",
		BoxTokenURL:    "https://api.example.com/token",
		BoxRedirectURL: "http://localhost:3000/box/callback",
	})

	url := tokens.BoxAuthURL("state123")
	require.Contains(t, url, "https://account.example.com/authorize")
	require.Contains(t, url, "client_id=box-id")
	require.Contains(t, url, "state=state123")
}

func TestExchangeBoxCode(t *testing.T) {
	server := newTokenServer(t, "box-token", nil)
	defer server.Close()

	tokens := NewTokens(TokensOptions{
		BoxClientID:     "box-id",
		BoxClientSecret: "box-secret",
		BoxTokenURL:     server.URL,
	})

	token, err := tokens.ExchangeBoxCode(context.Background(), "auth-code")
	require.NoError(t, err)
	require.Equal(t, "box-token", token.AccessToken)
}
