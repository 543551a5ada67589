package session

import (
	"context"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// forgeScopes covers everything the integration does with Forge:
// bucket creation/listing, object upload and translation jobs.
var forgeScopes = []string{
	"data:read",
	"data:write",
	"data:create",
	"bucket:read",
	"bucket:create",
}

// Tokens resolves the two credentials every request needs: the
// application-level Forge token (two-legged, cached and refreshed by the
// oauth2 token source) and the per-user Box token (three-legged).
type Tokens struct {
	internal oauth2.TokenSource
	box      *oauth2.Config
}

// TokensOptions configures the token provider endpoints.
type TokensOptions struct {
	ForgeClientID     string
	ForgeClientSecret string
	ForgeTokenURL     string
	BoxClientID       string
	BoxClientSecret   string
	BoxAuthURL        string
	BoxTokenURL       string
	BoxRedirectURL    string
}

// NewTokens creates a token provider.
func NewTokens(opts TokensOptions) *Tokens {
	internal := &clientcredentials.Config{
		ClientID:     opts.ForgeClientID,
		ClientSecret: opts.ForgeClientSecret,
		TokenURL:     opts.ForgeTokenURL,
		Scopes:       forgeScopes,
	}

	box := &oauth2.Config{
		ClientID:     opts.BoxClientID,
		ClientSecret: opts.BoxClientSecret,
		RedirectURL:  opts.BoxRedirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  opts.BoxAuthURL,
			TokenURL: opts.BoxTokenURL,
		},
	}

	return &Tokens{
		internal: internal.TokenSource(context.Background()),
		box:      box,
	}
}

// Internal returns the current application token, fetching or refreshing
// it when needed.
func (t *Tokens) Internal() (*oauth2.Token, error) {
	return t.internal.Token()
}

// BoxAuthURL returns the Box authorization URL for the three-legged flow.
func (t *Tokens) BoxAuthURL(state string) string {
	return t.box.AuthCodeURL(state)
}

// ExchangeBoxCode trades an authorization code for a Box token.
func (t *Tokens) ExchangeBoxCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return t.box.Exchange(ctx, code)
}
