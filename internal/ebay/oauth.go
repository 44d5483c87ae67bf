package ebay

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// TokenPath is the identity endpoint path on both environments.
	TokenPath = "/identity/v1/oauth2/token"
	// AppScope is the public application scope granted to every keyset.
	AppScope = "https://api.ebay.com/oauth/api_scope"
)

// Credentials are the keyset and optional user token the client signs in with.
type Credentials struct {
	ClientID     string
	ClientSecret string
	// RefreshToken, when set, mints user access tokens instead of
	// application tokens.
	RefreshToken string
	Sandbox      bool
}

// newTokenSource returns a caching token source for creds. Token requests
// go through base and are bound to ctx, which must outlive the client.
func newTokenSource(ctx context.Context, creds Credentials, tokenURL string, scopes []string, base *http.Client) oauth2.TokenSource {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	if creds.RefreshToken != "" {
		cfg := &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
			Scopes: scopes,
		}
		return cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	}

	cfg := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       scopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	return cfg.TokenSource(ctx)
}
