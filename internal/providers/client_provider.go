package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/ebaymcp/ebaymcp/internal/ebay"
	"github.com/ebaymcp/ebaymcp/internal/schema"
	"github.com/ebaymcp/ebaymcp/internal/shared/stringutils"
	"github.com/ebaymcp/ebaymcp/internal/tools"
)

// Environment variables the shared client is configured from.
const (
	EnvClientID     = "EBAY_CLIENT_ID"
	EnvClientSecret = "EBAY_CLIENT_SECRET"
	EnvSandbox      = "EBAY_SANDBOX"
	EnvRefreshToken = "EBAY_REFRESH_TOKEN"
)

// Factory constructs the shared client from resolved credentials.
type Factory func(ctx context.Context, creds ebay.Credentials) (schema.RemoteClient, error)

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

type clientHandle struct {
	client schema.RemoteClient
}

// ClientProvider builds the shared client on first use and hands the same
// instance to every caller afterwards. Failed constructions are not cached.
type ClientProvider struct {
	factory Factory
	lookup  LookupFunc

	mu     sync.Mutex
	cached atomic.Pointer[clientHandle]
}

// Option configures a ClientProvider.
type Option func(*ClientProvider)

// WithLookup replaces os.LookupEnv as the credential source.
func WithLookup(lookup LookupFunc) Option {
	return func(p *ClientProvider) {
		p.lookup = lookup
	}
}

func NewClientProvider(factory Factory, opts ...Option) *ClientProvider {
	p := &ClientProvider{factory: factory, lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Client returns the shared client, constructing it if this is the first
// successful call.
func (p *ClientProvider) Client(ctx context.Context) (schema.RemoteClient, error) {
	if h := p.cached.Load(); h != nil {
		return h.client, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if h := p.cached.Load(); h != nil {
		return h.client, nil
	}

	creds, err := ReadCredentials(p.lookup)
	if err != nil {
		return nil, err
	}
	client, err := p.factory(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("create eBay client: %w", err)
	}
	p.cached.Store(&clientHandle{client: client})

	env := "production"
	if creds.Sandbox {
		env = "sandbox"
	}
	slog.Info("eBay client ready", "environment", env, "user_token", creds.RefreshToken != "")
	return client, nil
}

// ReadCredentials resolves the keyset from lookup. Every missing required
// variable is named in the returned *tools.ConfigurationError.
func ReadCredentials(lookup LookupFunc) (ebay.Credentials, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	creds := ebay.Credentials{
		ClientID:     get(EnvClientID),
		ClientSecret: get(EnvClientSecret),
		RefreshToken: get(EnvRefreshToken),
		Sandbox:      stringutils.IsTruthy(get(EnvSandbox)),
	}

	var missing []string
	if creds.ClientID == "" {
		missing = append(missing, EnvClientID)
	}
	if creds.ClientSecret == "" {
		missing = append(missing, EnvClientSecret)
	}
	if len(missing) > 0 {
		return ebay.Credentials{}, &tools.ConfigurationError{Missing: missing}
	}
	return creds, nil
}
