// Package ebay is a small table-driven SDK for eBay's REST APIs. Each API
// area is an embedded catalog of methods; a Client binds call arguments to a
// method's declared parameters and performs the signed HTTP request.
package ebay

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	ProductionAPIBase = "https://api.ebay.com"
	SandboxAPIBase    = "https://api.sandbox.ebay.com"

	// MarketplaceHeader selects the eBay site a request applies to.
	MarketplaceHeader = "X-EBAY-C-MARKETPLACE-ID"

	defaultTimeout = 30 * time.Second
)

// Options tune a Client. Zero values fall back to production defaults.
type Options struct {
	// APIBaseURL overrides the environment-derived API host.
	APIBaseURL string
	// TokenURL overrides the environment-derived OAuth token endpoint.
	TokenURL      string
	MarketplaceID string
	Scopes        []string
	Timeout       time.Duration
	// RequestsPerSecond caps outbound calls; zero or less is unlimited.
	RequestsPerSecond float64
	// HTTPClient supplies the transport for token and API requests.
	HTTPClient *http.Client
}

// Client calls eBay REST methods described by a Catalog.
// It is safe for concurrent use.
type Client struct {
	catalog       *Catalog
	http          *http.Client
	baseURL       string
	marketplaceID string
	limiter       *rate.Limiter
}

// NewClient builds a client for creds. ctx scopes token refreshes for the
// client's whole lifetime; its cancellation is ignored.
func NewClient(ctx context.Context, creds Credentials, catalog *Catalog, opts Options) (*Client, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("ebay: client id and secret are required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("ebay: catalog is required")
	}

	baseURL := opts.APIBaseURL
	if baseURL == "" {
		baseURL = ProductionAPIBase
		if creds.Sandbox {
			baseURL = SandboxAPIBase
		}
	}
	baseURL = strings.TrimRight(baseURL, "/")

	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = baseURL + TokenPath
	}

	scopes := opts.Scopes
	if len(scopes) == 0 {
		scopes = []string{AppScope}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: timeout}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	src := newTokenSource(context.WithoutCancel(ctx), creds, tokenURL, scopes, base)

	c := &Client{
		catalog: catalog,
		http: &http.Client{
			Transport: &oauth2.Transport{Source: src, Base: transport},
			Timeout:   timeout,
		},
		baseURL:       baseURL,
		marketplaceID: opts.MarketplaceID,
	}
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return c, nil
}

// AreaHandle is a Client bound to one API area.
type AreaHandle struct {
	client *Client
	area   *Area
}

// Area returns the handle for the area with the given ID.
func (c *Client) Area(id string) (*AreaHandle, error) {
	area, ok := c.catalog.Area(id)
	if !ok {
		return nil, fmt.Errorf("ebay: unknown API area %q", id)
	}
	return &AreaHandle{client: c, area: area}, nil
}

// Call invokes area.method with a positional list and a keyword map.
func (c *Client) Call(ctx context.Context, area, method string, positional []any, keyword map[string]any) (any, error) {
	h, err := c.Area(area)
	if err != nil {
		return nil, err
	}
	return h.Call(ctx, method, positional, keyword)
}

// endpoint returns the base URL for area, honouring its host override.
func (c *Client) endpoint(area *Area) string {
	base := c.baseURL
	if area.Host != "" {
		base = strings.Replace(base, "://api.", "://"+area.Host+".", 1)
	}
	return base + area.BasePath
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// Wait fails early when the deadline would pass before a token frees up.
		return fmt.Errorf("ebay: rate limit: %w", context.DeadlineExceeded)
	}
	return nil
}
