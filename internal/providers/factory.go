package providers

import (
	"context"

	"github.com/ebaymcp/ebaymcp/internal/config"
	"github.com/ebaymcp/ebaymcp/internal/ebay"
	"github.com/ebaymcp/ebaymcp/internal/schema"
)

// NewEBayFactory returns a Factory that builds an *ebay.Client over catalog
// with the transport settings from cfg.
func NewEBayFactory(cfg *config.Config, catalog *ebay.Catalog) Factory {
	opts := ebay.Options{
		APIBaseURL:        cfg.EBay.APIBaseURL,
		TokenURL:          cfg.EBay.TokenURL,
		MarketplaceID:     cfg.EBay.MarketplaceID,
		Scopes:            cfg.EBay.Scopes,
		Timeout:           cfg.EBay.Timeout(),
		RequestsPerSecond: cfg.EBay.RequestsPerSecond,
	}
	return func(ctx context.Context, creds ebay.Credentials) (schema.RemoteClient, error) {
		client, err := ebay.NewClient(ctx, creds, catalog, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
