// Package dependency wires core ebaymcp services using go.uber.org/dig.
package dependency

import (
	"go.uber.org/dig"

	"github.com/ebaymcp/ebaymcp/internal/config"
	"github.com/ebaymcp/ebaymcp/internal/ebay"
	"github.com/ebaymcp/ebaymcp/internal/mcp"
	"github.com/ebaymcp/ebaymcp/internal/providers"
	"github.com/ebaymcp/ebaymcp/internal/schema"
	"github.com/ebaymcp/ebaymcp/internal/tools"
)

// ServiceContainer holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type ServiceContainer struct {
	catalog   *ebay.Catalog
	provider  *providers.ClientProvider
	registrar *tools.Registrar
	server    *mcp.Server
}

func (c *ServiceContainer) Catalog() *ebay.Catalog                    { return c.catalog }
func (c *ServiceContainer) ClientProvider() *providers.ClientProvider { return c.provider }
func (c *ServiceContainer) Registrar() *tools.Registrar               { return c.registrar }
func (c *ServiceContainer) Server() *mcp.Server                       { return c.server }

// BuildVersion is a named string type so dig can distinguish the binary
// version from plain strings.
type BuildVersion string

// New builds and wires all core services from cfg.
func New(cfg *config.Config, version BuildVersion, opts ...providers.Option) (*ServiceContainer, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() BuildVersion { return version }); err != nil {
		return nil, err
	}
	if err := d.Provide(newCatalog); err != nil {
		return nil, err
	}
	if err := d.Provide(func(cfg *config.Config, catalog *ebay.Catalog) *providers.ClientProvider {
		return providers.NewClientProvider(providers.NewEBayFactory(cfg, catalog), opts...)
	}); err != nil {
		return nil, err
	}
	if err := d.Provide(newClientSource); err != nil {
		return nil, err
	}
	if err := d.Provide(newAdapter); err != nil {
		return nil, err
	}
	if err := d.Provide(tools.NewRegistrar); err != nil {
		return nil, err
	}
	if err := d.Provide(newServer); err != nil {
		return nil, err
	}

	var result *ServiceContainer
	err := d.Invoke(func(
		catalog *ebay.Catalog,
		provider *providers.ClientProvider,
		registrar *tools.Registrar,
		server *mcp.Server,
	) {
		result = &ServiceContainer{
			catalog:   catalog,
			provider:  provider,
			registrar: registrar,
			server:    server,
		}
	})
	return result, err
}

func newCatalog(cfg *config.Config) (*ebay.Catalog, error) {
	catalog, err := ebay.DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.Filter(cfg.EBay.Areas)
}

func newClientSource(p *providers.ClientProvider) schema.ClientSource {
	return p
}

func newAdapter(source schema.ClientSource) *tools.Adapter {
	return tools.NewAdapter(source)
}

func newServer(cfg *config.Config, version BuildVersion) *mcp.Server {
	v := cfg.Server.Version
	if v == "" {
		v = string(version)
	}
	return mcp.NewServer(cfg.Server.Name, v)
}
