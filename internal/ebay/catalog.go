package ebay

import (
	"embed"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

// Areas is the API area table in registration order. Each ID names an
// embedded catalog file catalog/<id>.yaml.
var Areas = []string{
	"buy_browse",
	"sell_inventory",
	"sell_fulfillment",
	"sell_account",
	"sell_finances",
	"sell_marketing",
	"sell_feed",
	"commerce_taxonomy",
}

// Where a parameter travels in the HTTP request.
const (
	InPath   = "path"
	InQuery  = "query"
	InHeader = "header"
	InBody   = "body"
)

// Param declares one argument of an SDK method.
type Param struct {
	Name string `yaml:"name"`
	// Type is the declared annotation, e.g. "string", "*int", "[]string".
	Type string `yaml:"type"`
	// Optional marks a parameter with a default; omitted optionals are not sent.
	Optional    bool   `yaml:"optional"`
	KeywordOnly bool   `yaml:"keywordOnly"`
	In          string `yaml:"in"`
	// Wire is the query key or header name when it differs from Name.
	Wire string `yaml:"wire"`
}

// WireName returns the name the parameter is sent under.
func (p Param) WireName() string {
	if p.Wire != "" {
		return p.Wire
	}
	return p.Name
}

// Method is one SDK operation backed by a single REST endpoint.
type Method struct {
	Name   string  `yaml:"name"`
	Doc    string  `yaml:"doc"`
	HTTP   string  `yaml:"http"`
	Params []Param `yaml:"params"`
}

// Route splits the "VERB /path" declaration.
func (m Method) Route() (verb, path string) {
	verb, path, _ = strings.Cut(strings.TrimSpace(m.HTTP), " ")
	return verb, strings.TrimSpace(path)
}

// Param returns the declared parameter with the given name.
func (m Method) Param(name string) (Param, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Area is one eBay API family, e.g. the Browse API.
type Area struct {
	ID       string `yaml:"area"`
	Title    string `yaml:"title"`
	BasePath string `yaml:"basePath"`
	// Host replaces the "api" subdomain for APIs served elsewhere (apiz).
	Host    string   `yaml:"host"`
	Methods []Method `yaml:"methods"`
}

// Method returns the method with the given name.
func (a *Area) Method(name string) (*Method, bool) {
	for i := range a.Methods {
		if a.Methods[i].Name == name {
			return &a.Methods[i], true
		}
	}
	return nil, false
}

// Catalog is the parsed, immutable set of API areas.
type Catalog struct {
	areas []*Area
	byID  map[string]*Area
}

// Areas returns the catalog's areas in table order.
func (c *Catalog) Areas() []*Area {
	out := make([]*Area, len(c.areas))
	copy(out, c.areas)
	return out
}

// Area returns the area with the given ID.
func (c *Catalog) Area(id string) (*Area, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Filter returns a catalog restricted to ids, keeping table order.
// An empty ids list keeps every area.
func (c *Catalog) Filter(ids []string) (*Catalog, error) {
	if len(ids) == 0 {
		return c, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("unknown API area %q", id)
		}
		want[id] = true
	}
	filtered := make([]*Area, 0, len(want))
	for _, a := range c.areas {
		if want[a.ID] {
			filtered = append(filtered, a)
		}
	}
	return NewCatalog(filtered...), nil
}

// NewCatalog builds a catalog from already-parsed areas.
func NewCatalog(areas ...*Area) *Catalog {
	c := &Catalog{areas: areas, byID: make(map[string]*Area, len(areas))}
	for _, a := range areas {
		c.byID[a.ID] = a
	}
	return c
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	areas := make([]*Area, 0, len(Areas))
	for _, id := range Areas {
		data, err := catalogFS.ReadFile("catalog/" + id + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", id, err)
		}
		area, err := ParseArea(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", id, err)
		}
		if area.ID != id {
			return nil, fmt.Errorf("catalog %s declares area %q", id, area.ID)
		}
		areas = append(areas, area)
	}
	return NewCatalog(areas...), nil
})

// DefaultCatalog returns the embedded catalog of every area in Areas.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// ParseArea decodes and validates one YAML area catalog.
func ParseArea(data []byte) (*Area, error) {
	var area Area
	if err := yaml.Unmarshal(data, &area); err != nil {
		return nil, err
	}
	if area.ID == "" {
		return nil, fmt.Errorf("missing area id")
	}
	seen := make(map[string]bool, len(area.Methods))
	for i := range area.Methods {
		m := &area.Methods[i]
		if seen[m.Name] {
			return nil, fmt.Errorf("duplicate method %q", m.Name)
		}
		seen[m.Name] = true
		if err := validateMethod(m); err != nil {
			return nil, fmt.Errorf("method %q: %w", m.Name, err)
		}
	}
	return &area, nil
}

func validateMethod(m *Method) error {
	if m.Name == "" {
		return fmt.Errorf("missing name")
	}
	verb, path := m.Route()
	switch verb {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
	default:
		return fmt.Errorf("unsupported HTTP verb %q", verb)
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with /", path)
	}

	names := make(map[string]bool, len(m.Params))
	bodies := 0
	for i := range m.Params {
		p := &m.Params[i]
		if names[p.Name] {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		names[p.Name] = true
		if p.In == "" {
			p.In = InQuery
		}
		switch p.In {
		case InPath:
			if p.Optional {
				return fmt.Errorf("path parameter %q cannot be optional", p.Name)
			}
			if !strings.Contains(path, "{"+p.Name+"}") {
				return fmt.Errorf("path parameter %q not in %q", p.Name, path)
			}
		case InBody:
			bodies++
		case InQuery, InHeader:
		default:
			return fmt.Errorf("parameter %q: unknown location %q", p.Name, p.In)
		}
	}
	if bodies > 1 {
		return fmt.Errorf("more than one body parameter")
	}
	return nil
}
