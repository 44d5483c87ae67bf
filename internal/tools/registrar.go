package tools

import (
	"fmt"
	"strings"

	"github.com/ebaymcp/ebaymcp/internal/ebay"
	"github.com/ebaymcp/ebaymcp/internal/schema"
)

// Host accepts tool registrations. Hosts reject duplicate names.
type Host interface {
	Register(desc schema.ToolDescriptor) error
}

// Registrar generates one tool per public method of every catalog area.
type Registrar struct {
	catalog *ebay.Catalog
	adapter *Adapter
}

func NewRegistrar(catalog *ebay.Catalog, adapter *Adapter) *Registrar {
	return &Registrar{catalog: catalog, adapter: adapter}
}

// RegisterAll registers every generated tool with host and returns how many
// were registered. Call it once per host.
func (r *Registrar) RegisterAll(host Host) (int, error) {
	count := 0
	for _, area := range r.catalog.Areas() {
		for _, m := range Enumerate(area) {
			desc := schema.ToolDescriptor{
				Name:        ToolName(area.ID, m.Name),
				Area:        area.ID,
				Method:      m.Name,
				Description: Describe(m),
				Parameters:  m.Params,
				Invoke:      r.adapter.Build(area.ID, m.Name, m.Params),
			}
			if err := host.Register(desc); err != nil {
				return count, fmt.Errorf("register %s: %w", desc.Name, err)
			}
			count++
		}
	}
	return count, nil
}

// ToolName is the public name of area.method.
func ToolName(area, method string) string {
	return area + "_" + method
}

// Describe composes a tool description from the method doc and a
// Parameters block listing each parameter's type and whether it is required.
func Describe(m Method) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(m.Doc))
	if len(m.Params) == 0 {
		return b.String()
	}
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString("Parameters:")
	for _, p := range m.Params {
		need := "optional"
		if p.Required {
			need = "required"
		}
		fmt.Fprintf(&b, "\n  %s (%s, %s)", p.Name, p.Type, need)
	}
	return b.String()
}
