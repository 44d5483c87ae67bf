package tools

import (
	"fmt"

	"github.com/ebaymcp/ebaymcp/internal/schema"
)

// Registry is an in-process Host that keeps descriptors in registration
// order. The CLI uses it to list tools without starting a server.
type Registry struct {
	order []string
	tools map[string]schema.ToolDescriptor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]schema.ToolDescriptor)}
}

// Register adds desc, rejecting a name that is already taken.
func (r *Registry) Register(desc schema.ToolDescriptor) error {
	if _, ok := r.tools[desc.Name]; ok {
		return fmt.Errorf("tool %q already registered", desc.Name)
	}
	r.tools[desc.Name] = desc
	r.order = append(r.order, desc.Name)
	return nil
}

// Get returns the tool with the given name.
func (r *Registry) Get(name string) (schema.ToolDescriptor, bool) {
	desc, ok := r.tools[name]
	return desc, ok
}

// All returns every descriptor in registration order.
func (r *Registry) All() []schema.ToolDescriptor {
	list := make([]schema.ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.tools[name])
	}
	return list
}

// Len reports how many tools are registered.
func (r *Registry) Len() int {
	return len(r.order)
}
