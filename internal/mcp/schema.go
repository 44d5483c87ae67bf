package mcp

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/ebaymcp/ebaymcp/internal/schema"
)

const objectArgHint = "JSON object or array; a JSON-encoded string is also accepted."

// InputSchema builds the object schema a tool advertises for params.
// Optional parameters accept null alongside their type.
func InputSchema(params []schema.ParameterSpec) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(params)),
	}
	for _, p := range params {
		prop := &jsonschema.Schema{}
		if p.Required {
			prop.Type = string(p.Type)
			s.Required = append(s.Required, p.Name)
		} else {
			prop.Types = []string{string(p.Type), "null"}
		}
		if p.Type == schema.TypeObject {
			prop.Description = objectArgHint
		}
		s.Properties[p.Name] = prop
	}
	return s
}
