// Package schema contains the core contracts shared across ebaymcp packages.
// Concrete implementations live in their respective packages; this package is the
// single canonical source of truth for the tool and client contracts.
package schema

import "context"

// SchemaType is the JSON Schema primitive a tool parameter is advertised as.
type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
	TypeObject  SchemaType = "object"
)

// ParameterSpec describes one parameter of a generated tool.
type ParameterSpec struct {
	Name string
	Type SchemaType
	// Annotation is the declared type text the Type was derived from.
	Annotation string
	Required   bool
	// Positional is false when the underlying method declares the
	// parameter keyword-only.
	Positional bool
}

// InvokeFunc runs a tool against a flat argument map and returns its text output.
type InvokeFunc func(ctx context.Context, args map[string]any) (string, error)

// ToolDescriptor is everything a host needs to expose one tool.
// Descriptors are built once at registration and never mutated.
type ToolDescriptor struct {
	Name        string
	Area        string
	Method      string
	Description string
	Parameters  []ParameterSpec
	Invoke      InvokeFunc
}

// RemoteClient is the shared handle every tool invocation calls through.
// Implementations must be safe for concurrent use.
type RemoteClient interface {
	Call(ctx context.Context, area, method string, positional []any, keyword map[string]any) (any, error)
}

// ClientSource hands out the shared RemoteClient, creating it on first use.
type ClientSource interface {
	Client(ctx context.Context) (RemoteClient, error)
}
