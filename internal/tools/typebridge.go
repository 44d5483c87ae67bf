package tools

import (
	"regexp"
	"strings"

	"github.com/ebaymcp/ebaymcp/internal/schema"
)

// nullableArm matches a trailing "| None" style union arm.
var nullableArm = regexp.MustCompile(`\s*\|\s*(None|null|nil)\s*$`)

var primitiveTypes = map[string]schema.SchemaType{
	"str":     schema.TypeString,
	"string":  schema.TypeString,
	"int":     schema.TypeInteger,
	"int32":   schema.TypeInteger,
	"int64":   schema.TypeInteger,
	"integer": schema.TypeInteger,
	"float":   schema.TypeNumber,
	"float32": schema.TypeNumber,
	"float64": schema.TypeNumber,
	"number":  schema.TypeNumber,
	"bool":    schema.TypeBoolean,
	"boolean": schema.TypeBoolean,
}

// Classify maps a declared parameter annotation to the JSON Schema type it is
// advertised as. Nullable markers are ignored; anything that is not a known
// primitive is an object.
func Classify(annotation string) schema.SchemaType {
	base := nullableArm.ReplaceAllString(strings.TrimSpace(annotation), "")
	base = strings.TrimSpace(strings.TrimPrefix(base, "*"))
	if t, ok := primitiveTypes[base]; ok {
		return t
	}
	return schema.TypeObject
}
