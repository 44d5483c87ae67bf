package tools

import (
	"strings"

	"github.com/ebaymcp/ebaymcp/internal/ebay"
	"github.com/ebaymcp/ebaymcp/internal/schema"
)

const (
	privatePrefix     = "_"
	receiverParam     = "self"
	defaultAnnotation = "str"
)

// Method is the tool-facing view of one public SDK method.
type Method struct {
	Name   string
	Params []schema.ParameterSpec
	Doc    string
}

// Enumerate lists the public methods of area in declaration order.
func Enumerate(area *ebay.Area) []Method {
	methods := make([]Method, 0, len(area.Methods))
	for _, m := range area.Methods {
		if strings.HasPrefix(m.Name, privatePrefix) {
			continue
		}
		params := make([]schema.ParameterSpec, 0, len(m.Params))
		for _, p := range m.Params {
			if p.Name == receiverParam {
				continue
			}
			annotation := strings.TrimSpace(p.Type)
			if annotation == "" {
				annotation = defaultAnnotation
			}
			params = append(params, schema.ParameterSpec{
				Name:       p.Name,
				Type:       Classify(annotation),
				Annotation: annotation,
				Required:   !p.Optional,
				Positional: !p.KeywordOnly,
			})
		}
		methods = append(methods, Method{Name: m.Name, Params: params, Doc: m.Doc})
	}
	return methods
}
