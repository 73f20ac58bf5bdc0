package normalize

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/parse"
)

// normalizeRequestBody parses an operation's JSON request body, if any.
// A body is entirely optional — GET operations rarely carry one, and
// nothing downstream requires it.
func normalizeRequestBody(op *openapi3.Operation, basePath string) (*ir.Body, []gencontext.Warning) {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, nil
	}

	rb := op.RequestBody.Value
	_, schema := findJSONContent(rb.Content)
	if schema == nil {
		return nil, []gencontext.Warning{{
			Kind:   gencontext.WarningFallbackToJSON,
			Path:   basePath + ".requestBody",
			Detail: "requestBody has no JSON content and was dropped",
		}}
	}

	t, warnings := parse.Parse(schema, basePath+".requestBody")
	return &ir.Body{Required: rb.Required, Type: t}, warnings
}

// findJSONContent locates the content entry that is effectively JSON,
// tolerating parameterised media types such as "application/json;
// charset=utf-8".
func findJSONContent(content openapi3.Content) (string, *openapi3.SchemaRef) {
	if content == nil {
		return "", nil
	}
	if v, ok := content["application/json"]; ok && v != nil && v.Schema != nil {
		return "application/json", v.Schema
	}

	var candidates []string
	for k, v := range content {
		if v == nil || v.Schema == nil {
			continue
		}
		if len(k) >= len("application/json") && k[:len("application/json")] == "application/json" {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}
	sort.Strings(candidates)
	k := candidates[0]
	return k, content[k].Schema
}
