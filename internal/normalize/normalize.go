// Package normalize assembles an openapi3.T document into the core's
// ir.Spec: component schemas parsed and optimised into an ir.SchemaContext,
// and every GET/POST/PUT/PATCH/DELETE operation turned into an ir.Endpoint.
// Unlike the teacher's normalize (which rejected anything outside a narrow
// GET/POST, strict-200, no-composition subset), this pass degrades to
// warnings instead of hard errors wherever the IR has a representable
// fallback — the strict rejections only remain where the document itself
// is malformed (missing schema, empty operationId collision, and so on).
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/optimize"
)

// Options configures the OpenAPI document -> ir.Spec pass.
type Options struct {
	// BaseURLOverride replaces doc.Servers[0].URL when non-empty.
	BaseURLOverride string
}

// operationMethods are the HTTP methods carrying a schema-bearing
// operation. HEAD/OPTIONS/TRACE are skipped: none of this core's client
// targets generate a method for them.
var operationMethods = []struct {
	verb string
	get  func(*openapi3.PathItem) *openapi3.Operation
}{
	{"GET", func(p *openapi3.PathItem) *openapi3.Operation { return p.Get }},
	{"POST", func(p *openapi3.PathItem) *openapi3.Operation { return p.Post }},
	{"PUT", func(p *openapi3.PathItem) *openapi3.Operation { return p.Put }},
	{"PATCH", func(p *openapi3.PathItem) *openapi3.Operation { return p.Patch }},
	{"DELETE", func(p *openapi3.PathItem) *openapi3.Operation { return p.Delete }},
}

// ToIR converts doc into an ir.Spec, returning any warnings accumulated
// across every schema and endpoint it touched.
func ToIR(doc *openapi3.T, opt Options) (*ir.Spec, []gencontext.Warning, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("nil OpenAPI doc")
	}

	baseURL := opt.BaseURLOverride
	if baseURL == "" && len(doc.Servers) > 0 {
		baseURL = doc.Servers[0].URL
	}

	rawSchemas, warnings, err := collectComponentSchemas(doc)
	if err != nil {
		return nil, nil, err
	}

	// Bounded simple-reference inlining runs against the full, unoptimised
	// context: inlineSimpleRef only ever inspects a referenced entry's
	// shape, never its own optimised form, so there is no ordering
	// dependency between entries here.
	schemas := ir.SchemaContext{}
	for name, ns := range rawSchemas {
		schemas[name] = ir.NamedSchema{
			Name:        ns.Name,
			Description: ns.Description,
			Type:        optimize.Optimize(ns.Type, optimize.Options{SchemaContext: rawSchemas}),
		}
	}

	endpoints, epWarnings, err := collectEndpoints(doc, schemas)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, epWarnings...)

	return &ir.Spec{
		Meta:      ir.Meta{BaseURL: baseURL},
		Schemas:   schemas,
		Endpoints: endpoints,
	}, warnings, nil
}

func collectEndpoints(doc *openapi3.T, schemas ir.SchemaContext) ([]ir.Endpoint, []gencontext.Warning, error) {
	var warnings []gencontext.Warning
	var endpoints []ir.Endpoint
	seenNames := map[string]string{} // name -> method+path, for collision diagnostics

	paths := doc.Paths
	if paths == nil {
		return nil, nil, nil
	}

	keys := make([]string, 0, paths.Len())
	for k := range paths.Map() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, p := range keys {
		item := paths.Value(p)
		if item == nil {
			continue
		}

		for _, m := range operationMethods {
			op := m.get(item)
			if op == nil {
				continue
			}

			basePath := fmt.Sprintf("#/paths/%s/%s", p, strings.ToLower(m.verb))
			name := operationName(op, m.verb, p)
			if prior, ok := seenNames[name]; ok {
				return nil, nil, fmt.Errorf("operation name %q is not unique (also used by %s)", name, prior)
			}
			seenNames[name] = m.verb + " " + p

			pathParams, queryParams, pw, err := collectParams(item, op, basePath)
			if err != nil {
				return nil, nil, err
			}
			warnings = append(warnings, pw...)

			body, bw := normalizeRequestBody(op, basePath)
			warnings = append(warnings, bw...)

			resp, rw := normalizeSuccessResponse(op, basePath)
			warnings = append(warnings, rw...)

			if resp.Type != nil {
				optimized := optimize.Optimize(*resp.Type, optimize.Options{SchemaContext: schemas})
				resp.Type = &optimized
			}
			if body != nil {
				body.Type = optimize.Optimize(body.Type, optimize.Options{SchemaContext: schemas})
			}
			for i := range pathParams {
				pathParams[i].Type = optimize.Optimize(pathParams[i].Type, optimize.Options{SchemaContext: schemas})
			}
			for i := range queryParams {
				queryParams[i].Type = optimize.Optimize(queryParams[i].Type, optimize.Options{SchemaContext: schemas})
			}

			tag := ""
			if len(op.Tags) > 0 {
				tag = op.Tags[0]
			}

			endpoints = append(endpoints, ir.Endpoint{
				Name:        name,
				Tag:         tag,
				Method:      m.verb,
				Path:        p,
				OperationID: op.OperationID,
				Summary:     op.Summary,
				Description: op.Description,
				PathParams:  pathParams,
				QueryParams: queryParams,
				RequestBody: body,
				Response:    resp,
			})
		}
	}

	return endpoints, warnings, nil
}

// operationName derives the canonical, target-independent name of an
// endpoint: its explicit operationId when present, otherwise the method
// lowercased and joined to the path segments with "_", template braces
// stripped (e.g. "GET /pets/{petId}" -> "get_pets_petId"). Target
// emitters further sanitise this into a Go or TypeScript identifier; this
// layer only has to guarantee it is stable and unique.
func operationName(op *openapi3.Operation, verb, path string) string {
	if op.OperationID != "" {
		return op.OperationID
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(verb))
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}")
		if seg == "" {
			continue
		}
		b.WriteByte('_')
		b.WriteString(seg)
	}
	return b.String()
}
