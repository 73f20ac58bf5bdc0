package normalize

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/parse"
)

// collectParams merges the path item's and operation's parameter lists
// (operation entries win on name collision, the same override rule
// OpenAPI itself defines) and splits the result into path and query
// parameters. header and cookie parameters have no home in ir.Endpoint, so
// rather than rejecting the document outright they are dropped with a
// warning — no client transport this core targets threads them through.
func collectParams(item *openapi3.PathItem, op *openapi3.Operation, basePath string) ([]ir.Param, []ir.Param, []gencontext.Warning, error) {
	var warnings []gencontext.Warning
	merged := map[string]*openapi3.ParameterRef{}

	addAll := func(params openapi3.Parameters) {
		for _, pr := range params {
			if pr == nil || pr.Value == nil {
				continue
			}
			merged[pr.Value.In+":"+pr.Value.Name] = pr
		}
	}
	if item != nil {
		addAll(item.Parameters)
	}
	if op != nil {
		addAll(op.Parameters)
	}

	var pathParams, queryParams []ir.Param
	for key, pr := range merged {
		p := pr.Value
		path := basePath + ".parameters." + key

		if p.Schema == nil {
			return nil, nil, nil, fmt.Errorf("parameter %q in %q must define schema", p.Name, p.In)
		}

		switch p.In {
		case openapi3.ParameterInPath:
			t, w := parse.Parse(p.Schema, path)
			warnings = append(warnings, w...)
			pathParams = append(pathParams, ir.Param{Name: p.Name, Required: true, Type: t})
		case openapi3.ParameterInQuery:
			t, w := parse.Parse(p.Schema, path)
			warnings = append(warnings, w...)
			queryParams = append(queryParams, ir.Param{Name: p.Name, Required: p.Required, Type: t})
		default:
			warnings = append(warnings, gencontext.Warning{
				Kind:   gencontext.WarningFallbackToJSON,
				Path:   path,
				Detail: fmt.Sprintf("%s parameter %q is not represented in the IR and was dropped", p.In, p.Name),
			})
		}
	}

	sort.Slice(pathParams, func(i, j int) bool { return pathParams[i].Name < pathParams[j].Name })
	sort.Slice(queryParams, func(i, j int) bool { return queryParams[i].Name < queryParams[j].Name })

	return pathParams, queryParams, warnings, nil
}
