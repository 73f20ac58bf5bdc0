package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/parse"
)

// collectComponentSchemas parses every entry of components.schemas into the
// IR, in alphabetical order (kin-openapi's openapi3.Schemas is a plain Go
// map, so there is no document order to preserve at this level — the same
// limitation internal/parse documents for property order, see DESIGN.md).
func collectComponentSchemas(doc *openapi3.T) (ir.SchemaContext, []gencontext.Warning, error) {
	out := ir.SchemaContext{}
	var warnings []gencontext.Warning

	if doc == nil {
		return nil, nil, fmt.Errorf("nil OpenAPI doc")
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return out, nil, nil // allowed: empty
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, nil, fmt.Errorf("components.schemas contains empty name")
		}

		sr := doc.Components.Schemas[name]
		if sr == nil {
			return nil, nil, fmt.Errorf("components.schemas.%s is nil", name)
		}

		path := "#/components/schemas/" + name
		t, w := parse.Parse(sr, path)
		warnings = append(warnings, w...)

		var description string
		if sr.Value != nil {
			description = sr.Value.Description
		}

		out[name] = ir.NamedSchema{Name: name, Description: description, Type: t}
	}

	return out, warnings, nil
}
