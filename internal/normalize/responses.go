package normalize

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/parse"
)

// successStatuses is the order responses are searched for the one the
// endpoint emitter treats as canonical: the first of these that the
// operation declares with JSON content wins. A status declared without
// content (e.g. a bare 204) yields the ()-typed response marker.
var successStatuses = []string{"200", "201", "202", "204"}

// normalizeSuccessResponse finds the operation's canonical success
// response. Unlike the strict 200-only search a minimal client generator
// gets away with, real APIs routinely answer POST with 201 or 202 and
// DELETE with a bodyless 204 — all four are legal "it worked" statuses.
func normalizeSuccessResponse(op *openapi3.Operation, basePath string) (ir.Response, []gencontext.Warning) {
	if op == nil || op.Responses == nil {
		return ir.Response{}, []gencontext.Warning{{
			Kind:   gencontext.WarningMissingSchema,
			Path:   basePath + ".responses",
			Detail: "operation has no responses",
		}}
	}

	bodyless := ""
	for _, status := range successStatuses {
		r := op.Responses.Value(status)
		if r == nil || r.Value == nil {
			continue
		}

		_, schema := findJSONContent(r.Value.Content)
		if schema == nil {
			// Declared but bodyless (e.g. 204 No Content): kept as the
			// ()-typed fallback in case a later status carries content.
			if bodyless == "" {
				bodyless = status
			}
			continue
		}

		t, warnings := parse.Parse(schema, basePath+".responses."+status)
		return ir.Response{Status: status, Type: &t}, warnings
	}

	if bodyless != "" {
		return ir.Response{Status: bodyless}, nil
	}

	return ir.Response{}, []gencontext.Warning{{
		Kind:   gencontext.WarningMissingSchema,
		Path:   basePath + ".responses",
		Detail: "no 200/201/202/204 response declared",
	}}
}
