// Package endpoint is the per-operation counterpart to internal/orchestrate:
// it drives internal/emit/types and internal/emit/schema against one
// endpoint's request body, path/query parameters and response, and derives
// the handler signature the emitted client or server exposes for it.
// internal/normalize has already resolved operation naming and picked the
// canonical {200,201,202,204} response; this package only lowers the IR
// it was handed.
package endpoint

import (
	"fmt"
	"strings"

	"github.com/oas-schemacore/codegen/internal/emit/schema"
	"github.com/oas-schemacore/codegen/internal/emit/types"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// AuxDeclaration is one inline type promoted to a synthetic name while
// emitting an endpoint's request or response — the same notion as
// internal/orchestrate.AuxDeclaration, kept as its own type so this
// package has no dependency on the component-schema orchestrator.
type AuxDeclaration struct {
	Name          string
	TypeText      string
	ValidatorText string
}

// Declaration is one endpoint's full emission.
type Declaration struct {
	Name   string // operation name, from ir.Endpoint.Name
	Tag    string
	Method string
	Path   string

	HasRequestBody       bool
	RequestBodyRequired  bool
	RequestTypeName      string
	RequestTypeText      string
	RequestValidatorText string

	// PathParams/QueryParams carry one entry per parameter: the Go/TS type
	// text for that single parameter, not a synthesized struct — callers
	// assemble their own parameter list or struct shape from these,
	// matching how differently Go and TypeScript client signatures spell
	// "a handful of named parameters."
	PathParams  []ParamDeclaration
	QueryParams []ParamDeclaration

	// PathTypeName/QueryTypeName name the Go structs a file-assembly layer
	// derives from PathParams/QueryParams; empty when there is nothing to
	// name. ParamsTypeName is the TypeScript equivalent: one merged
	// interface covering both, matching HandlerSignature's single
	// "params: XParams" argument.
	PathTypeName   string
	QueryTypeName  string
	ParamsTypeName string

	// HasResponse is false for the ()-typed response marker: an endpoint
	// whose canonical status was declared without JSON content.
	HasResponse           bool
	ResponseStatus        string
	ResponseTypeName      string
	ResponseTypeText      string
	ResponseValidatorText string

	HandlerSignature string

	Aux      []AuxDeclaration
	Warnings []gencontext.Warning
}

// ParamDeclaration is one path or query parameter, lowered.
type ParamDeclaration struct {
	Name     string
	Required bool
	TypeText string
}

// Options configures how one endpoint is emitted.
type Options struct {
	Target           types.Target
	ModulePrefix     string
	AvailableSchemas map[string]bool
}

// Build lowers e's request body, parameters and response into a full
// Declaration, and derives its handler signature.
func Build(e ir.Endpoint, opt Options) Declaration {
	ctx := gencontext.New("#/paths"+e.Path+"/"+strings.ToLower(e.Method), opt.AvailableSchemas, opt.ModulePrefix)
	typeEmitter := &types.Emitter{Target: opt.Target, Ctx: ctx}
	schemaEmitter := &schema.Emitter{Target: opt.Target, Ctx: ctx}

	opName := operationIdent(e.Name, opt.Target)

	decl := Declaration{
		Name:   e.Name,
		Tag:    e.Tag,
		Method: e.Method,
		Path:   e.Path,
	}

	if e.RequestBody != nil {
		decl.HasRequestBody = true
		decl.RequestBodyRequired = e.RequestBody.Required
		decl.RequestTypeName = opName + "Body"
		decl.RequestTypeText = typeEmitter.Lower(e.RequestBody.Type, false)
		decl.RequestValidatorText = schemaEmitter.Lower(e.RequestBody.Type, false)
	}

	for _, p := range e.PathParams {
		decl.PathParams = append(decl.PathParams, ParamDeclaration{
			Name: p.Name, Required: p.Required, TypeText: typeEmitter.Lower(p.Type, true),
		})
	}
	for _, p := range e.QueryParams {
		decl.QueryParams = append(decl.QueryParams, ParamDeclaration{
			Name: p.Name, Required: p.Required, TypeText: typeEmitter.Lower(p.Type, true),
		})
	}
	if len(decl.PathParams) > 0 {
		decl.PathTypeName = opName + "Path"
	}
	if len(decl.QueryParams) > 0 {
		decl.QueryTypeName = opName + "Query"
	}
	if len(decl.PathParams) > 0 || len(decl.QueryParams) > 0 {
		decl.ParamsTypeName = opName + "Params"
	}

	decl.ResponseStatus = e.Response.Status
	if e.Response.Type != nil {
		decl.HasResponse = true
		decl.ResponseTypeName = opName + "Result" // avoid colliding with a "Response" helper type
		decl.ResponseTypeText = typeEmitter.Lower(*e.Response.Type, false)
		decl.ResponseValidatorText = schemaEmitter.Lower(*e.Response.Type, false)
	}

	for _, extracted := range ctx.ExtractedTypes() {
		decl.Aux = append(decl.Aux, buildAux(extracted, typeEmitter, schemaEmitter))
	}
	decl.Warnings = ctx.Warnings()

	decl.HandlerSignature = handlerSignature(opName, decl, opt.Target)

	return decl
}

func buildAux(extracted gencontext.ExtractedType, typeEmitter *types.Emitter, schemaEmitter *schema.Emitter) AuxDeclaration {
	if extracted.Unboxed {
		memberTypeText := make([]string, len(extracted.IR.Members))
		for i, m := range extracted.IR.Members {
			memberTypeText[i] = typeEmitter.Lower(m, true)
		}
		return AuxDeclaration{
			Name:          extracted.SyntheticName,
			TypeText:      typeEmitter.RenderUnboxedVariantType(extracted.IR.Members),
			ValidatorText: schemaEmitter.RenderUnboxedVariantBody(extracted.SyntheticName, extracted.IR.Members, memberTypeText),
		}
	}
	return AuxDeclaration{
		Name:          extracted.SyntheticName,
		TypeText:      typeEmitter.Lower(extracted.IR, false),
		ValidatorText: schemaEmitter.Lower(extracted.IR, false),
	}
}

// operationIdent sanitises the operation name into a target identifier:
// PascalCase for Go (matching exported handler/type names), camelCase for
// TypeScript (matching client method names).
func operationIdent(name string, target types.Target) string {
	pascal := types.GoPublicIdent(name)
	if pascal == "" {
		pascal = "Op"
	}
	if target == schema.TargetTypeScript {
		return strings.ToLower(pascal[:1]) + pascal[1:]
	}
	return pascal
}

// handlerSignature renders the function/handler declaration's signature
// text: its shape depends on whether a body is required and on the
// response shape, per spec.md §4.7.
func handlerSignature(opName string, d Declaration, target types.Target) string {
	if target == schema.TargetTypeScript {
		params := make([]string, 0, 2)
		if len(d.PathParams) > 0 || len(d.QueryParams) > 0 {
			params = append(params, "params: "+opName+"Params")
		}
		if d.HasRequestBody {
			body := "body: " + d.RequestTypeName
			if !d.RequestBodyRequired {
				body = "body?: " + d.RequestTypeName
			}
			params = append(params, body)
		}
		ret := "Promise<void>"
		if d.HasResponse {
			ret = fmt.Sprintf("Promise<%s>", d.ResponseTypeName)
		}
		return fmt.Sprintf("async function %s(%s): %s", opName, strings.Join(params, ", "), ret)
	}

	params := []string{"ctx context.Context"}
	if len(d.PathParams) > 0 {
		params = append(params, "path "+opName+"Path")
	}
	if len(d.QueryParams) > 0 {
		params = append(params, "query "+opName+"Query")
	}
	if d.HasRequestBody {
		body := d.RequestTypeName
		if !d.RequestBodyRequired {
			body = "*" + body
		}
		params = append(params, "body "+body)
	}
	ret := "error"
	if d.HasResponse {
		ret = fmt.Sprintf("(%s, error)", d.ResponseTypeName)
	}
	return fmt.Sprintf("func handle%s(%s) %s", opName, strings.Join(params, ", "), ret)
}
