package codegen

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/oas-schemacore/codegen/internal/diffmerge"
	"github.com/oas-schemacore/codegen/internal/docoverride"
	"github.com/oas-schemacore/codegen/internal/emit"
	"github.com/oas-schemacore/codegen/internal/fingerprint"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/normalize"
)

// targetPlan is one {api, wrapper, dts, ts_wrapper} entry resolved to the
// underlying emit.Dispatch call it drives. api and wrapper both compile
// to the Go target, dts and ts_wrapper both compile to the TypeScript
// one: spec.md's Non-goals exclude wire transport, so there is no
// separate "HTTP client" shape for wrapper/ts_wrapper to render beyond
// the typed request/response declarations api/ts_wrapper already produce.
// The four names exist to let a caller place server-side and client-side
// consumers of the same generated surface in different output
// directories; api and wrapper emit the same code, and so do dts and
// ts_wrapper except that dts carries no endpoint declarations.
type targetPlan struct {
	dir         string
	emitTarget  string
	schemasOnly bool
}

var targetPlans = map[string]targetPlan{
	TargetAPI:       {dir: TargetAPI, emitTarget: "go", schemasOnly: false},
	TargetWrapper:   {dir: TargetWrapper, emitTarget: "go", schemasOnly: false},
	TargetDTS:       {dir: TargetDTS, emitTarget: "typescript", schemasOnly: true},
	TargetTSWrapper: {dir: TargetTSWrapper, emitTarget: "typescript", schemasOnly: false},
}

// Generate runs the full spec -> parser -> IR -> optimiser -> orchestrator
// -> emitter pipeline over one already-loaded, already-dereferenced
// OpenAPI 3.1 document and returns the synthesized files and accumulated
// warnings, or one structured *Error. It writes nothing to disk, makes no
// HTTP requests, and reads files only for doc overrides when
// DocOverrideDir is set: ctx is honored only as a cancellation point between
// targets, the way a single-threaded but potentially long-running
// library call should.
func Generate(ctx context.Context, spec *openapi3.T, opt Options) (*Result, error) {
	opt, err := opt.Normalize()
	if err != nil {
		return nil, err
	}
	if opt.Strategy == diffmerge.StrategySharedBase {
		return nil, newError(InvalidConfigError, ErrorContext{}, fmt.Errorf(
			"strategy SharedBase composes multiple documents; Generate accepts one document at a time — use cmd/openapi-rpc-codegen's multi-fork discovery path instead"))
	}
	if spec == nil {
		return nil, newError(SpecResolutionError, ErrorContext{}, fmt.Errorf("nil spec"))
	}

	irSpec, warnings, err := normalize.ToIR(spec, normalize.Options{})
	if err != nil {
		return nil, newError(SchemaParseError, ErrorContext{}, err)
	}

	irSpec.Endpoints = filterByTag(irSpec.Endpoints, opt)

	if opt.DocOverrideDir != "" {
		applyDocOverrides(irSpec.Endpoints, opt.DocOverrideDir)
	}

	result := &Result{Warnings: warnings}

	for _, targetName := range opt.Targets {
		if err := ctx.Err(); err != nil {
			return nil, newError(UnknownError, ErrorContext{}, err)
		}

		plan, ok := targetPlans[targetName]
		if !ok {
			return nil, newError(InvalidConfigError, ErrorContext{}, fmt.Errorf("unknown target %q", targetName))
		}

		emitOpt := emit.Options{
			Targets:      []string{plan.emitTarget},
			ModulePerTag: opt.ModulePerTag,
			ModulePrefix: opt.BaseModulePrefix,
		}

		files, w, err := dispatch(irSpec, emitOpt, plan.schemasOnly)
		if err != nil {
			return nil, newError(ReferenceError, ErrorContext{}, err)
		}
		result.Warnings = append(result.Warnings, w...)

		for _, f := range files {
			result.Files = append(result.Files, GeneratedFile{Path: plan.dir + "/" + f.Path, Content: f.Content})
		}
	}

	return result, nil
}

// dispatch wraps emit.Dispatch, passing it a copy of the spec without
// endpoints when schemasOnly (the dts target) asks for types and
// validators only. The endpoints file is still emitted, with no
// declarations in it.
func dispatch(spec *ir.Spec, opt emit.Options, schemasOnly bool) ([]emit.File, []Warning, error) {
	if !schemasOnly {
		return emit.Dispatch(spec, opt)
	}

	schemaOnlySpec := &ir.Spec{Meta: spec.Meta, Schemas: spec.Schemas}
	return emit.Dispatch(schemaOnlySpec, opt)
}

func filterByTag(endpoints []ir.Endpoint, opt Options) []ir.Endpoint {
	if len(opt.IncludeTags) == 0 && len(opt.ExcludeTags) == 0 {
		return endpoints
	}
	out := make([]ir.Endpoint, 0, len(endpoints))
	for _, e := range endpoints {
		if opt.includesTag(e.Tag) {
			out = append(out, e)
		}
	}
	return out
}

func applyDocOverrides(endpoints []ir.Endpoint, dir string) {
	for i, e := range endpoints {
		module := e.Tag
		if module == "" {
			module = "default"
		}
		hash := fingerprint.OfEndpoint(e)
		description, ok, err := docoverride.Lookup(dir, module, e.Name, hash)
		if err != nil || !ok {
			continue
		}
		endpoints[i].Description = description
	}
}
