// Package orchestrate assembles the full set of component schemas into
// one ordered, deterministic module: dependency sort, cycle tolerance,
// self-recursion wrapping, and per-schema emission of a paired type
// declaration and validator binding. It is the one place that drives both
// internal/emit/types and internal/emit/schema against a shared
// gencontext.Context, so the two stay in lockstep.
package orchestrate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oas-schemacore/codegen/internal/emit/schema"
	"github.com/oas-schemacore/codegen/internal/emit/types"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

// AuxDeclaration is one extracted inline type the generation context
// promoted to a synthetic name while emitting its owning schema.
type AuxDeclaration struct {
	Name          string
	TypeText      string
	ValidatorText string
}

// SchemaDeclaration is one component schema's full emission: its type,
// its validator, and whatever auxiliary declarations the context
// accumulated along the way.
type SchemaDeclaration struct {
	Name            string
	Description     string
	TypeText        string
	ValidatorText   string
	SelfReferential bool
	FlaggedCycle    bool
	Aux             []AuxDeclaration
	Warnings        []gencontext.Warning
}

// Module is the orchestrator's full output for one target language.
type Module struct {
	Target  types.Target
	Header  string
	Schemas []SchemaDeclaration
}

// Options configures one orchestration run.
type Options struct {
	Target       types.Target
	ModulePrefix string
	// HeaderLines are extra lines appended to the generated-file header,
	// e.g. identifying which fork or module this file belongs to.
	HeaderLines []string
}

// Build runs the full orchestration pass over schemas and returns the
// assembled module plus every warning collected across every schema.
// Calling Build twice on the same schemas and Options always produces an
// identical Module: ordering is a pure function of the schema names and
// their reference graph, never of map iteration.
func Build(schemas ir.SchemaContext, opt Options) (*Module, []gencontext.Warning) {
	names, flagged := order(schemas)

	available := map[string]bool{}
	for _, n := range names {
		available[n] = true
	}

	var warnings []gencontext.Warning
	mod := &Module{Target: opt.Target, Header: header(opt)}

	for _, name := range names {
		ns := schemas[name]
		decl, w := buildSchema(ns, opt, available, flagged[name])
		warnings = append(warnings, w...)
		mod.Schemas = append(mod.Schemas, decl)
	}

	return mod, warnings
}

func buildSchema(ns ir.NamedSchema, opt Options, available map[string]bool, cycleFlagged bool) (SchemaDeclaration, []gencontext.Warning) {
	ctx := gencontext.New("#/components/schemas/"+ns.Name, available, opt.ModulePrefix)
	ctx.InsideComponentSchemas = true
	if containsSelfRef(ns.Type, ns.Name) {
		ctx.SelfRefName = ns.Name
	}

	typeEmitter := &types.Emitter{Target: opt.Target, Ctx: ctx}
	schemaEmitter := &schema.Emitter{Target: opt.Target, Ctx: ctx}

	typeText := typeEmitter.Lower(ns.Type, false)
	validatorText := schemaEmitter.Lower(ns.Type, false)

	if ctx.SelfRefName != "" {
		validatorText = fixedPoint(opt.Target, validatorText)
	}

	var aux []AuxDeclaration
	for _, extracted := range ctx.ExtractedTypes() {
		aux = append(aux, buildAux(extracted, typeEmitter, schemaEmitter))
	}

	return SchemaDeclaration{
		Name:            ns.Name,
		Description:     ns.Description,
		TypeText:        typeText,
		ValidatorText:   validatorText,
		SelfReferential: ctx.SelfRefName != "",
		FlaggedCycle:    cycleFlagged,
		Aux:             aux,
		Warnings:        ctx.Warnings(),
	}, ctx.Warnings()
}

// buildAux renders one extracted entry's type and validator bodies.
// Unboxed variants need the two dedicated renderers (the call-site
// Lower() path only ever returns a bare reference to an already-decided
// extraction, to avoid re-entering the discriminability decision tree);
// everything else is just Lower against the entry's own IR.
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

// fixedPoint wraps a self-referential schema's validator body in the
// recursion combinator its target expects: z.lazy for Zod, gs.Lazy for
// goskema. Inner Reference(self) occurrences are already lowered to the
// same combinator via Ctx.SelfRefName, so this only wraps the schema's own
// top-level binding — the fixed-point combinator spec.md §4.6 describes,
// "keyed by the schema name" via the binding it is assigned to at the
// call site rather than by the combinator text itself.
func fixedPoint(target types.Target, body string) string {
	if target == schema.TargetTypeScript {
		return fmt.Sprintf("z.lazy(() => %s)", body)
	}
	return fmt.Sprintf("gs.Lazy(func() gs.Schema { return %s })", strings.TrimSpace(body))
}

func header(opt Options) string {
	var b strings.Builder
	b.WriteString("Code generated by the schema compilation core. DO NOT EDIT.\n")
	lines := append([]string{}, opt.HeaderLines...)
	sort.Strings(lines)
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}
