package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

func newEmitter(target Target, path string) (*Emitter, *gencontext.Context) {
	ctx := gencontext.New(path, map[string]bool{"Note": true, "Tag": true, "Folder": true}, "")
	return &Emitter{Target: target, Ctx: ctx}, ctx
}

func TestPrimitivesBothTargets(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	tsE, _ := newEmitter(TargetTypeScript, "x")

	assert.Equal(t, "gs.String()", goE.Lower(ir.String(nil, nil, ""), false))
	assert.Equal(t, "gs.Integer()", goE.Lower(ir.Integer(nil, nil, nil), false))
	assert.Equal(t, "gs.Boolean()", goE.Lower(ir.Boolean(), false))
	assert.Equal(t, "gs.Any()", goE.Lower(ir.Unknown(), false))

	assert.Equal(t, "z.string()", tsE.Lower(ir.String(nil, nil, ""), false))
	assert.Equal(t, "z.number().int()", tsE.Lower(ir.Integer(nil, nil, nil), false))
	assert.Equal(t, "z.boolean()", tsE.Lower(ir.Boolean(), false))
	assert.Equal(t, "z.unknown()", tsE.Lower(ir.Unknown(), false))
}

func TestStringConstraintsChainOnBothTargets(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	tsE, _ := newEmitter(TargetTypeScript, "x")
	minLen, maxLen := 2, 10
	s := ir.String(&minLen, &maxLen, "^[a-z]+$")

	assert.Equal(t, `gs.String().MinLen(2).MaxLen(10).Pattern("^[a-z]+$")`, goE.Lower(s, false))
	assert.Equal(t, "z.string().min(2).max(10).regex(/^[a-z]+$/)", tsE.Lower(s, false))
}

// TestPetObjectSeedScenario covers spec.md §8 scenario 1's validator half:
// field("id"), field("name"), field_or("tag", nullable_as_option(string), None).
func TestPetObjectSeedScenario(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "Pet")
	pet := ir.Object([]ir.Property{
		{Name: "id", Type: ir.Integer(nil, nil, nil), Required: true},
		{Name: "name", Type: ir.String(nil, nil, ""), Required: true},
		{Name: "tag", Type: ir.String(nil, nil, ""), Required: false},
	}, nil)

	got := goE.Lower(pet, false)
	assert.Contains(t, got, `Field("id", gs.Integer()).Required()`)
	assert.Contains(t, got, `Field("name", gs.String()).Required()`)
	assert.Contains(t, got, `Field("tag", gs.NullableAsOption(gs.String())).Optional()`)
}

func TestPetObjectSeedScenarioTypeScript(t *testing.T) {
	tsE, _ := newEmitter(TargetTypeScript, "Pet")
	pet := ir.Object([]ir.Property{
		{Name: "id", Type: ir.Integer(nil, nil, nil), Required: true},
		{Name: "tag", Type: ir.String(nil, nil, ""), Required: false},
	}, nil)

	got := tsE.Lower(pet, false)
	assert.Contains(t, got, "id: z.number().int()")
	assert.Contains(t, got, "tag: z.string().nullable().optional()")
}

func TestOptionalAlreadyNullableFieldDoesNotDoubleWrap(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	tsE, _ := newEmitter(TargetTypeScript, "x")
	obj := ir.Object([]ir.Property{
		{Name: "note", Type: ir.Option(ir.Reference("Note")), Required: false},
	}, nil)

	assert.Contains(t, goE.Lower(obj, false), `Field("note", gs.NullableAsOption(NoteSchema)).Optional()`)
	assert.Contains(t, tsE.Lower(obj, false), "note: NoteSchema.nullable().optional()")
}

func TestOptionalObjectFieldUsesOptionWrapperNotNullableAsOption(t *testing.T) {
	goE, ctx := newEmitter(TargetGo, "x")
	inner := ir.Object([]ir.Property{{Name: "x", Type: ir.Boolean(), Required: true}}, nil)
	obj := ir.Object([]ir.Property{{Name: "addr", Type: inner, Required: false}}, nil)

	got := goE.Lower(obj, false)
	require.Len(t, ctx.ExtractedTypes(), 1)
	innerName := ctx.ExtractedTypes()[0].SyntheticName + "Schema"
	assert.Contains(t, got, "gs.Option("+innerName+")")
	assert.NotContains(t, got, "gs.NullableAsOption("+innerName)
}

func TestEmptyObjectIsEmptyRecord(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	tsE, _ := newEmitter(TargetTypeScript, "x")
	empty := ir.Object(nil, nil)
	assert.Equal(t, "gs.Record(gs.Any())", goE.Lower(empty, false))
	assert.Equal(t, "z.record(z.unknown())", tsE.Lower(empty, false))
}

func TestObjectWithAdditionalPropertiesIsTypedDictRecord(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	v := ir.Integer(nil, nil, nil)
	dict := ir.Object(nil, &v)
	assert.Equal(t, "gs.Record(gs.Integer())", goE.Lower(dict, false))
}

func TestInlineObjectLooksUpTypeEmitterExtraction(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "Pet.address")
	inlineObj := ir.Object([]ir.Property{{Name: "city", Type: ir.String(nil, nil, ""), Required: true}}, nil)

	// Simulate the type emitter having already extracted this shape.
	ctx.Extract(inlineObj, "PetAddress", false)

	got := e.Lower(inlineObj, true)
	assert.Equal(t, "PetAddressSchema", got)
	require.Len(t, ctx.ExtractedTypes(), 1)
}

func TestInlineObjectFallsBackToExtractWhenNotPreviouslyExtracted(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "Pet.address")
	inlineObj := ir.Object([]ir.Property{{Name: "city", Type: ir.String(nil, nil, ""), Required: true}}, nil)

	got := e.Lower(inlineObj, true)
	require.Len(t, ctx.ExtractedTypes(), 1)
	assert.Equal(t, ctx.ExtractedTypes()[0].SyntheticName+"Schema", got)
}

func TestSelfReferentialFolderSeedScenario(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "Folder")
	ctx.SelfRefName = "Folder"

	folder := ir.Object([]ir.Property{
		{Name: "id", Type: ir.String(nil, nil, ""), Required: true},
		{Name: "parent", Type: ir.Option(ir.Reference("Folder")), Required: false},
	}, nil)

	got := e.Lower(folder, false)
	assert.Contains(t, got, "gs.Lazy(func() gs.Schema { return FolderSchema })")
}

func TestReferenceQualifiedWithModulePrefixWhenOutOfScope(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "x")
	ctx.ModulePrefix = "base"
	got := e.Lower(ir.Reference("Widget"), false)
	assert.Equal(t, "base.WidgetSchema", got)
}

// TestNullableNoteSeedScenario covers spec.md §8 scenario 3's validator
// half: nullable_as_option(Note.schema).
func TestNullableNoteSeedScenario(t *testing.T) {
	e, _ := newEmitter(TargetGo, "note")
	u := ir.Union([]ir.Type{ir.Reference("Note"), ir.Null()})
	got := e.Lower(u, true)
	assert.Equal(t, "gs.NullableAsOption(NoteSchema)", got)
}

// TestArrayOrElementUnionSeedScenario covers spec.md §8 scenario 4.
func TestArrayOrElementUnionSeedScenario(t *testing.T) {
	e, _ := newEmitter(TargetGo, "tags")
	u := ir.Union([]ir.Type{
		ir.Reference("Tag"),
		ir.Array(ir.Reference("Tag"), nil, nil, false),
	})
	got := e.Lower(u, true)
	assert.Equal(t, "gs.Array(TagSchema)", got)
}

// TestEnumShapeSeedScenario covers spec.md §8 scenario 2's validator half:
// a union of four string-literal schemas.
func TestEnumShapeSeedScenario(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "visibility")
	tsE, _ := newEmitter(TargetTypeScript, "visibility")
	u := ir.Union([]ir.Type{
		ir.StringLiteral("public"), ir.StringLiteral("home"),
		ir.StringLiteral("followers"), ir.StringLiteral("specified"),
	})
	assert.Equal(t, `gs.OneOf(gs.Literal("public"), gs.Literal("home"), gs.Literal("followers"), gs.Literal("specified"))`, goE.Lower(u, true))
	assert.Equal(t, `z.union([z.literal("public"), z.literal("home"), z.literal("followers"), z.literal("specified")])`, tsE.Lower(u, true))
}

// TestDiscriminableMixedUnionSeedScenario covers spec.md §8 scenario 5:
// the validator side references the same extracted entry the type
// emitter would have produced, and RenderUnboxedVariantBody emits three
// shape-tagged branches.
func TestDiscriminableMixedUnionSeedScenario(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "value")
	u := ir.Union([]ir.Type{ir.String(nil, nil, ""), ir.Integer(nil, nil, nil), ir.Boolean()})

	got := e.Lower(u, true)
	require.Len(t, ctx.ExtractedTypes(), 1)
	entry := ctx.ExtractedTypes()[0]
	assert.True(t, entry.Unboxed)
	assert.Equal(t, entry.SyntheticName+"Schema", got)

	body := e.RenderUnboxedVariantBody(entry.SyntheticName, u.Members, []string{"string", "int64", "bool"})
	assert.Contains(t, body, "gs.Shape(gs.String(), func(v string) "+entry.SyntheticName+" { return "+entry.SyntheticName+"{String: &v} })")
	assert.Contains(t, body, "gs.Shape(gs.Integer(), func(v int64) "+entry.SyntheticName+" { return "+entry.SyntheticName+"{Integer: &v} })")
	assert.Contains(t, body, "gs.Shape(gs.Boolean(), func(v bool) "+entry.SyntheticName+" { return "+entry.SyntheticName+"{Boolean: &v} })")
}

func TestNonDiscriminableUnionFallsBackAndWarns(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "value")
	u := ir.Union([]ir.Type{
		ir.Reference("Note"),
		ir.Object([]ir.Property{{Name: "x", Type: ir.Boolean(), Required: true}}, nil),
	})
	got := e.Lower(u, true)

	require.Len(t, ctx.Warnings(), 1)
	assert.Equal(t, gencontext.WarningComplexUnionSimplified, ctx.Warnings()[0].Kind)
	require.Len(t, ctx.ExtractedTypes(), 1)
	assert.Equal(t, ctx.ExtractedTypes()[0].SyntheticName+"Schema", got)
}

func TestIntersectionAllReferencesOverridesToLastMember(t *testing.T) {
	e, _ := newEmitter(TargetGo, "x")
	got := e.Lower(ir.Intersection([]ir.Type{ir.Reference("Note"), ir.Reference("Tag")}), false)
	assert.Equal(t, "TagSchema", got)
}

func TestIntersectionAllObjectsMergeFields(t *testing.T) {
	e, _ := newEmitter(TargetGo, "x")
	a := ir.Object([]ir.Property{{Name: "a", Type: ir.Boolean(), Required: true}}, nil)
	b := ir.Object([]ir.Property{{Name: "b", Type: ir.Boolean(), Required: true}}, nil)
	got := e.Lower(ir.Intersection([]ir.Type{a, b}), false)
	assert.Contains(t, got, `Field("a", gs.Boolean()).Required()`)
	assert.Contains(t, got, `Field("b", gs.Boolean()).Required()`)
}

func TestIntersectionMixedWarnsAndMergesObjectPartsOnly(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "x")
	obj := ir.Object([]ir.Property{{Name: "a", Type: ir.Boolean(), Required: true}}, nil)
	got := e.Lower(ir.Intersection([]ir.Type{obj, ir.Reference("Note")}), false)

	require.Len(t, ctx.Warnings(), 1)
	assert.Equal(t, gencontext.WarningIntersectionNotFullySupported, ctx.Warnings()[0].Kind)
	assert.Contains(t, got, `Field("a", gs.Boolean()).Required()`)
}

func TestExtractedTypeAndSchemaTablesShareOneContext(t *testing.T) {
	ctx := gencontext.New("shared", map[string]bool{}, "")
	typeSide := struct{ Ctx *gencontext.Context }{ctx}
	_ = typeSide

	schemaE := &Emitter{Target: TargetGo, Ctx: ctx}
	obj := ir.Object([]ir.Property{{Name: "x", Type: ir.Boolean(), Required: true}}, nil)

	name := ctx.Extract(obj, "Shared", false)
	got := schemaE.Lower(obj, true)
	assert.Equal(t, name+"Schema", got)
	require.Len(t, ctx.ExtractedTypes(), 1)
}
