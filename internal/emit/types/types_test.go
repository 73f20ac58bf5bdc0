package types

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

	assert.Equal(t, "string", goE.Lower(ir.String(nil, nil, ""), false))
	assert.Equal(t, "int64", goE.Lower(ir.Integer(nil, nil, nil), false))
	assert.Equal(t, "float64", goE.Lower(ir.Number(nil, nil, nil), false))
	assert.Equal(t, "bool", goE.Lower(ir.Boolean(), false))
	assert.Equal(t, "any", goE.Lower(ir.Unknown(), false))

	assert.Equal(t, "string", tsE.Lower(ir.String(nil, nil, ""), false))
	assert.Equal(t, "number", tsE.Lower(ir.Integer(nil, nil, nil), false))
	assert.Equal(t, "boolean", tsE.Lower(ir.Boolean(), false))
	assert.Equal(t, "unknown", tsE.Lower(ir.Unknown(), false))
}

func TestArrayLowering(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	tsE, _ := newEmitter(TargetTypeScript, "x")

	arr := ir.Array(ir.String(nil, nil, ""), nil, nil, false)
	assert.Equal(t, "[]string", goE.Lower(arr, false))
	assert.Equal(t, "string[]", tsE.Lower(arr, false))
}

// TestPetObjectSeedScenario covers spec.md §8 scenario 1.
func TestPetObjectSeedScenario(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "Pet")
	pet := ir.Object([]ir.Property{
		{Name: "id", Type: ir.Integer(nil, nil, nil), Required: true},
		{Name: "name", Type: ir.String(nil, nil, ""), Required: true},
		{Name: "tag", Type: ir.String(nil, nil, ""), Required: false},
	}, nil)

	got := goE.Lower(pet, false)
	assert.Contains(t, got, "Id int64 `json:\"id\"`")
	assert.Contains(t, got, "Name string `json:\"name\"`")
	assert.Contains(t, got, "Tag *string `json:\"tag,omitempty\"`")
}

func TestObjectInlineExtractsSyntheticName(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "Pet.address")
	inlineObj := ir.Object([]ir.Property{{Name: "city", Type: ir.String(nil, nil, ""), Required: true}}, nil)

	got := e.Lower(inlineObj, true)
	require.Len(t, ctx.ExtractedTypes(), 1)
	assert.Equal(t, ctx.ExtractedTypes()[0].SyntheticName, got)
}

func TestEmptyObjectIsDictionary(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	tsE, _ := newEmitter(TargetTypeScript, "x")
	empty := ir.Object(nil, nil)
	assert.Equal(t, "map[string]any", goE.Lower(empty, false))
	assert.Equal(t, "Record<string, unknown>", tsE.Lower(empty, false))
}

func TestObjectWithAdditionalPropertiesIsTypedDictionary(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	v := ir.Integer(nil, nil, nil)
	dict := ir.Object(nil, &v)
	assert.Equal(t, "map[string]int64", goE.Lower(dict, false))
}

func TestOptionDoesNotDoubleWrap(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "x")
	opt := ir.Option(ir.String(nil, nil, ""))
	assert.Equal(t, "*string", goE.Lower(opt, false))

	doubled := ir.Type{Kind: ir.KindOption, Inner: &opt}
	assert.Equal(t, "*string", goE.Lower(doubled, false))
}

func TestSelfReferentialFolderSeedScenario(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "Folder")
	ctx.SelfRefName = "Folder"

	folder := ir.Object([]ir.Property{
		{Name: "id", Type: ir.String(nil, nil, ""), Required: true},
		{Name: "parent", Type: ir.Option(ir.Reference("Folder")), Required: false},
	}, nil)

	got := e.Lower(folder, false)
	assert.Contains(t, got, "Parent *Folder")
}

func TestReferenceQualifiedWithModulePrefixWhenOutOfScope(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "x")
	ctx.ModulePrefix = "base"
	got := e.Lower(ir.Reference("Widget"), false)
	assert.Equal(t, "base.Widget", got)
}

// TestNullableNoteSeedScenario covers spec.md §8 scenario 3.
func TestNullableNoteSeedScenario(t *testing.T) {
	e, _ := newEmitter(TargetGo, "note")
	u := ir.Union([]ir.Type{ir.Reference("Note"), ir.Null()})
	got := e.Lower(u, true)
	assert.Equal(t, "*Note", got)
}

// TestArrayOrElementUnionSeedScenario covers spec.md §8 scenario 4.
func TestArrayOrElementUnionSeedScenario(t *testing.T) {
	e, _ := newEmitter(TargetGo, "tags")
	u := ir.Union([]ir.Type{
		ir.Reference("Tag"),
		ir.Array(ir.Reference("Tag"), nil, nil, false),
	})
	got := e.Lower(u, true)
	assert.Equal(t, "[]Tag", got)
}

// TestEnumShapeSeedScenario covers spec.md §8 scenario 2.
func TestEnumShapeSeedScenario(t *testing.T) {
	goE, _ := newEmitter(TargetGo, "visibility")
	tsE, _ := newEmitter(TargetTypeScript, "visibility")
	u := ir.Union([]ir.Type{
		ir.StringLiteral("public"), ir.StringLiteral("home"),
		ir.StringLiteral("followers"), ir.StringLiteral("specified"),
	})
	assert.Equal(t, "string", goE.Lower(u, true))
	assert.Equal(t, `"public" | "home" | "followers" | "specified"`, tsE.Lower(u, true))
}

// TestDiscriminableMixedUnionSeedScenario covers spec.md §8 scenario 5.
func TestDiscriminableMixedUnionSeedScenario(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "value")
	u := ir.Union([]ir.Type{ir.String(nil, nil, ""), ir.Integer(nil, nil, nil), ir.Boolean()})

	got := e.Lower(u, true)
	require.Len(t, ctx.ExtractedTypes(), 1)
	entry := ctx.ExtractedTypes()[0]
	assert.True(t, entry.Unboxed)
	assert.Equal(t, entry.SyntheticName, got)

	names := ConstructorNames(u.Members)
	assert.Equal(t, []string{"String", "Integer", "Boolean"}, names)
}

func TestNonDiscriminableUnionFallsBackAndWarns(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "value")
	// Two members both classify as "object": a Reference and an Object.
	u := ir.Union([]ir.Type{
		ir.Reference("Note"),
		ir.Object([]ir.Property{{Name: "x", Type: ir.Boolean(), Required: true}}, nil),
	})
	got := e.Lower(u, true)

	require.Len(t, ctx.Warnings(), 1)
	assert.Equal(t, gencontext.WarningComplexUnionSimplified, ctx.Warnings()[0].Kind)
	// Falls back to the last member, an inline object, which is extracted.
	require.Len(t, ctx.ExtractedTypes(), 1)
	assert.Equal(t, ctx.ExtractedTypes()[0].SyntheticName, got)
}

func TestIntersectionAllReferencesOverridesToLastMember(t *testing.T) {
	e, _ := newEmitter(TargetGo, "x")
	got := e.Lower(ir.Intersection([]ir.Type{ir.Reference("Note"), ir.Reference("Tag")}), false)
	assert.Equal(t, "Tag", got)
}

func TestIntersectionAllObjectsMergeFields(t *testing.T) {
	e, _ := newEmitter(TargetGo, "x")
	a := ir.Object([]ir.Property{{Name: "a", Type: ir.Boolean(), Required: true}}, nil)
	b := ir.Object([]ir.Property{{Name: "b", Type: ir.Boolean(), Required: true}}, nil)
	got := e.Lower(ir.Intersection([]ir.Type{a, b}), false)
	assert.Contains(t, got, "A bool")
	assert.Contains(t, got, "B bool")
}

func TestIntersectionMixedWarnsAndMergesObjectPartsOnly(t *testing.T) {
	e, ctx := newEmitter(TargetGo, "x")
	obj := ir.Object([]ir.Property{{Name: "a", Type: ir.Boolean(), Required: true}}, nil)
	got := e.Lower(ir.Intersection([]ir.Type{obj, ir.Reference("Note")}), false)

	require.Len(t, ctx.Warnings(), 1)
	assert.Equal(t, gencontext.WarningIntersectionNotFullySupported, ctx.Warnings()[0].Kind)
	assert.Contains(t, got, "A bool")
}
