package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oas-schemacore/codegen/internal/ir"
)

func TestFlattenNestedUnionOneLevel(t *testing.T) {
	nested := ir.Union([]ir.Type{ir.StringLiteral("a"), ir.StringLiteral("b")})
	outer := ir.Union([]ir.Type{nested, ir.StringLiteral("c")})

	got := Optimize(outer, Options{})
	require.Equal(t, ir.KindUnion, got.Kind)
	assert.Len(t, got.Members, 3)
}

func TestDedupeUnionMembersByPrettyPrint(t *testing.T) {
	minA, minB := 1, 99
	u := ir.Union([]ir.Type{
		ir.String(&minA, nil, ""),
		ir.String(&minB, nil, ""), // same grammar shape, different constraint
		ir.Boolean(),
	})
	got := Optimize(u, Options{})
	require.Equal(t, ir.KindUnion, got.Kind)
	assert.Len(t, got.Members, 2)
}

func TestCollapseSingleMemberUnion(t *testing.T) {
	u := ir.Union([]ir.Type{ir.Boolean(), ir.Boolean()})
	got := Optimize(u, Options{})
	assert.Equal(t, ir.KindBoolean, got.Kind)
}

func TestCollapseEmptyUnionToUnknown(t *testing.T) {
	got := Optimize(ir.Union(nil), Options{})
	assert.Equal(t, ir.KindUnknown, got.Kind)
}

func TestCollapseSingleMemberIntersection(t *testing.T) {
	obj := ir.Object([]ir.Property{{Name: "x", Type: ir.Boolean(), Required: true}}, nil)
	got := Optimize(ir.Intersection([]ir.Type{obj}), Options{})
	assert.True(t, ir.Equal(obj, got))
}

func TestFlattenNestedIntersectionOneLevel(t *testing.T) {
	a := ir.Object([]ir.Property{{Name: "a", Type: ir.Boolean(), Required: true}}, nil)
	b := ir.Object([]ir.Property{{Name: "b", Type: ir.Boolean(), Required: true}}, nil)
	c := ir.Object([]ir.Property{{Name: "c", Type: ir.Boolean(), Required: true}}, nil)
	nested := ir.Intersection([]ir.Type{a, b})
	outer := ir.Intersection([]ir.Type{nested, c})

	got := Optimize(outer, Options{})
	require.Equal(t, ir.KindIntersection, got.Kind)
	assert.Len(t, got.Members, 3)
}

func TestDoubleOptionNeverSurvivesOptimize(t *testing.T) {
	// Even a hand-built double Option (bypassing the smart constructor)
	// gets collapsed when nested inside a recursively-optimized shape.
	inner := ir.Option(ir.String(nil, nil, ""))
	arr := ir.Array(ir.Type{Kind: ir.KindOption, Inner: &inner}, nil, nil, false)

	got := Optimize(arr, Options{})
	require.Equal(t, ir.KindOption, got.Items.Kind)
	assert.Equal(t, ir.KindString, got.Items.Inner.Kind)
}

func TestSimpleReferenceInliningBoundedDepth(t *testing.T) {
	ctx := ir.SchemaContext{
		"ID":      {Name: "ID", Type: ir.String(nil, nil, "")},
		"UserID":  {Name: "UserID", Type: ir.Reference("ID")},
		"OwnerID": {Name: "OwnerID", Type: ir.Reference("UserID")},
	}
	got := Optimize(ir.Reference("OwnerID"), Options{SchemaContext: ctx})
	assert.Equal(t, ir.KindString, got.Kind)
}

func TestSimpleReferenceInliningSkipsComplexTargets(t *testing.T) {
	ctx := ir.SchemaContext{
		"Pet": {Name: "Pet", Type: ir.Object([]ir.Property{{Name: "name", Type: ir.Boolean(), Required: true}}, nil)},
	}
	got := Optimize(ir.Reference("Pet"), Options{SchemaContext: ctx})
	require.Equal(t, ir.KindReference, got.Kind)
	assert.Equal(t, "Pet", got.RefName)
}

func TestOptimizeWithoutSchemaContextLeavesReferencesAlone(t *testing.T) {
	got := Optimize(ir.Reference("Pet"), Options{})
	require.Equal(t, ir.KindReference, got.Kind)
	assert.Equal(t, "Pet", got.RefName)
}

func TestOptimizeIsIdempotent(t *testing.T) {
	nested := ir.Union([]ir.Type{
		ir.Union([]ir.Type{ir.StringLiteral("a"), ir.StringLiteral("a")}),
		ir.StringLiteral("b"),
	})
	once := Optimize(nested, Options{})
	twice := Optimize(once, Options{})
	assert.True(t, ir.Equal(once, twice))
	assert.Equal(t, ir.PrettyPrint(once), ir.PrettyPrint(twice))
}

func TestOptimizeRecursesIntoObjectProperties(t *testing.T) {
	nested := ir.Union([]ir.Type{ir.Boolean(), ir.Boolean()})
	obj := ir.Object([]ir.Property{{Name: "flag", Type: nested, Required: true}}, nil)

	got := Optimize(obj, Options{})
	require.Len(t, got.Properties, 1)
	assert.Equal(t, ir.KindBoolean, got.Properties[0].Type.Kind)
}
