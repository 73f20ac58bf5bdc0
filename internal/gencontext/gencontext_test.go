package gencontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oas-schemacore/codegen/internal/ir"
)

func TestExtractDedupesByStructuralEquality(t *testing.T) {
	ctx := New("Pet.tag", map[string]bool{"Pet": true}, "")

	minA, minB := 1, 99
	a := ir.String(&minA, nil, "")
	b := ir.String(&minB, nil, "") // same shape, different constraint

	name1 := ctx.Extract(a, "TagValue", false)
	name2 := ctx.Extract(b, "TagValue", false)

	assert.Equal(t, name1, name2, "structurally equal IR must share one synthetic name")
	assert.Len(t, ctx.ExtractedTypes(), 1)
}

func TestExtractAppendsCounterOnNameCollision(t *testing.T) {
	ctx := New("Value", nil, "")

	n1 := ctx.Extract(ir.Boolean(), "Variant", true)
	n2 := ctx.Extract(ir.String(nil, nil, ""), "Variant", true)

	assert.Equal(t, "Variant", n1)
	assert.NotEqual(t, n1, n2)
	require.Len(t, ctx.ExtractedTypes(), 2)
}

func TestLookupFindsExistingEntry(t *testing.T) {
	ctx := New("Value", nil, "")
	obj := ir.Object([]ir.Property{{Name: "x", Type: ir.Boolean(), Required: true}}, nil)

	_, ok := ctx.Lookup(obj)
	assert.False(t, ok)

	name := ctx.Extract(obj, "Shape", false)
	got, ok := ctx.Lookup(obj)
	require.True(t, ok)
	assert.Equal(t, name, got)
}

func TestExtractedTypesPreservesInsertionOrder(t *testing.T) {
	ctx := New("Value", nil, "")
	ctx.Extract(ir.Boolean(), "First", false)
	ctx.Extract(ir.String(nil, nil, ""), "Second", false)

	names := []string{}
	for _, e := range ctx.ExtractedTypes() {
		names = append(names, e.SyntheticName)
	}
	assert.Equal(t, []string{"First", "Second"}, names)
}

func TestWarnAccumulatesInAppendOrder(t *testing.T) {
	ctx := New("Folder.parent", nil, "")
	ctx.Warn(WarningDepthLimitReached, "Folder.parent.parent", "recursion depth exceeded")
	ctx.Warn(WarningMissingSchema, "Folder.owner", "schema not found")

	warnings := ctx.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, WarningDepthLimitReached, warnings[0].Kind)
	assert.Equal(t, WarningMissingSchema, warnings[1].Kind)
}

func TestTypeEmitterAndSchemaEmitterShareExtractedTable(t *testing.T) {
	ctx := New("Value", nil, "")
	union := ir.Union([]ir.Type{ir.StringLiteral("a"), ir.NumberLiteral(1)})

	// Simulates the type emitter extracting first...
	typeName := ctx.Extract(union, "ValueVariant", true)

	// ...and the schema emitter later consulting the same context by
	// structural equality instead of re-deriving its own name.
	schemaName, ok := ctx.Lookup(union)
	require.True(t, ok)
	assert.Equal(t, typeName, schemaName)
}
