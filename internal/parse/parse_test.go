package parse

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
)

func ref(s *openapi3.Schema) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: s}
}

func typed(kind string) *openapi3.Types {
	t := openapi3.Types{kind}
	return &t
}

// TestPetObjectSeedScenario covers spec.md §8 scenario 1.
func TestPetObjectSeedScenario(t *testing.T) {
	schema := &openapi3.Schema{
		Type:     typed("object"),
		Required: []string{"id", "name"},
		Properties: openapi3.Schemas{
			"id":   ref(&openapi3.Schema{Type: typed("integer")}),
			"name": ref(&openapi3.Schema{Type: typed("string")}),
			"tag":  ref(&openapi3.Schema{Type: typed("string")}),
		},
	}

	got, warnings := Parse(ref(schema), "Pet")
	assert.Empty(t, warnings)
	require.Equal(t, ir.KindObject, got.Kind)
	require.Len(t, got.Properties, 3)

	byName := map[string]ir.Property{}
	for _, p := range got.Properties {
		byName[p.Name] = p
	}
	assert.True(t, byName["id"].Required)
	assert.Equal(t, ir.KindInteger, byName["id"].Type.Kind)
	assert.True(t, byName["name"].Required)
	assert.Equal(t, ir.KindString, byName["name"].Type.Kind)
	assert.False(t, byName["tag"].Required)
	assert.Equal(t, ir.KindString, byName["tag"].Type.Kind)
}

// TestEnumSeedScenario covers spec.md §8 scenario 2.
func TestEnumSeedScenario(t *testing.T) {
	schema := &openapi3.Schema{
		Enum: []interface{}{"public", "home", "followers", "specified"},
	}
	got, warnings := Parse(ref(schema), "visibility")
	assert.Empty(t, warnings)
	require.Equal(t, ir.KindUnion, got.Kind)
	require.Len(t, got.Members, 4)
	for _, m := range got.Members {
		assert.Equal(t, ir.KindLiteral, m.Kind)
		assert.Equal(t, ir.LiteralString, m.LiteralKind)
	}
	assert.Equal(t, "public", got.Members[0].StringVal)
}

func TestNullableTrueWrapsInOption(t *testing.T) {
	schema := &openapi3.Schema{Type: typed("string"), Nullable: true}
	got, warnings := Parse(ref(schema), "note")
	assert.Empty(t, warnings)
	require.Equal(t, ir.KindOption, got.Kind)
	assert.Equal(t, ir.KindString, got.Inner.Kind)
}

func TestRefShortCircuitsIgnoringComposition(t *testing.T) {
	sr := &openapi3.SchemaRef{Ref: "#/components/schemas/Note"}
	got, warnings := Parse(sr, "note")
	assert.Empty(t, warnings)
	require.Equal(t, ir.KindReference, got.Kind)
	assert.Equal(t, "Note", got.RefName)
}

func TestUnresolvableRefWarnsAndFallsBackToUnknown(t *testing.T) {
	sr := &openapi3.SchemaRef{Ref: "some-external.yaml#/Foo"}
	got, warnings := Parse(sr, "x")
	require.Len(t, warnings, 1)
	assert.Equal(t, gencontext.WarningFallbackToJSON, warnings[0].Kind)
	assert.Equal(t, ir.KindUnknown, got.Kind)
}

func TestAllOfOfReferencesLowersToIntersection(t *testing.T) {
	schema := &openapi3.Schema{
		AllOf: []*openapi3.SchemaRef{
			{Ref: "#/components/schemas/Base"},
			{Ref: "#/components/schemas/Extra"},
		},
	}
	got, warnings := Parse(ref(schema), "Combined")
	assert.Empty(t, warnings)
	require.Equal(t, ir.KindIntersection, got.Kind)
	require.Len(t, got.Members, 2)
	assert.Equal(t, "Base", got.Members[0].RefName)
	assert.Equal(t, "Extra", got.Members[1].RefName)
}

func TestOneOfLowersToRawUnion(t *testing.T) {
	schema := &openapi3.Schema{
		OneOf: []*openapi3.SchemaRef{
			ref(&openapi3.Schema{Type: typed("string")}),
			ref(&openapi3.Schema{Type: typed("integer")}),
		},
	}
	got, _ := Parse(ref(schema), "value")
	require.Equal(t, ir.KindUnion, got.Kind)
	require.Len(t, got.Members, 2)
}

func TestArrayOfItems(t *testing.T) {
	schema := &openapi3.Schema{
		Type:  typed("array"),
		Items: ref(&openapi3.Schema{Type: typed("string")}),
	}
	got, warnings := Parse(ref(schema), "tags")
	assert.Empty(t, warnings)
	require.Equal(t, ir.KindArray, got.Kind)
	assert.Equal(t, ir.KindString, got.Items.Kind)
}

func TestArrayMissingItemsWarnsAndFallsBackToUnknownElement(t *testing.T) {
	schema := &openapi3.Schema{Type: typed("array")}
	got, warnings := Parse(ref(schema), "tags")
	require.Len(t, warnings, 1)
	assert.Equal(t, gencontext.WarningMissingSchema, warnings[0].Kind)
	assert.Equal(t, ir.KindUnknown, got.Items.Kind)
}

func TestObjectWithAllOfTakesPriorityOverProperties(t *testing.T) {
	schema := &openapi3.Schema{
		Type: typed("object"),
		AllOf: []*openapi3.SchemaRef{
			{Ref: "#/components/schemas/Base"},
		},
		Properties: openapi3.Schemas{
			"extra": ref(&openapi3.Schema{Type: typed("string")}),
		},
	}
	got, _ := Parse(ref(schema), "Combined")
	require.Equal(t, ir.KindIntersection, got.Kind)
}

func TestAdditionalPropertiesSchemaBecomesDictionaryValueType(t *testing.T) {
	has := true
	schema := &openapi3.Schema{
		Type: typed("object"),
		AdditionalProperties: openapi3.AdditionalProperties{
			Has:    &has,
			Schema: ref(&openapi3.Schema{Type: typed("integer")}),
		},
	}
	got, _ := Parse(ref(schema), "Scores")
	require.Equal(t, ir.KindObject, got.Kind)
	require.NotNil(t, got.AdditionalProperties)
	assert.Equal(t, ir.KindInteger, got.AdditionalProperties.Kind)
}

func TestNoTypeNoEnumNoCompositionIsUnknown(t *testing.T) {
	got, warnings := Parse(ref(&openapi3.Schema{}), "mystery")
	assert.Empty(t, warnings)
	assert.Equal(t, ir.KindUnknown, got.Kind)
}

func TestTypeListWithNullFoldsIntoOption(t *testing.T) {
	types := openapi3.Types{"string", "null"}
	schema := &openapi3.Schema{Type: &types}
	got, warnings := Parse(ref(schema), "value")
	assert.Empty(t, warnings)
	require.Equal(t, ir.KindOption, got.Kind)
	assert.Equal(t, ir.KindString, got.Inner.Kind)
}

func TestDepthLimitBreachFallsBackToUnknown(t *testing.T) {
	// Build an array-of-array-of-array... chain deeper than maxDepth.
	var s *openapi3.Schema
	for i := 0; i < maxDepth+5; i++ {
		s = &openapi3.Schema{Type: typed("array"), Items: ref(s)}
	}

	_, warnings := Parse(ref(s), "deep")
	require.NotEmpty(t, warnings)
	found := false
	for _, w := range warnings {
		if w.Kind == gencontext.WarningDepthLimitReached {
			found = true
		}
	}
	assert.True(t, found, "expected a DepthLimitReached warning")
}

func TestStringConstraintsCarried(t *testing.T) {
	maxLen := uint64(10)
	schema := &openapi3.Schema{
		Type:      typed("string"),
		MinLength: 2,
		MaxLength: &maxLen,
		Pattern:   "^[a-z]+$",
	}
	got, _ := Parse(ref(schema), "slug")
	require.Equal(t, ir.KindString, got.Kind)
	require.NotNil(t, got.MinLen)
	assert.Equal(t, 2, *got.MinLen)
	require.NotNil(t, got.MaxLen)
	assert.Equal(t, 10, *got.MaxLen)
	assert.Equal(t, "^[a-z]+$", got.Pattern)
}
