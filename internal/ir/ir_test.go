package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionIdempotent(t *testing.T) {
	once := Option(String(nil, nil, ""))
	twice := Option(once)
	require.Equal(t, KindOption, twice.Kind)
	assert.True(t, Equal(once, twice), "Option(Option(x)) must equal Option(x)")
}

func TestEqualIgnoresConstraints(t *testing.T) {
	minA, maxA := 1, 5
	minB, maxB := 10, 20
	a := String(&minA, &maxA, "^a$")
	b := String(&minB, &maxB, "^b$")
	assert.True(t, Equal(a, b), "constraint fields must not affect structural equality")
}

func TestEqualDistinguishesVariants(t *testing.T) {
	assert.False(t, Equal(String(nil, nil, ""), Number(nil, nil, nil)))
	assert.False(t, Equal(Boolean(), Null()))
}

func TestEqualObjectOrderSensitive(t *testing.T) {
	a := Object([]Property{
		{Name: "id", Type: String(nil, nil, "")},
		{Name: "name", Type: String(nil, nil, "")},
	}, nil)
	b := Object([]Property{
		{Name: "name", Type: String(nil, nil, "")},
		{Name: "id", Type: String(nil, nil, "")},
	}, nil)
	assert.False(t, Equal(a, b))
}

func TestEqualLiteral(t *testing.T) {
	assert.True(t, Equal(StringLiteral("public"), StringLiteral("public")))
	assert.False(t, Equal(StringLiteral("public"), StringLiteral("home")))
	assert.False(t, Equal(StringLiteral("1"), NumberLiteral(1)))
}

func TestEqualUnionOrderSensitiveButContentMatters(t *testing.T) {
	a := Union([]Type{StringLiteral("a"), StringLiteral("b")})
	b := Union([]Type{StringLiteral("a"), StringLiteral("b")})
	c := Union([]Type{StringLiteral("b"), StringLiteral("a")})
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestPrettyPrintMatchesEqual(t *testing.T) {
	minA := 1
	a := String(&minA, nil, "")
	b := String(nil, nil, "")
	require.True(t, Equal(a, b))
	assert.Equal(t, PrettyPrint(a), PrettyPrint(b))
}

func TestPrettyPrintDistinguishesShape(t *testing.T) {
	obj := Object([]Property{{Name: "x", Type: Boolean(), Required: true}}, nil)
	arr := Array(Boolean(), nil, nil, false)
	assert.NotEqual(t, PrettyPrint(obj), PrettyPrint(arr))
}

func TestComplexityCountsNodes(t *testing.T) {
	assert.Equal(t, 1, Complexity(Boolean()))
	obj := Object([]Property{
		{Name: "a", Type: Boolean()},
		{Name: "b", Type: Array(String(nil, nil, ""), nil, nil, false)},
	}, nil)
	// self(1) + a(1) + b-array(1) + b-array-item(1) = 4
	assert.Equal(t, 4, Complexity(obj))
}

func TestIsNullish(t *testing.T) {
	assert.True(t, IsNullish(Null()))
	assert.True(t, IsNullish(NullLiteral()))
	assert.True(t, IsNullish(Option(String(nil, nil, ""))))
	assert.False(t, IsNullish(String(nil, nil, "")))
}
