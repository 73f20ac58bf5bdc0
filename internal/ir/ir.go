// Package ir defines the intermediate representation the schema
// compilation core parses OpenAPI/JSON-Schema documents into. Values are
// immutable once produced by internal/parse; internal/optimize returns new
// values rather than mutating in place.
package ir

import "fmt"

// Kind identifies which variant of the IrType sum a Type holds.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindNull
	KindArray
	KindObject
	KindLiteral
	KindUnion
	KindIntersection
	KindReference
	KindOption
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindInteger:
		return "Integer"
	case KindBoolean:
		return "Boolean"
	case KindNull:
		return "Null"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindLiteral:
		return "Literal"
	case KindUnion:
		return "Union"
	case KindIntersection:
		return "Intersection"
	case KindReference:
		return "Reference"
	case KindOption:
		return "Option"
	case KindUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LiteralKind identifies the scalar shape of a Literal value.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBoolean
	LiteralNull
)

// Property is a named, possibly-required field of an Object, in the source
// document's insertion order.
type Property struct {
	Name     string
	Type     Type
	Required bool
}

// Type is the tagged sum described by the schema compilation core's IR.
// Constraint fields (MinLen, Pattern, Min, Max, MultipleOf, MinItems,
// MaxItems, Unique) are carried through for emission but ignored by Equal:
// grammar-level equality ignores refinements (see DESIGN.md, Open Question).
type Type struct {
	Kind Kind

	// String
	MinLen  *int
	MaxLen  *int
	Pattern string

	// Number / Integer
	Min        *float64
	Max        *float64
	MultipleOf *float64

	// Array
	Items    *Type
	MinItems *int
	MaxItems *int
	Unique   bool

	// Object
	Properties           []Property
	AdditionalProperties *Type

	// Literal
	LiteralKind LiteralKind
	StringVal   string
	NumberVal   float64
	BoolVal     bool

	// Union / Intersection
	Members []Type

	// Reference — schema name only, after normalisation. The source form
	// "#/components/schemas/X" is stripped by the parser before this is set.
	RefName string

	// Option — nullable wrapper.
	Inner *Type
}

// String constructs a String type.
func String(minLen, maxLen *int, pattern string) Type {
	return Type{Kind: KindString, MinLen: minLen, MaxLen: maxLen, Pattern: pattern}
}

// Number constructs a Number type.
func Number(min, max, multipleOf *float64) Type {
	return Type{Kind: KindNumber, Min: min, Max: max, MultipleOf: multipleOf}
}

// Integer constructs an Integer type.
func Integer(min, max, multipleOf *float64) Type {
	return Type{Kind: KindInteger, Min: min, Max: max, MultipleOf: multipleOf}
}

// Boolean constructs a Boolean type.
func Boolean() Type { return Type{Kind: KindBoolean} }

// Null constructs a Null type.
func Null() Type { return Type{Kind: KindNull} }

// Unknown is the lattice bottom: the fallback sentinel used whenever the
// parser or an emitter cannot classify a schema.
func Unknown() Type { return Type{Kind: KindUnknown} }

// Array constructs an Array type.
func Array(items Type, minItems, maxItems *int, unique bool) Type {
	it := items
	return Type{Kind: KindArray, Items: &it, MinItems: minItems, MaxItems: maxItems, Unique: unique}
}

// Object constructs an Object type. additionalProperties is nil when the
// schema does not declare one.
func Object(properties []Property, additionalProperties *Type) Type {
	return Type{Kind: KindObject, Properties: properties, AdditionalProperties: additionalProperties}
}

// StringLiteral constructs a string Literal.
func StringLiteral(v string) Type {
	return Type{Kind: KindLiteral, LiteralKind: LiteralString, StringVal: v}
}

// NumberLiteral constructs a number Literal.
func NumberLiteral(v float64) Type {
	return Type{Kind: KindLiteral, LiteralKind: LiteralNumber, NumberVal: v}
}

// BooleanLiteral constructs a boolean Literal.
func BooleanLiteral(v bool) Type {
	return Type{Kind: KindLiteral, LiteralKind: LiteralBoolean, BoolVal: v}
}

// NullLiteral constructs the null Literal.
func NullLiteral() Type { return Type{Kind: KindLiteral, LiteralKind: LiteralNull} }

// Union constructs a Union of the given members verbatim; flattening,
// deduplication and collapsing are the optimiser's job, not the
// constructor's — the parser emits raw unions exactly as encountered.
func Union(members []Type) Type { return Type{Kind: KindUnion, Members: members} }

// Intersection constructs an Intersection of the given members verbatim.
func Intersection(members []Type) Type { return Type{Kind: KindIntersection, Members: members} }

// Reference constructs a reference to a named schema.
func Reference(name string) Type { return Type{Kind: KindReference, RefName: name} }

// Option wraps t in a nullable Option, collapsing Option(Option(x)) to
// Option(x) so the idempotence invariant holds unconditionally, not just
// after optimisation.
func Option(t Type) Type {
	if t.Kind == KindOption {
		return t
	}
	inner := t
	return Type{Kind: KindOption, Inner: &inner}
}

// IsNullish reports whether t is Null, the null Literal, or an Option —
// the shapes the union-lowering algorithm treats as "this member makes the
// whole union nullable".
func IsNullish(t Type) bool {
	switch t.Kind {
	case KindNull:
		return true
	case KindLiteral:
		return t.LiteralKind == LiteralNull
	case KindOption:
		return true
	default:
		return false
	}
}
