package types

import (
	"fmt"

	"github.com/oas-schemacore/codegen/internal/ir"
)

// RuntimeKind classifies t into the coarse runtime shape a decoder would
// use to tell union members apart at decode time: "boolean", "string",
// "number", "array", "object" (Object, Reference, and Intersection all
// decode as JSON objects), "null", or "unknown". Exported so
// internal/emit/schema's validator lowering can follow the identical
// decision tree the spec requires of it.
func RuntimeKind(t ir.Type) string {
	switch t.Kind {
	case ir.KindBoolean:
		return "boolean"
	case ir.KindString:
		return "string"
	case ir.KindNumber, ir.KindInteger:
		return "number"
	case ir.KindNull:
		return "null"
	case ir.KindArray:
		return "array"
	case ir.KindObject, ir.KindReference, ir.KindIntersection:
		return "object"
	case ir.KindLiteral:
		switch t.LiteralKind {
		case ir.LiteralString:
			return "string"
		case ir.LiteralNumber:
			return "number"
		case ir.LiteralBoolean:
			return "boolean"
		case ir.LiteralNull:
			return "null"
		}
	case ir.KindOption:
		if t.Inner != nil {
			return RuntimeKind(*t.Inner)
		}
	}
	return "unknown"
}

// IsDiscriminable reports whether every member of members has a distinct
// RuntimeKind — the condition under which a union can be lowered to an
// unboxed variant classified at decode time by shape alone.
func IsDiscriminable(members []ir.Type) bool {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		k := RuntimeKind(m)
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// ConstructorNames derives one constructor name per member, in member
// order, deduplicated by a counter suffix on collision: primitives use
// their kind name, references use the schema name, string literals use
// their PascalCase value.
func ConstructorNames(members []ir.Type) []string {
	used := map[string]int{}
	out := make([]string, len(members))
	for i, m := range members {
		base := constructorBaseName(m)
		if n, ok := used[base]; ok {
			used[base] = n + 1
			out[i] = fmt.Sprintf("%s%d", base, n+1)
			continue
		}
		used[base] = 0
		out[i] = base
	}
	return out
}

func constructorBaseName(t ir.Type) string {
	switch t.Kind {
	case ir.KindReference:
		if n := GoPublicIdent(t.RefName); n != "" {
			return n
		}
		return "Ref"
	case ir.KindLiteral:
		switch t.LiteralKind {
		case ir.LiteralString:
			if n := GoPublicIdent(t.StringVal); n != "" {
				return n
			}
			return "String"
		case ir.LiteralNumber:
			return "Number"
		case ir.LiteralBoolean:
			return "Boolean"
		case ir.LiteralNull:
			return "Null"
		}
	case ir.KindString:
		return "String"
	case ir.KindNumber:
		return "Number"
	case ir.KindInteger:
		return "Integer"
	case ir.KindBoolean:
		return "Boolean"
	case ir.KindNull:
		return "Null"
	case ir.KindArray:
		return "Array"
	case ir.KindObject:
		return "Object"
	case ir.KindIntersection:
		return "Object"
	}
	return "Value"
}
