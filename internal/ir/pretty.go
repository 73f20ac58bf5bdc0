package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// PrettyPrint renders a canonical, constraint-free string key for t. Two
// types produce the same key iff Equal(a, b) holds — this is the
// "structural pretty-print key" the optimiser deduplicates union members by
// and that the generation context's extracted-type cache keys on.
func PrettyPrint(t Type) string {
	var b strings.Builder
	writePretty(&b, t)
	return b.String()
}

func writePretty(b *strings.Builder, t Type) {
	switch t.Kind {
	case KindString, KindNumber, KindInteger, KindBoolean, KindNull, KindUnknown:
		b.WriteString(t.Kind.String())
	case KindArray:
		b.WriteString("Array<")
		if t.Items != nil {
			writePretty(b, *t.Items)
		}
		b.WriteString(">")
	case KindObject:
		b.WriteString("Object{")
		for i, p := range t.Properties {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(p.Name)
			if p.Required {
				b.WriteString("!")
			}
			b.WriteString(":")
			writePretty(b, p.Type)
		}
		b.WriteString("}")
		if t.AdditionalProperties != nil {
			b.WriteString("+{")
			writePretty(b, *t.AdditionalProperties)
			b.WriteString("}")
		}
	case KindLiteral:
		b.WriteString("Literal(")
		switch t.LiteralKind {
		case LiteralString:
			b.WriteString(strconv.Quote(t.StringVal))
		case LiteralNumber:
			fmt.Fprintf(b, "%v", t.NumberVal)
		case LiteralBoolean:
			fmt.Fprintf(b, "%v", t.BoolVal)
		case LiteralNull:
			b.WriteString("null")
		}
		b.WriteString(")")
	case KindUnion, KindIntersection:
		if t.Kind == KindUnion {
			b.WriteString("Union[")
		} else {
			b.WriteString("Intersection[")
		}
		for i, m := range t.Members {
			if i > 0 {
				b.WriteString("|")
			}
			writePretty(b, m)
		}
		b.WriteString("]")
	case KindReference:
		b.WriteString("Reference(")
		b.WriteString(t.RefName)
		b.WriteString(")")
	case KindOption:
		b.WriteString("Option<")
		if t.Inner != nil {
			writePretty(b, *t.Inner)
		}
		b.WriteString(">")
	default:
		b.WriteString("?")
	}
}
