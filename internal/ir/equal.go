package ir

// Equal reports whether a and b are structurally equal: same variant and
// equal children. Constraint fields on primitives (MinLen, Pattern, Min,
// Max, MultipleOf, MinItems, MaxItems, Unique) are ignored, since they do
// not affect grammar — two schemas differing only in constraints share an
// extracted auxiliary type (see DESIGN.md, Open Question).
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindString, KindNumber, KindInteger, KindBoolean, KindNull, KindUnknown:
		return true
	case KindArray:
		return equalPtr(a.Items, b.Items)
	case KindObject:
		if len(a.Properties) != len(b.Properties) {
			return false
		}
		for i := range a.Properties {
			pa, pb := a.Properties[i], b.Properties[i]
			if pa.Name != pb.Name || pa.Required != pb.Required || !Equal(pa.Type, pb.Type) {
				return false
			}
		}
		return equalPtr(a.AdditionalProperties, b.AdditionalProperties)
	case KindLiteral:
		if a.LiteralKind != b.LiteralKind {
			return false
		}
		switch a.LiteralKind {
		case LiteralString:
			return a.StringVal == b.StringVal
		case LiteralNumber:
			return a.NumberVal == b.NumberVal
		case LiteralBoolean:
			return a.BoolVal == b.BoolVal
		case LiteralNull:
			return true
		}
		return false
	case KindUnion, KindIntersection:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for i := range a.Members {
			if !Equal(a.Members[i], b.Members[i]) {
				return false
			}
		}
		return true
	case KindReference:
		return a.RefName == b.RefName
	case KindOption:
		return equalPtr(a.Inner, b.Inner)
	default:
		return false
	}
}

func equalPtr(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Equal(*a, *b)
}
