package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// GoPublicIdent derives an exported Go identifier from an arbitrary
// source string: split on every non-alphanumeric rune, Title-case each
// part, and concatenate. Grounded on the teacher's own GoPublicIdent in
// internal/emit/go/server/model.go; reused here for struct field names,
// schema names, and PascalCase constructor names alike.
func GoPublicIdent(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var parts []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		parts = append(parts, cur.String())
		cur.Reset()
	}
	for _, r := range s {
		isLetter := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
		isDigit := r >= '0' && r <= '9'
		if isLetter || isDigit {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	if len(parts) == 0 {
		return ""
	}
	var out strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		out.WriteString(strings.ToUpper(p[:1]))
		if len(p) > 1 {
			out.WriteString(p[1:])
		}
	}
	res := out.String()
	if res == "" || (res[0] >= '0' && res[0] <= '9') {
		return ""
	}
	return res
}

// goFieldName derives a struct field name from a JSON property name,
// deduplicating against names already used in the same struct literal.
func goFieldName(jsonName string, used map[string]int) string {
	name := GoPublicIdent(jsonName)
	if name == "" {
		name = "Field"
	}
	if n, ok := used[name]; ok {
		used[name] = n + 1
		return name + strconv.Itoa(n+1)
	}
	used[name] = 0
	return name
}

// goJSONTag builds the struct tag aliasing an exported Go field back to
// its original JSON property name — the spec's "@as" annotation,
// realized the way the teacher does it (internal/emit/go/server/model.go
// buildJSONTag): a struct tag, since Go has no separate annotation
// syntax for this.
func goJSONTag(jsonName string, required bool) string {
	if required {
		return fmt.Sprintf("`json:%q`", jsonName)
	}
	return fmt.Sprintf("`json:%q`", jsonName+",omitempty")
}

var tsIdentPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var tsReservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "export": true, "extends": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true, "instanceof": true,
	"new": true, "return": true, "super": true, "switch": true, "this": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "as": true, "implements": true, "interface": true,
	"let": true, "package": true, "private": true, "protected": true, "public": true,
	"static": true, "yield": true, "enum": true, "await": true,
}

// tsPropertyKey renders a JSON property name as a TypeScript object-type
// key: bare when it's already a valid, non-reserved identifier, quoted
// otherwise. TypeScript object-literal types accept any quoted string as
// a key, so this is enough to carry the original JSON name without a
// separate aliasing annotation.
func tsPropertyKey(jsonName string) string {
	if tsIdentPattern.MatchString(jsonName) && !tsReservedWords[jsonName] {
		return jsonName
	}
	return strconv.Quote(jsonName)
}

// TSPropertyKey is the exported form of tsPropertyKey, reused by
// internal/emit/schema so a validator's object-literal keys match its
// type's exactly.
func TSPropertyKey(jsonName string) string { return tsPropertyKey(jsonName) }
