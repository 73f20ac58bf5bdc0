// Package gencontext defines the per-top-level-schema generation context:
// the shared, mutable workspace the type emitter fills and the schema
// emitter consults so a validator never disagrees with its type about
// which inline complex shapes were promoted to synthetic names.
//
// A Context is created fresh for one top-level named schema's emission
// and discarded once both emitters have run — it is never shared across
// goroutines or reused across schemas (see internal/orchestrate).
package gencontext

import (
	"strconv"

	"github.com/oas-schemacore/codegen/internal/ir"
)

// WarningKind enumerates the recoverable conditions the core can hit.
// Every kind is accumulated, never fatal.
type WarningKind string

const (
	WarningFallbackToJSON                WarningKind = "FallbackToJson"
	WarningDepthLimitReached             WarningKind = "DepthLimitReached"
	WarningIntersectionNotFullySupported WarningKind = "IntersectionNotFullySupported"
	WarningComplexUnionSimplified        WarningKind = "ComplexUnionSimplified"
	WarningMissingSchema                 WarningKind = "MissingSchema"
)

// Warning is a stable, renderable record of a recoverable condition.
// Warnings are never coalesced; callers may dedupe if they wish.
type Warning struct {
	Kind   WarningKind
	Path   string
	Detail string
}

// ExtractedType is one entry of the extracted-type table: an inline
// complex IR that was promoted to a synthetic name because it appeared
// where the target language forbids unnamed records or variants.
type ExtractedType struct {
	SyntheticName string
	IR            ir.Type
	Unboxed       bool
}

// Context is the per-top-level-schema workspace. The type emitter runs
// first and populates ExtractedTypes; the schema emitter runs second and
// only reads it, looking up by structural equality so it references the
// exact name the type emitter synthesised rather than re-deriving one.
type Context struct {
	// Path is the dotted location string used in diagnostics.
	Path string

	// InsideComponentSchemas is true while emitting within the aggregate
	// component-schemas module, which changes how cross-schema references
	// are qualified.
	InsideComponentSchemas bool

	// AvailableSchemas are the names visible at the current scope;
	// reference lowering consults this before falling back to
	// ModulePrefix-qualified access.
	AvailableSchemas map[string]bool

	// ModulePrefix is prepended to references that resolve outside the
	// current scope.
	ModulePrefix string

	// SelfRefName holds the current top-level schema's own name while it
	// is self-referential; references to this name lower to the
	// recursion marker instead of a normal qualified reference.
	SelfRefName string

	warnings      []Warning
	extracted     []ExtractedType
	extractedKeys map[string]string // ir.PrettyPrint(entry.IR) -> SyntheticName
	extractCount  int
}

// New creates a fresh Context scoped to path, with the given visible
// schema names and module prefix.
func New(path string, availableSchemas map[string]bool, modulePrefix string) *Context {
	return &Context{
		Path:             path,
		AvailableSchemas: availableSchemas,
		ModulePrefix:     modulePrefix,
		extractedKeys:    make(map[string]string),
	}
}

// Warn appends a warning. Warnings are never deduplicated here — that
// decision belongs to the caller presenting the final Result.
func (c *Context) Warn(kind WarningKind, path, detail string) {
	c.warnings = append(c.warnings, Warning{Kind: kind, Path: path, Detail: detail})
}

// Warnings returns the accumulated warnings in append order.
func (c *Context) Warnings() []Warning {
	return c.warnings
}

// Extract records t as needing a synthetic name, or returns the name
// already assigned to a structurally equal entry. Dedup is keyed by
// ir.PrettyPrint, which is constraint-blind — the same grammar shape
// under different constraints shares one synthetic name, matching the
// structural-equality contract the rest of the core relies on.
//
// namePrefix seeds the synthetic name; the monotonic extract counter is
// appended only when namePrefix alone would collide with a prior entry.
func (c *Context) Extract(t ir.Type, namePrefix string, unboxed bool) string {
	key := ir.PrettyPrint(t)
	if existing, ok := c.extractedKeys[key]; ok {
		return existing
	}

	name := namePrefix
	if name == "" {
		name = "Extracted"
	}
	if c.nameTaken(name) {
		c.extractCount++
		name = name + strconv.Itoa(c.extractCount)
	}

	c.extracted = append(c.extracted, ExtractedType{SyntheticName: name, IR: t, Unboxed: unboxed})
	c.extractedKeys[key] = name
	return name
}

// Lookup returns the synthetic name already assigned to a structurally
// equal IR, for callers (the schema emitter) that must not allocate a
// new entry themselves.
func (c *Context) Lookup(t ir.Type) (string, bool) {
	name, ok := c.extractedKeys[ir.PrettyPrint(t)]
	return name, ok
}

// ExtractedTypes returns the extracted-type table in the order entries
// were first added — the order both emitters must walk when emitting
// auxiliary declarations, so type and validator output stay paired.
func (c *Context) ExtractedTypes() []ExtractedType {
	return c.extracted
}

func (c *Context) nameTaken(name string) bool {
	for _, e := range c.extracted {
		if e.SyntheticName == name {
			return true
		}
	}
	return false
}
