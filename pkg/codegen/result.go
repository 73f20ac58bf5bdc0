package codegen

import "github.com/oas-schemacore/codegen/internal/gencontext"

// WarningKind and Warning are re-exported from internal/gencontext
// unchanged: spec.md §7 describes Warning as the value every recoverable
// condition accumulates into, and it is surfaced on Result exactly as
// gencontext.Context collected it — never coalesced, never dropped.
type WarningKind = gencontext.WarningKind
type Warning = gencontext.Warning

const (
	WarningFallbackToJSON                = gencontext.WarningFallbackToJSON
	WarningDepthLimitReached             = gencontext.WarningDepthLimitReached
	WarningIntersectionNotFullySupported = gencontext.WarningIntersectionNotFullySupported
	WarningComplexUnionSimplified        = gencontext.WarningComplexUnionSimplified
	WarningMissingSchema                 = gencontext.WarningMissingSchema
)

// GeneratedFile is one synthesized file: a repo-relative path and its
// full content. Generate never writes to disk — internal/writer performs
// the actual I/O, given these paths and contents by the caller.
type GeneratedFile struct {
	Path    string
	Content string
}

// Result is Generate's success value: every file it produced, plus every
// warning collected along the way.
type Result struct {
	Files    []GeneratedFile
	Warnings []Warning
}
