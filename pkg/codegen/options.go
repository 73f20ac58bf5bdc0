package codegen

import (
	"fmt"

	"github.com/oas-schemacore/codegen/internal/diffmerge"
)

// target names spec.md §6's configuration record closes Targets over.
const (
	TargetAPI       = "api"
	TargetWrapper   = "wrapper"
	TargetDTS       = "dts"
	TargetTSWrapper = "ts_wrapper"
)

var validTargets = map[string]bool{
	TargetAPI: true, TargetWrapper: true, TargetDTS: true, TargetTSWrapper: true,
}

// Options is the full configuration record spec.md §6 describes. The zero
// value is not ready to use — call Normalize (or let Generate call it)
// before passing Options to Generate.
type Options struct {
	// Strategy controls how fork specs compose. Generate only ever sees
	// one document, so it accepts only StrategySeparate; StrategySharedBase
	// is a cmd/openapi-rpc-codegen-level workflow over multiple loaded
	// documents (see DESIGN.md).
	Strategy diffmerge.Strategy

	// ModulePerTag groups Go endpoint declarations by OpenAPI tag into
	// separate files instead of one flat file. spec.md's configuration
	// record defaults this to true; a plain bool can't distinguish
	// "unset" from "explicitly false", so Normalize leaves it alone and
	// callers that want the spec's default set it themselves (the CLI's
	// --module-per-tag flag defaults to true for exactly this reason).
	ModulePerTag bool

	IncludeTags []string
	ExcludeTags []string

	GenerateDiffReport      bool
	BreakingChangeHandling  diffmerge.BreakingChangeHandling

	// Targets selects which emitters run: any non-empty subset of
	// {api, wrapper, dts, ts_wrapper}.
	Targets []string

	// BaseInstanceName/BaseModulePrefix qualify the shared base module
	// under StrategySharedBase. Generate's single-document path ignores
	// BaseInstanceName and passes BaseModulePrefix to the emitters as the
	// prefix for references to schemas the document does not define.
	BaseInstanceName string
	BaseModulePrefix string

	// DocOverrideDir, when set, consults internal/docoverride for each
	// endpoint's description before emission.
	DocOverrideDir string
}

// Normalize fills in defaults and rejects anything outside the closed
// sets the configuration record defines, the way internal/normalize
// degrades optional input but still rejects a genuinely invalid shape.
// Returns a new, ready-to-use Options; the receiver is never mutated.
func (o Options) Normalize() (Options, error) {
	out := o

	if out.Strategy == "" {
		out.Strategy = diffmerge.StrategySeparate
	}
	if out.Strategy != diffmerge.StrategySeparate && out.Strategy != diffmerge.StrategySharedBase {
		return Options{}, newError(InvalidConfigError, ErrorContext{}, fmt.Errorf("unknown strategy %q", out.Strategy))
	}

	if out.BreakingChangeHandling == "" {
		out.BreakingChangeHandling = diffmerge.BreakingChangeWarn
	}
	switch out.BreakingChangeHandling {
	case diffmerge.BreakingChangeError, diffmerge.BreakingChangeWarn, diffmerge.BreakingChangeIgnore:
	default:
		return Options{}, newError(InvalidConfigError, ErrorContext{}, fmt.Errorf("unknown breaking_change_handling %q", out.BreakingChangeHandling))
	}

	if len(out.Targets) == 0 {
		out.Targets = []string{TargetAPI}
	}
	for _, t := range out.Targets {
		if !validTargets[t] {
			return Options{}, newError(InvalidConfigError, ErrorContext{}, fmt.Errorf("unknown target %q", t))
		}
	}

	return out, nil
}

// includesTag reports whether tag should be emitted under the
// include_tags/exclude_tags filters: include_tags, when non-empty, is an
// allow-list; exclude_tags always removes, applied after.
func (o Options) includesTag(tag string) bool {
	if len(o.IncludeTags) > 0 {
		found := false
		for _, t := range o.IncludeTags {
			if t == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, t := range o.ExcludeTags {
		if t == tag {
			return false
		}
	}
	return true
}
