package schema

import "github.com/oas-schemacore/codegen/internal/emit/types"

// Target is re-exported from internal/emit/types rather than redefined:
// a validator and its type always share one Target value, and the
// orchestrator constructs both emitters from the same constant.
type Target = types.Target

const (
	TargetGo         = types.TargetGo
	TargetTypeScript = types.TargetTypeScript
)
