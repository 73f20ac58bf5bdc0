// Package fingerprint computes a stable identity for an endpoint,
// independent of its position in the document, so doc-override files can
// recognize "the same operation" across regenerations even when
// operationId-free specs reorder paths. No cryptographic property is
// required — the standard library's FNV-1a is enough for this kind of
// non-adversarial content hash, so there is no need for a heavier sum.
package fingerprint

import (
	"fmt"
	"hash/fnv"

	"github.com/oas-schemacore/codegen/internal/ir"
)

// Endpoint computes the fingerprint of an endpoint: a hex-encoded 32-bit
// FNV-1a sum over its path, method, and (for documents that carry them) operationId,
// summary and description. Changing any of those five fields changes the
// fingerprint — which is exactly the set a doc-override author cares
// about: rename the operationId or reword the summary, and stale overrides
// should stop matching instead of silently surviving.
func Endpoint(path, method, operationID, summary, description string) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s", path, method, operationID, summary, description)
	return fmt.Sprintf("%08x", h.Sum32())
}

// OfEndpoint fingerprints an already-normalized ir.Endpoint using its
// carried OperationID, Summary and Description fields.
func OfEndpoint(e ir.Endpoint) string {
	return Endpoint(e.Path, e.Method, e.OperationID, e.Summary, e.Description)
}
