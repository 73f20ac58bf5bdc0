package diffmerge

import (
	"fmt"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverForks resolves pattern (a doublestar glob, e.g.
// "specs/*/openapi.yaml") against fsys and returns the matches sorted for
// deterministic fork ordering — SharedBase composition depends on
// processing forks in a stable order so the shared-base extraction below
// doesn't vary run to run.
func DiscoverForks(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}
