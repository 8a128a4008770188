// Package materials resolves study-material glob patterns against the
// local materials directory, producing the material-id list a session's
// content filter carries. Ids are slash-separated paths relative to the
// materials root; the backend maps them to its own library entries.
package materials

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolve expands patterns (doublestar syntax, e.g. "anatomy/**/*.pdf")
// under dir into a sorted, deduplicated id list. A pattern matching
// nothing is not an error; an invalid pattern is.
func Resolve(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("materials dir: %w", err)
	}

	fsys := os.DirFS(dir)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		err := doublestar.GlobWalk(fsys, filepath.ToSlash(pattern), func(path string, d fs.DirEntry) error {
			if !d.IsDir() {
				seen[path] = true
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
