package storage

import (
	"path/filepath"
	"strings"
)

// Resolve joins name onto root and returns the normalized absolute path,
// guaranteed to be a descendant of root. Any name whose normalized form
// escapes root (e.g. "../../etc/passwd") fails with KindContainment. The
// check is applied to every store, load, and delete, caller-supplied
// subfolder segments included, so escapes are rejected at write time, not
// just at read time.
func Resolve(root, name string) (string, error) {
	root = filepath.Clean(root)

	// filepath.Join cleans the result, collapsing "." and ".." segments.
	resolved := filepath.Join(root, filepath.FromSlash(name))

	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", &Error{Kind: KindContainment, Path: name}
	}
	return resolved, nil
}
