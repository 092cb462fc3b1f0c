package fsutil

import (
	"path/filepath"
	"strings"
)

// IsPathComponent reports whether name can be used as a single directory
// entry: non-empty, not "." or "..", and free of path separators.
func IsPathComponent(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// IsWithin reports whether path lies strictly below root after cleaning both.
func IsWithin(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
