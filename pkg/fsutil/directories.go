// Package fsutil provides the filesystem helpers used by the snapshot cache.
package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all missing parents with DirModeDefault.
func EnsureDir(path string) error {
	return os.MkdirAll(path, DirModeDefault)
}

// EnsureFileDir creates the parent directory of a file path if it doesn't exist.
func EnsureFileDir(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}

// RemoveIfEmpty removes dir when it has no entries. It reports whether the
// directory was removed; a non-empty or missing directory is not an error.
func RemoveIfEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	_, err = f.Readdirnames(1)
	_ = f.Close()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, io.EOF) {
		return false, err
	}
	if err := os.Remove(dir); err != nil {
		return false, err
	}
	return true, nil
}
