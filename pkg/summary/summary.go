// Package summary writes and reads the repository summary dump.
package summary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"github.com/cperrin88/rpmsnap/pkg/model"
)

// Indent is the indentation used in the summary file.
const Indent = "    "

// Summary is the serialized form of the registry entries.
type Summary map[string]*model.Entry

// Marshal renders entries as indented JSON without HTML escaping, so URLs
// with query strings survive unchanged.
func Marshal(entries map[string]*model.Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(entries); err != nil {
		return nil, errors.Wrap(err, "failed to encode summary")
	}
	return buf.Bytes(), nil
}

// Write replaces the summary at path with the registry's entries.
func Write(path string, reg *model.Registry) error {
	data, err := Marshal(reg.Entries)
	if err != nil {
		return err
	}
	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write summary %s", path)
	}
	return nil
}

// Load reads a summary written by Write.
func Load(path string) (Summary, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrSummaryMissing, path)
		}
		return nil, errors.Wrapf(err, "failed to read summary %s", path)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, errors.ErrSummaryParse, err)
	}
	return s, nil
}

// Registry rebuilds a registry from a loaded summary.
func (s Summary) Registry() *model.Registry {
	reg := model.NewRegistry()
	for key, entry := range s {
		if entry.Snapshots == nil {
			entry.Snapshots = map[string]string{}
		}
		reg.Entries[key] = entry
		reg.SnapshotIndex[entry.SnapshotID] = key
	}
	return reg
}

// Get returns one entry or ErrRepoNotInDump.
func (s Summary) Get(key string) (*model.Entry, error) {
	entry, ok := s[key]
	if !ok {
		return nil, errors.Wrap(errors.ErrRepoNotInDump, key)
	}
	return entry, nil
}
