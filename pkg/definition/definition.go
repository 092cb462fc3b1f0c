// Package definition loads repository definition files and builds the
// registry that later pipeline stages fill with snapshots.
package definition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/model"
)

// SnapshotID is a parsed definition snapshot-id.
type SnapshotID struct {
	Platform string
	Arch     string
	Repo     string
}

// ParseSnapshotID splits "platform-arch-repo" with at most two splits, so any
// further dashes stay in the repo name. Arch is assumed to have no dashes.
func ParseSnapshotID(id string) (SnapshotID, error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 {
		return SnapshotID{}, errors.Wrapf(errors.ErrSnapshotIDInvalid, "%q: expected platform-arch-repo", id)
	}
	return SnapshotID{Platform: parts[0], Arch: parts[1], Repo: parts[2]}, nil
}

// RegistryKey derives the registry key "platform-repo-arch".
func RegistryKey(platform, repo, arch string) string {
	return fmt.Sprintf("%s-%s-%s", platform, repo, arch)
}

// Key returns the registry key for the parsed id.
func (s SnapshotID) Key() string {
	return RegistryKey(s.Platform, s.Repo, s.Arch)
}

// ReadFile parses a single definition file.
func ReadFile(path string) (*model.Definition, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read definition %s", path)
	}
	var def model.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, errors.ErrDefinitionParse, err)
	}
	return &def, nil
}

// Add registers a public definition in reg. Non-public definitions are
// ignored and reported as not added. A later definition with the same key
// replaces the earlier one.
func Add(reg *model.Registry, def *model.Definition) (bool, error) {
	if !def.IsPublic() {
		return false, nil
	}
	id, err := ParseSnapshotID(def.SnapshotID)
	if err != nil {
		return false, err
	}
	key := id.Key()
	reg.SnapshotIndex[def.SnapshotID] = key
	reg.Entries[key] = &model.Entry{
		Platform:   id.Platform,
		Arch:       id.Arch,
		Repo:       id.Repo,
		SnapshotID: def.SnapshotID,
		BaseURL:    def.BaseURL,
		Snapshots:  map[string]string{},
	}
	return true, nil
}

// LoadDir reads every *.json file in dir, in filename order, and returns the
// registry of public repositories. Any malformed file aborts the load.
func LoadDir(dir string) (*model.Registry, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list definitions in %s", dir)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrapf(err, "definitions directory %s", dir)
	}
	slices.Sort(files)

	reg := model.NewRegistry()
	skipped := 0
	for _, file := range files {
		def, err := ReadFile(file)
		if err != nil {
			return nil, err
		}
		added, err := Add(reg, def)
		if err != nil {
			return nil, errors.Wrap(err, file)
		}
		if !added {
			skipped++
			logger.Debug("Skipping non-public definition", logger.Fields{"file": filepath.Base(file), "storage": def.Storage})
		}
	}

	logger.Info("Loaded repository definitions", logger.Fields{
		"dir":     dir,
		"files":   len(files),
		"public":  len(reg.Entries),
		"skipped": skipped,
	})
	return reg, nil
}
