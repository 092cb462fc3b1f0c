// Package cache inspects and prunes the on-disk snapshot tree.
package cache

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
)

// RepomdFile is the file whose presence marks a cached snapshot.
const RepomdFile = "repomd.xml"

// DefaultManager implements the Manager interface for the snapshot tree.
type DefaultManager struct {
	directory string
}

// NewManager creates a new cache manager rooted at directory.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{
		directory: directory,
	}
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// GetInfo returns information about the cache. A missing directory is empty.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	if cm.directory == "" {
		return nil, errors.ErrCacheDirectory
	}
	info := &Info{Directory: cm.directory}

	repos, err := cm.repoDirs()
	if err != nil {
		return nil, err
	}
	info.Repositories = len(repos)

	for _, repo := range repos {
		cached, err := cm.ListCached(repo)
		if err != nil {
			return nil, err
		}
		info.Snapshots += len(cached)
	}

	if len(repos) > 0 {
		size, files, err := fsutil.DirSize(cm.directory)
		if err != nil {
			return nil, errors.Wrapf(err, "error walking directory %s", cm.directory)
		}
		info.TotalSize = size
		info.Files = files
	}

	return info, nil
}

// ListCached returns the snapshot keys of repoID that have a repomd.xml, sorted.
func (cm *DefaultManager) ListCached(repoID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(cm.directory, repoID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read cache for %s", repoID)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() && fsutil.FileExists(filepath.Join(cm.directory, repoID, e.Name(), RepomdFile)) {
			out = append(out, e.Name())
		}
	}
	slices.Sort(out)
	return out, nil
}

// Clean removes the cached snapshots of the selected repositories. Keys that
// are not a single directory name below the cache are rejected with
// ErrInvalidRepoKey and nothing is removed.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	if cm.directory == "" {
		return nil, errors.ErrCacheDirectory
	}

	repos := options.Repos
	if len(repos) == 0 {
		var err error
		if repos, err = cm.repoDirs(); err != nil {
			return nil, err
		}
	}

	// Every key must name a directory directly below the cache before
	// anything is removed.
	for _, repo := range repos {
		if !fsutil.IsPathComponent(repo) || !fsutil.IsWithin(cm.directory, filepath.Join(cm.directory, repo)) {
			return nil, errors.Wrapf(errors.ErrInvalidRepoKey, "%q", repo)
		}
	}

	result := &CleanResult{}
	for _, repo := range repos {
		dir := filepath.Join(cm.directory, repo)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		size, files, err := fsutil.DirSize(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "error walking directory %s", dir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return nil, errors.Wrapf(errors.ErrCacheClean, "failed to remove %s: %v", dir, err)
		}
		result.TotalFreed += size
		result.FilesRemoved += files
		result.ReposRemoved = append(result.ReposRemoved, repo)
	}

	return result, nil
}

func (cm *DefaultManager) repoDirs() ([]string, error) {
	entries, err := os.ReadDir(cm.directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read cache directory %s", cm.directory)
	}
	var repos []string
	for _, e := range entries {
		if e.IsDir() {
			repos = append(repos, e.Name())
		}
	}
	slices.Sort(repos)
	return repos, nil
}
