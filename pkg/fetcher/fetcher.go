// Package fetcher downloads repomd.xml for every resolved snapshot into the
// on-disk snapshot tree, one request at a time.
package fetcher

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"github.com/cperrin88/rpmsnap/pkg/hooks"
	rshttp "github.com/cperrin88/rpmsnap/pkg/http"
	"github.com/cperrin88/rpmsnap/pkg/model"
)

// Fetcher walks a registry and fills the snapshot tree.
type Fetcher struct {
	client rshttp.Client
	opts   Options
}

// New creates a Fetcher writing below opts.Dir.
func New(client rshttp.Client, opts Options) *Fetcher {
	return &Fetcher{client: client, opts: opts}
}

// SnapshotDir returns <dir>/<repoID>/<timestamp>.
func SnapshotDir(dir, repoID, timestamp string) string {
	return filepath.Join(dir, repoID, timestamp)
}

// RepomdPath returns the cached repomd.xml location of a snapshot.
func RepomdPath(dir, repoID, timestamp string) string {
	return filepath.Join(SnapshotDir(dir, repoID, timestamp), RepomdFile)
}

func (f *Fetcher) emit(e Event) {
	if f.opts.Hooks.OnEvent != nil {
		f.opts.Hooks.OnEvent(e)
	}
}

// Sync fetches every (repository, timestamp) pair of reg, including the
// latest key, sequentially in sorted order. Mirror rejections are recorded in
// the result and do not stop the pass; transport errors, hook failures and
// context cancellation abort it.
func (f *Fetcher) Sync(ctx context.Context, reg *model.Registry) (*Result, error) {
	if f.client == nil {
		return nil, fmt.Errorf("http client is not configured")
	}
	if f.opts.Dir == "" {
		return nil, errors.ErrCacheDirectory
	}

	result := &Result{}
	for _, repoID := range reg.Keys() {
		entry := reg.Entries[repoID]
		for _, ts := range entry.SnapshotKeys() {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := f.fetchOne(ctx, Pair{RepoID: repoID, Timestamp: ts}, entry.Snapshots[ts], result); err != nil {
				return result, err
			}
		}
	}

	logger.Info("Snapshot fetch finished", logger.Fields{
		"fetched": len(result.Fetched),
		"skipped": len(result.Skipped),
		"failed":  len(result.Failed),
	})
	return result, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, pair Pair, snapshotURL string, result *Result) error {
	dir := SnapshotDir(f.opts.Dir, pair.RepoID, pair.Timestamp)
	if err := fsutil.EnsureDir(dir); err != nil {
		return errors.Wrapf(err, "failed to create snapshot directory %s", dir)
	}

	target := filepath.Join(dir, RepomdFile)
	if fsutil.FileExists(target) {
		result.Skipped = append(result.Skipped, pair)
		f.emit(Event{Phase: "skipped", Pair: pair})
		logger.Debug("Snapshot already cached", logger.Fields{"repo": pair.RepoID, "timestamp": pair.Timestamp})
		return nil
	}

	repomdURL, err := rshttp.RepomdURL(snapshotURL)
	if err != nil {
		f.release(dir)
		return err
	}

	f.emit(Event{Phase: "fetching", Pair: pair, URL: repomdURL})
	logger.Debug("Fetching repomd.xml", logger.Fields{"repo": pair.RepoID, "timestamp": pair.Timestamp, "url": repomdURL})

	if err := f.client.DownloadFile(ctx, repomdURL, target); err != nil {
		f.release(dir)

		var statusErr *rshttp.StatusError
		if stderrors.As(err, &statusErr) {
			result.Failed = append(result.Failed, Failure{Pair: pair, URL: repomdURL, StatusCode: statusErr.StatusCode})
			f.emit(Event{Phase: "failed", Pair: pair, URL: repomdURL})
			logger.Warn("Mirror rejected snapshot", logger.Fields{
				"repo":      pair.RepoID,
				"timestamp": pair.Timestamp,
				"url":       repomdURL,
				"status":    statusErr.StatusCode,
			})
			return nil
		}
		return errors.Wrapf(err, "fetching %s/%s", pair.RepoID, pair.Timestamp)
	}

	result.Fetched = append(result.Fetched, pair)
	f.emit(Event{Phase: "fetched", Pair: pair, URL: repomdURL})

	if f.opts.Scripts != nil {
		hookCtx := hooks.HookContext{Vars: map[string]interface{}{
			"repoID":      pair.RepoID,
			"timestamp":   pair.Timestamp,
			"snapshotURL": snapshotURL,
			"repomdPath":  target,
		}}
		if err := f.opts.Scripts.Execute(hooks.PostFetch, hookCtx); err != nil {
			return err
		}
	}
	return nil
}

// release removes a snapshot directory left empty by a failed download.
// A directory holding any file is kept.
func (f *Fetcher) release(dir string) {
	if _, err := fsutil.RemoveIfEmpty(dir); err != nil {
		logger.Warn("Failed to remove snapshot directory", logger.Fields{"dir": dir, "error": err.Error()})
	}
}
