// Package export bundles the snapshot tree and summary into a tar.gz archive.
package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"github.com/mholt/archives"
)

// SnapshotsPrefix is the directory inside the archive holding the snapshot tree.
const SnapshotsPrefix = "snapshots"

// Archive writes a gzip compressed tarball to out containing snapshotsDir
// under SnapshotsPrefix and, if present, the summary file at the root. out
// must not lie inside snapshotsDir.
func Archive(ctx context.Context, out, snapshotsDir, summaryPath string) (err error) {
	if _, err := os.Stat(snapshotsDir); err != nil {
		return errors.Wrapf(err, "snapshot directory %s", snapshotsDir)
	}
	if fsutil.IsWithin(snapshotsDir, out) {
		return errors.Wrap(errors.ErrArchiveInsideSource, out)
	}

	// Normalize source root to forward slashes and a trailing slash so the
	// directory contents, not the directory itself, land under the prefix.
	srcRoot := filepath.ToSlash(snapshotsDir)
	if !strings.HasSuffix(srcRoot, "/") {
		srcRoot += "/"
	}
	sources := map[string]string{srcRoot: SnapshotsPrefix}
	if summaryPath != "" && fsutil.FileExists(summaryPath) {
		sources[summaryPath] = filepath.Base(summaryPath)
	}

	files, err := archives.FilesFromDisk(ctx, nil, sources)
	if err != nil {
		return errors.Wrap(err, "failed to read files from disk")
	}

	if err := fsutil.EnsureFileDir(out); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", out)
	}
	file, err := os.Create(filepath.Clean(out))
	if err != nil {
		return errors.Wrapf(err, "failed to create output file %s", out)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "failed to close %s", out)
		}
		if err != nil {
			_ = os.Remove(out)
		}
	}()

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	if err := format.Archive(ctx, file, files); err != nil {
		return errors.Wrap(err, "failed to write archive")
	}
	return nil
}
