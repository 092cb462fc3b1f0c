package export

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	out := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		require.NoError(t, err)
		out[strings.TrimPrefix(hdr.Name, "./")] = string(data)
	}
	return out
}

func TestArchive(t *testing.T) {
	work := t.TempDir()
	snapshots := filepath.Join(work, "snapshots")
	repomd := filepath.Join(snapshots, "cs8-appstream-aarch64", "20210414", "repomd.xml")
	require.NoError(t, fsutil.EnsureFileDir(repomd))
	require.NoError(t, os.WriteFile(repomd, []byte("<repomd/>"), fsutil.FileModeDefault))
	summaryPath := filepath.Join(work, "repo_data_dump.json")
	require.NoError(t, os.WriteFile(summaryPath, []byte("{}"), fsutil.FileModeDefault))

	out := filepath.Join(work, "dist", "snapshots.tar.gz")
	require.NoError(t, Archive(context.Background(), out, snapshots, summaryPath))

	files := listArchive(t, out)
	assert.Equal(t, "<repomd/>", files["snapshots/cs8-appstream-aarch64/20210414/repomd.xml"])
	assert.Equal(t, "{}", files["repo_data_dump.json"])
}

func TestArchive_WithoutSummary(t *testing.T) {
	work := t.TempDir()
	snapshots := filepath.Join(work, "snapshots")
	require.NoError(t, fsutil.EnsureDir(filepath.Join(snapshots, "r", "1")))
	require.NoError(t, os.WriteFile(filepath.Join(snapshots, "r", "1", "repomd.xml"), []byte("x"), fsutil.FileModeDefault))

	out := filepath.Join(work, "out.tar.gz")
	require.NoError(t, Archive(context.Background(), out, snapshots, filepath.Join(work, "missing.json")))
	assert.Len(t, listArchive(t, out), 1)
}

func TestArchive_MissingSnapshots(t *testing.T) {
	work := t.TempDir()
	err := Archive(context.Background(), filepath.Join(work, "out.tar.gz"), filepath.Join(work, "missing"), "")
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(work, "out.tar.gz"))
}

func TestArchive_RejectsOutputInsideSnapshots(t *testing.T) {
	snapshots := filepath.Join(t.TempDir(), "snapshots")
	require.NoError(t, fsutil.EnsureDir(filepath.Join(snapshots, "cs8-appstream-aarch64")))

	out := filepath.Join(snapshots, "cs8-appstream-aarch64", "export.tar.gz")
	err := Archive(context.Background(), out, snapshots, "")
	require.ErrorIs(t, err, errors.ErrArchiveInsideSource)
	assert.NoFileExists(t, out)
}
