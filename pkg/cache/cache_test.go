package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cperrin88/rpmsnap/pkg/cache"
	rserrors "github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, dir, repo, ts, body string) {
	t.Helper()
	path := filepath.Join(dir, repo, ts, cache.RepomdFile)
	require.NoError(t, fsutil.EnsureFileDir(path))
	require.NoError(t, os.WriteFile(path, []byte(body), fsutil.FileModeDefault))
}

func TestGetInfo(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, "cs8-appstream-aarch64", "20210414", "12345")
	seed(t, dir, "cs8-appstream-aarch64", "latest", "12345")
	seed(t, dir, "el9-baseos-x86_64", "20220101", "123")
	require.NoError(t, fsutil.EnsureDir(filepath.Join(dir, "el9-baseos-x86_64", "20220202")))

	info, err := cache.NewManager(dir).GetInfo()
	require.NoError(t, err)

	assert.Equal(t, dir, info.Directory)
	assert.Equal(t, 2, info.Repositories)
	assert.Equal(t, 3, info.Snapshots, "empty snapshot directories are not cached snapshots")
	assert.Equal(t, 3, info.Files)
	assert.Equal(t, int64(13), info.TotalSize)
}

func TestGetInfo_MissingDirectory(t *testing.T) {
	info, err := cache.NewManager(filepath.Join(t.TempDir(), "missing")).GetInfo()
	require.NoError(t, err)
	assert.Zero(t, info.Repositories)
	assert.Zero(t, info.TotalSize)

	_, err = cache.NewManager("").GetInfo()
	assert.Error(t, err)
}

func TestListCached(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, "cs8-appstream-aarch64", "latest", "x")
	seed(t, dir, "cs8-appstream-aarch64", "20210101", "x")

	cached, err := cache.NewManager(dir).ListCached("cs8-appstream-aarch64")
	require.NoError(t, err)
	assert.Equal(t, []string{"20210101", "latest"}, cached)

	cached, err = cache.NewManager(dir).ListCached("unknown")
	require.NoError(t, err)
	assert.Empty(t, cached)
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, "cs8-appstream-aarch64", "20210414", "12345")
	seed(t, dir, "el9-baseos-x86_64", "20220101", "123")

	mgr := cache.NewManager(dir)

	result, err := mgr.Clean(cache.CleanOptions{Repos: []string{"el9-baseos-x86_64", "missing"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalFreed)
	assert.Equal(t, []string{"el9-baseos-x86_64"}, result.ReposRemoved)
	assert.NoDirExists(t, filepath.Join(dir, "el9-baseos-x86_64"))
	assert.DirExists(t, filepath.Join(dir, "cs8-appstream-aarch64"))

	result, err = mgr.Clean(cache.CleanOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.TotalFreed)
	assert.Equal(t, 1, result.FilesRemoved)
	assert.NoDirExists(t, filepath.Join(dir, "cs8-appstream-aarch64"))
}

func TestClean_RejectsPathKeys(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "snapshots")
	seed(t, dir, "cs8-appstream-aarch64", "20210414", "12345")
	definitions := filepath.Join(root, "repo_definitions")
	require.NoError(t, fsutil.EnsureDir(definitions))
	require.NoError(t, os.WriteFile(filepath.Join(definitions, "cs8.json"), []byte("{}"), fsutil.FileModeDefault))

	mgr := cache.NewManager(dir)
	for _, key := range []string{"..", ".", "", "../repo_definitions", "cs8-appstream-aarch64/20210414", `..\x`} {
		t.Run(key, func(t *testing.T) {
			result, err := mgr.Clean(cache.CleanOptions{Repos: []string{"cs8-appstream-aarch64", key}})
			require.ErrorIs(t, err, rserrors.ErrInvalidRepoKey)
			assert.Nil(t, result)
		})
	}

	assert.FileExists(t, filepath.Join(definitions, "cs8.json"))
	assert.DirExists(t, filepath.Join(dir, "cs8-appstream-aarch64"), "a rejected batch removes nothing")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", cache.FormatBytes(512))
	assert.Equal(t, "1.0 KiB", cache.FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", cache.FormatBytes(1536*1024))
}

func TestDescribe(t *testing.T) {
	out := cache.Describe(&cache.Info{Directory: "snapshots", Repositories: 2, Snapshots: 3, Files: 3, TotalSize: 2048})
	assert.Contains(t, out, "Directory:     snapshots")
	assert.Contains(t, out, "Total size:    2.0 KiB")
}
