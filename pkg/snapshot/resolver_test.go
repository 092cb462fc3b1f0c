package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	rserrors "github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	httpmocks "github.com/cperrin88/rpmsnap/pkg/http/mocks"
	"github.com/cperrin88/rpmsnap/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const mirrorBase = "https://rpmrepo.osbuild.org/v2/mirror/public"

func newRegistry() *model.Registry {
	reg := model.NewRegistry()
	reg.Entries["cs8-appstream-aarch64"] = &model.Entry{
		Platform: "cs8", Arch: "aarch64", Repo: "appstream",
		SnapshotID: "cs8-aarch64-appstream",
		BaseURL:    "http://mirror.centos.org/centos/8/AppStream/aarch64/os/",
		Snapshots:  map[string]string{},
	}
	reg.SnapshotIndex["cs8-aarch64-appstream"] = "cs8-appstream-aarch64"
	reg.Entries["el8-codeready-builder-x86_64"] = &model.Entry{
		Platform: "el8", Arch: "x86_64", Repo: "codeready-builder",
		SnapshotID: "el8-x86_64-codeready-builder",
		Snapshots:  map[string]string{},
	}
	reg.SnapshotIndex["el8-x86_64-codeready-builder"] = "el8-codeready-builder-x86_64"
	return reg
}

func TestSplitIdentifier(t *testing.T) {
	id, ts, ok := SplitIdentifier("el8-x86_64-codeready-builder-20210414")
	require.True(t, ok)
	assert.Equal(t, "el8-x86_64-codeready-builder", id)
	assert.Equal(t, "20210414", ts)

	_, _, ok = SplitIdentifier("nodash")
	assert.False(t, ok)
}

func TestMirrorURL(t *testing.T) {
	assert.Equal(t,
		"https://rpmrepo.osbuild.org/v2/mirror/public/cs8/cs8-aarch64-appstream-20210414/",
		MirrorURL(mirrorBase, "cs8", "aarch64", "appstream", "20210414"))
}

func TestResolve(t *testing.T) {
	reg := newRegistry()
	matched := Resolve(reg, []string{
		"cs8-aarch64-appstream-20210414",
		"cs8-aarch64-appstream-20210101",
		"cs8-aarch64-appstream-20210101",
		"el8-x86_64-codeready-builder-20211201",
		"el8-x86_64-baseos-20211201",
		"garbage",
	}, mirrorBase)

	assert.Equal(t, 4, matched)

	cs8 := reg.Entries["cs8-appstream-aarch64"]
	assert.Equal(t, map[string]string{
		"20210414": mirrorBase + "/cs8/cs8-aarch64-appstream-20210414/",
		"20210101": mirrorBase + "/cs8/cs8-aarch64-appstream-20210101/",
	}, cs8.Snapshots)

	el8 := reg.Entries["el8-codeready-builder-x86_64"]
	assert.Equal(t, map[string]string{
		"20211201": mirrorBase + "/el8/el8-x86_64-codeready-builder-20211201/",
	}, el8.Snapshots)
	assert.Len(t, reg.Entries, 2, "unknown snapshots must not create entries")
}

func TestResolve_SkipsUnusableTimestamps(t *testing.T) {
	reg := newRegistry()
	matched := Resolve(reg, []string{
		"cs8-aarch64-appstream-../../../x",
		"cs8-aarch64-appstream-..",
		"cs8-aarch64-appstream-.",
		"cs8-aarch64-appstream-",
		`cs8-aarch64-appstream-a\b`,
		"cs8-aarch64-appstream-20210414",
	}, mirrorBase)

	assert.Equal(t, 1, matched)
	assert.Equal(t, map[string]string{
		"20210414": mirrorBase + "/cs8/cs8-aarch64-appstream-20210414/",
	}, reg.Entries["cs8-appstream-aarch64"].Snapshots)
}

func TestLoadList_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo-list.json")
	require.NoError(t, os.WriteFile(path, []byte(`["cs8-aarch64-appstream-20210414", "f34-x86_64-fedora-20210512"]`), fsutil.FileModeDefault))

	ids, err := LoadList(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"cs8-aarch64-appstream-20210414", "f34-x86_64-fedora-20210512"}, ids)
}

func TestLoadList_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repo-list.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "a list"}`), fsutil.FileModeDefault))

	_, err := LoadList(context.Background(), path, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rserrors.ErrSnapshotListParse))
}

func TestLoadList_Missing(t *testing.T) {
	_, err := LoadList(context.Background(), filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestLoadList_Remote(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := httpmocks.NewMockClient(ctrl)
	client.EXPECT().Get(gomock.Any(), "https://example.com/repo-list.json").
		Return([]byte(`["cs8-aarch64-appstream-20210414"]`), nil).Times(1)

	ids, err := LoadList(context.Background(), "https://example.com/repo-list.json", client)
	require.NoError(t, err)
	assert.Equal(t, []string{"cs8-aarch64-appstream-20210414"}, ids)
}

func TestLoadList_RemoteWithoutClient(t *testing.T) {
	_, err := LoadList(context.Background(), "https://example.com/repo-list.json", nil)
	assert.Error(t, err)
}
