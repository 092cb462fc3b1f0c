//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cperrin88/rpmsnap/test/testutil"
	"github.com/stretchr/testify/require"
)

const (
	cs8Appstream = "cs8-appstream-aarch64"
	cs8ID        = "cs8-aarch64-appstream"
)

// workspace is a temporary project directory with its own config, wired to
// a test mirror.
type workspace struct {
	dir          string
	defsDir      string
	listPath     string
	snapshotsDir string
	summaryPath  string
	hooksDir     string
	cfgPath      string
	mirror       *testutil.Mirror
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{
		dir:          dir,
		defsDir:      filepath.Join(dir, "repo_definitions"),
		listPath:     filepath.Join(dir, "repo-list.json"),
		snapshotsDir: filepath.Join(dir, "snapshots"),
		summaryPath:  filepath.Join(dir, "repo_data_dump.json"),
		hooksDir:     filepath.Join(dir, "hooks"),
		cfgPath:      filepath.Join(dir, "rpmsnap.yaml"),
		mirror:       testutil.NewMirror(t),
	}
	require.NoError(t, os.MkdirAll(ws.defsDir, 0o755))
	require.NoError(t, os.MkdirAll(ws.hooksDir, 0o755))

	yamlContent := `settings:
  definitions_dir: ` + ws.defsDir + `
  repo_list: ` + ws.listPath + `
  mirror_base_url: ` + ws.mirror.BaseURL() + `
  snapshots_dir: ` + ws.snapshotsDir + `
  summary_path: ` + ws.summaryPath + `
  hooks_dir: ` + ws.hooksDir + `
  http_timeout: 5s
`
	require.NoError(t, os.WriteFile(ws.cfgPath, []byte(yamlContent), 0o600))
	return ws
}

// seedCS8 defines the cs8 appstream repository and lists its snapshots.
func (ws *workspace) seedCS8(t *testing.T, served []string, listed ...string) {
	t.Helper()
	testutil.WriteDefinition(t, ws.defsDir, "cs8-appstream", "public", cs8ID)
	ids := make([]string, 0, len(listed))
	for _, ts := range listed {
		ids = append(ids, cs8ID+"-"+ts)
	}
	testutil.WriteList(t, ws.listPath, ids...)
	for _, ts := range served {
		ws.mirror.AddSnapshot("cs8", "aarch64", "appstream", ts, testutil.RepomdXML(ts, "primary", "filelists"))
	}
}

func (ws *workspace) repomdFile(ts string) string {
	return filepath.Join(ws.snapshotsDir, cs8Appstream, ts, "repomd.xml")
}

// run executes the root command against the workspace config and returns
// everything written to stdout.
func (ws *workspace) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", ws.cfgPath, "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
