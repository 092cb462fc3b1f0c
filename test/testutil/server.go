// Package testutil provides fixtures shared by the rpmsnap tests: a mirror
// served by httptest and writers for definition and snapshot list files.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cperrin88/rpmsnap/internal/logger"
)

// MirrorPrefix is the path under which the test mirror serves snapshots.
const MirrorPrefix = "/v2/mirror/public"

// Mirror is a test HTTP server laid out like the public RPM mirror.
type Mirror struct {
	Server *httptest.Server

	mu       sync.Mutex
	files    map[string]string
	requests map[string]int
}

// NewMirror starts a mirror that answers 404 for every path not added to it.
// The server is closed when the test finishes.
func NewMirror(t *testing.T) *Mirror {
	t.Helper()
	m := &Mirror{
		files:    make(map[string]string),
		requests: make(map[string]int),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *Mirror) serve(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests[r.URL.Path]++
	body, ok := m.files[r.URL.Path]
	m.mu.Unlock()

	logger.Debugf("test mirror: %s %s", r.Method, r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write([]byte(body))
}

// BaseURL returns the mirror base URL to configure.
func (m *Mirror) BaseURL() string {
	return m.Server.URL + MirrorPrefix
}

// RepomdPath returns the request path of a snapshot's repomd.xml.
func RepomdPath(platform, arch, repo, ts string) string {
	return fmt.Sprintf("%s/%s/%s-%s-%s-%s/repodata/repomd.xml", MirrorPrefix, platform, platform, arch, repo, ts)
}

// AddSnapshot serves body as the repomd.xml of one snapshot.
func (m *Mirror) AddSnapshot(platform, arch, repo, ts, body string) {
	m.Add(RepomdPath(platform, arch, repo, ts), body)
}

// Add serves body at path.
func (m *Mirror) Add(path, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = body
}

// Requests returns how often path was requested.
func (m *Mirror) Requests(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[path]
}

// TotalRequests returns the number of requests served so far.
func (m *Mirror) TotalRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.requests {
		total += n
	}
	return total
}

// RepomdXML renders a minimal repomd.xml document.
func RepomdXML(revision string, types ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<repomd xmlns="http://linux.duke.edu/metadata/repo" xmlns:rpm="http://linux.duke.edu/metadata/rpm">` + "\n")
	fmt.Fprintf(&b, "  <revision>%s</revision>\n", revision)
	for _, typ := range types {
		fmt.Fprintf(&b, "  <data type=%q>\n", typ)
		fmt.Fprintf(&b, "    <checksum type=\"sha256\">%s-sum</checksum>\n", typ)
		fmt.Fprintf(&b, "    <location href=\"repodata/%s.xml.gz\"/>\n", typ)
		fmt.Fprintf(&b, "    <timestamp>%s</timestamp>\n", revision)
		b.WriteString("  </data>\n")
	}
	b.WriteString("</repomd>\n")
	return b.String()
}

// WriteDefinition writes a repository definition file into dir.
func WriteDefinition(t *testing.T, dir, name, storage, snapshotID string) {
	t.Helper()
	def := map[string]string{
		"storage":     storage,
		"snapshot-id": snapshotID,
		"base-url":    "https://example.com/" + snapshotID,
	}
	writeJSON(t, filepath.Join(dir, name+".json"), def)
}

// WriteList writes a snapshot list file.
func WriteList(t *testing.T, path string, identifiers ...string) {
	t.Helper()
	if identifiers == nil {
		identifiers = []string{}
	}
	writeJSON(t, path, identifiers)
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
