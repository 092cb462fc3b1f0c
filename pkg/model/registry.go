// Package model provides the data structures shared by the rpmsnap pipeline:
// repository definitions as read from disk and the registry built from them.
package model

import (
	"slices"
	"strings"
)

// LatestKey is the synthetic snapshot key pointing at the newest snapshot.
const LatestKey = "latest"

// StoragePublic is the only storage class rpmsnap considers.
const StoragePublic = "public"

// Definition is a single repository definition file.
type Definition struct {
	Storage    string `json:"storage"`
	SnapshotID string `json:"snapshot-id"`
	BaseURL    string `json:"base-url"`
}

// IsPublic reports whether the definition lives on public storage.
func (d *Definition) IsPublic() bool {
	return d.Storage == StoragePublic
}

// Entry is one repository in the registry, keyed by its registry key.
type Entry struct {
	Platform       string            `json:"platform"`
	Arch           string            `json:"arch"`
	Repo           string            `json:"repo"`
	SnapshotID     string            `json:"snapshot_id"`
	BaseURL        string            `json:"base_url"`
	Snapshots      map[string]string `json:"snapshots"`
	LatestSnapshot string            `json:"latest_snapshot,omitempty"`
}

// Timestamps returns the entry's real snapshot timestamps in ascending order,
// without the synthetic latest key.
func (e *Entry) Timestamps() []string {
	out := make([]string, 0, len(e.Snapshots))
	for ts := range e.Snapshots {
		if ts == LatestKey {
			continue
		}
		out = append(out, ts)
	}
	slices.Sort(out)
	return out
}

// SnapshotKeys returns every snapshot key in fetch order: timestamps
// ascending, then latest.
func (e *Entry) SnapshotKeys() []string {
	keys := e.Timestamps()
	if _, ok := e.Snapshots[LatestKey]; ok {
		keys = append(keys, LatestKey)
	}
	return keys
}

// Registry holds the entries built from the definitions together with the
// index used to join remote snapshot identifiers back to registry keys.
type Registry struct {
	Entries map[string]*Entry
	// SnapshotIndex maps a definition's snapshot-id to its registry key.
	SnapshotIndex map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Entries:       make(map[string]*Entry),
		SnapshotIndex: make(map[string]string),
	}
}

// Keys returns the registry keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.Entries))
	for k := range r.Entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Lookup resolves a snapshot-id to its entry.
func (r *Registry) Lookup(snapshotID string) (string, *Entry, bool) {
	key, ok := r.SnapshotIndex[snapshotID]
	if !ok {
		return "", nil, false
	}
	entry, ok := r.Entries[key]
	return key, entry, ok
}

// Filter returns the keys that contain substr, in sorted order.
func (r *Registry) Filter(substr string) []string {
	if substr == "" {
		return r.Keys()
	}
	var keys []string
	for _, k := range r.Keys() {
		if strings.Contains(k, substr) {
			keys = append(keys, k)
		}
	}
	return keys
}
