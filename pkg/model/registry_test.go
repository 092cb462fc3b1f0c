package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_SnapshotKeys(t *testing.T) {
	entry := &Entry{Snapshots: map[string]string{
		"20210414": "u2",
		LatestKey:  "u2",
		"20210101": "u1",
	}}

	assert.Equal(t, []string{"20210101", "20210414"}, entry.Timestamps())
	assert.Equal(t, []string{"20210101", "20210414", LatestKey}, entry.SnapshotKeys())
}

func TestEntry_SnapshotKeys_NoLatest(t *testing.T) {
	entry := &Entry{Snapshots: map[string]string{"20210101": "u1"}}
	assert.Equal(t, []string{"20210101"}, entry.SnapshotKeys())
}

func TestDefinition_IsPublic(t *testing.T) {
	assert.True(t, (&Definition{Storage: "public"}).IsPublic())
	assert.False(t, (&Definition{Storage: "rhvpn"}).IsPublic())
	assert.False(t, (&Definition{}).IsPublic())
}

func TestRegistry_LookupAndFilter(t *testing.T) {
	reg := NewRegistry()
	reg.Entries["cs8-appstream-aarch64"] = &Entry{SnapshotID: "cs8-aarch64-appstream"}
	reg.Entries["el9-baseos-x86_64"] = &Entry{SnapshotID: "el9-x86_64-baseos"}
	reg.SnapshotIndex["cs8-aarch64-appstream"] = "cs8-appstream-aarch64"

	key, entry, ok := reg.Lookup("cs8-aarch64-appstream")
	assert.True(t, ok)
	assert.Equal(t, "cs8-appstream-aarch64", key)
	assert.Equal(t, "cs8-aarch64-appstream", entry.SnapshotID)

	_, _, ok = reg.Lookup("el9-x86_64-baseos")
	assert.False(t, ok, "entries without an index mapping are not reachable")

	assert.Equal(t, []string{"cs8-appstream-aarch64", "el9-baseos-x86_64"}, reg.Keys())
	assert.Equal(t, []string{"el9-baseos-x86_64"}, reg.Filter("el9"))
	assert.Equal(t, reg.Keys(), reg.Filter(""))
}
