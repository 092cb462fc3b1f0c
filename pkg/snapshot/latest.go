package snapshot

import (
	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/model"
)

// LatestTimestamp returns the string-maximal timestamp of entry. Comparison is
// plain string ordering, which matches date ordering for fixed-width
// YYYYMMDD timestamps.
func LatestTimestamp(entry *model.Entry) (string, bool) {
	latest := ""
	found := false
	for ts := range entry.Snapshots {
		if ts == model.LatestKey {
			continue
		}
		if !found || ts > latest {
			latest = ts
			found = true
		}
	}
	return latest, found
}

// SelectLatest points snapshots["latest"] at the newest snapshot of every
// entry and records its timestamp. Entries without snapshots are left
// untouched; their keys are returned in sorted order.
func SelectLatest(reg *model.Registry) []string {
	var empty []string
	for _, key := range reg.Keys() {
		entry := reg.Entries[key]
		latest, ok := LatestTimestamp(entry)
		if !ok {
			logger.Warn("Repository has no snapshots", logger.Fields{"repo": key})
			empty = append(empty, key)
			continue
		}
		entry.Snapshots[model.LatestKey] = entry.Snapshots[latest]
		entry.LatestSnapshot = latest
	}
	return empty
}
