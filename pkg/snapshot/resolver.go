// Package snapshot joins the remote snapshot list with the registry and
// selects the latest snapshot per repository.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"github.com/cperrin88/rpmsnap/pkg/model"
)

// Getter fetches a remote resource. pkg/http.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// IsRemote reports whether src names an http(s) URL rather than a local file.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// LoadList reads the JSON array of snapshot identifiers from a local path or,
// when src is an http(s) URL, through getter.
func LoadList(ctx context.Context, src string, getter Getter) ([]string, error) {
	var data []byte
	var err error
	if IsRemote(src) {
		if getter == nil {
			return nil, fmt.Errorf("no HTTP client configured to fetch %s", src)
		}
		data, err = getter.Get(ctx, src)
	} else {
		data, err = os.ReadFile(filepath.Clean(src))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot list %s", src)
	}
	return ParseList(data)
}

// ParseList decodes a snapshot list.
func ParseList(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrSnapshotListParse, err)
	}
	return ids, nil
}

// SplitIdentifier splits "<snapshot_id>-<timestamp>" at the last dash.
func SplitIdentifier(identifier string) (snapshotID, timestamp string, ok bool) {
	i := strings.LastIndex(identifier, "-")
	if i < 0 {
		return "", "", false
	}
	return identifier[:i], identifier[i+1:], true
}

// MirrorURL builds the mirror URL of one snapshot.
func MirrorURL(base, platform, arch, repo, timestamp string) string {
	return fmt.Sprintf("%s/%s/%s-%s-%s-%s/", base, platform, platform, arch, repo, timestamp)
}

// Resolve records a mirror URL under entry.Snapshots[timestamp] for every
// identifier that matches a registered definition. Unknown identifiers and
// timestamps that are not a single path component are skipped. It returns the number of identifiers matched.
func Resolve(reg *model.Registry, identifiers []string, mirrorBase string) int {
	matched := 0
	for _, identifier := range identifiers {
		snapshotID, timestamp, ok := SplitIdentifier(identifier)
		if !ok {
			logger.Debug("Ignoring malformed snapshot identifier", logger.Fields{"identifier": identifier})
			continue
		}
		// the timestamp names a directory of the snapshot tree
		if !fsutil.IsPathComponent(timestamp) {
			logger.Debug("Ignoring snapshot identifier with unusable timestamp", logger.Fields{"identifier": identifier})
			continue
		}
		_, entry, ok := reg.Lookup(snapshotID)
		if !ok {
			continue
		}
		entry.Snapshots[timestamp] = MirrorURL(mirrorBase, entry.Platform, entry.Arch, entry.Repo, timestamp)
		matched++
	}

	logger.Info("Resolved remote snapshots", logger.Fields{
		"listed":  len(identifiers),
		"matched": matched,
	})
	return matched
}
