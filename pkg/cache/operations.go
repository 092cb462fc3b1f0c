package cache

import (
	"fmt"
	"strings"
)

// FormatBytes renders a byte count using binary units.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Describe returns a human-readable description of the cache.
func Describe(info *Info) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Snapshot cache:\n")
	fmt.Fprintf(&b, "  Directory:     %s\n", info.Directory)
	fmt.Fprintf(&b, "  Repositories:  %d\n", info.Repositories)
	fmt.Fprintf(&b, "  Snapshots:     %d\n", info.Snapshots)
	fmt.Fprintf(&b, "  Files:         %d\n", info.Files)
	fmt.Fprintf(&b, "  Total size:    %s\n", FormatBytes(info.TotalSize))
	return b.String()
}
