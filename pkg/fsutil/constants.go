package fsutil

// File and directory permission constants.
const (
	FileModeDefault = 0o644 // -rw-r--r--: snapshot files and summaries
	FileModeSecure  = 0o640 // -rw-r-----: config files

	DirModeDefault = 0o755 // drwxr-xr-x: snapshot tree
	DirModeSecure  = 0o750 // drwxr-x---: config directory
)
