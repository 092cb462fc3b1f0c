package cache

// Manager defines the interface for snapshot cache operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
	ListCached(repoID string) ([]string, error)
	GetDirectory() string
}

// CleanOptions specifies what to clean from the cache.
type CleanOptions struct {
	// Repos limits cleaning to these registry keys; empty means everything.
	Repos []string
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed   int64
	FilesRemoved int
	ReposRemoved []string
}

// Info represents cache information.
type Info struct {
	Directory    string
	Repositories int
	Snapshots    int
	Files        int
	TotalSize    int64
}
