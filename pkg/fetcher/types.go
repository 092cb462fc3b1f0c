package fetcher

import "github.com/cperrin88/rpmsnap/pkg/hooks"

// RepomdFile is the name of the cached metadata index inside a snapshot directory.
const RepomdFile = "repomd.xml"

// Pair identifies one snapshot of one repository.
type Pair struct {
	RepoID    string
	Timestamp string
}

// Failure records a snapshot whose download was rejected by the mirror.
type Failure struct {
	Pair
	URL        string
	StatusCode int
}

// Result summarizes one sync pass.
type Result struct {
	Fetched []Pair
	Skipped []Pair
	Failed  []Failure
}

// Event represents a progress notification for a single pair.
type Event struct {
	Phase string // skipped|fetching|fetched|failed
	Pair  Pair
	URL   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// Options configures a Fetcher.
type Options struct {
	// Dir is the root of the snapshot tree.
	Dir string
	// Scripts runs post-fetch hooks; nil disables them.
	Scripts hooks.HookManager
	Hooks   Hooks
}
