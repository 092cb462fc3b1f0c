package hooks

// HookType represents the type of hook.
type HookType string

// Supported hook types.
const (
	// PostFetch runs after a repomd.xml was downloaded.
	PostFetch HookType = "post-fetch"
	// PostSync runs once after the summary was written.
	PostSync HookType = "post-sync"
)

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext carries the variables exposed to a hook script.
type HookContext struct {
	Vars map[string]interface{}
}

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the specified hook type with the given context
	Execute(hookType HookType, ctx HookContext) error

	// AddHook adds a new hook
	AddHook(hook Hook) error

	// HasHook checks if a hook of the specified type exists
	HasHook(hookType HookType) bool
}
