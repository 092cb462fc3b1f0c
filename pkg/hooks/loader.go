package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/rpmsnap/pkg/errors"
)

// HookFileExtension is the extension of hook scripts.
const HookFileExtension = ".tengo"

// LoadFromDir registers every <hook-type>.tengo script found in dir.
// An empty dir loads nothing. Unknown hook names are rejected so typos
// don't silently disable a hook.
func LoadFromDir(manager HookManager, dir string) error {
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to read hooks directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != HookFileExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), HookFileExtension))
		switch hookType {
		case PostFetch, PostSync:
		default:
			return ErrUnsupportedHookType(hookType)
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errors.Wrapf(err, "error reading hook file %s", hookPath)
		}

		if err := manager.AddHook(Hook{Type: hookType, Content: string(content)}); err != nil {
			return errors.Wrapf(err, "error adding hook %s", hookType)
		}
	}

	return nil
}
