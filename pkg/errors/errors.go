// Package errors holds the sentinel errors shared across rpmsnap and small
// helpers for wrapping them with context.
package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileRename  = fmt.Errorf("failed to write config file")
	ErrConfigFileExists  = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrUnknownConfigKey  = fmt.Errorf("unknown configuration key")
	ErrInvalidLogLevel   = fmt.Errorf("invalid log level")
	ErrInvalidLogFormat  = fmt.Errorf("invalid log format")
	ErrHTTPTimeoutNeg    = fmt.Errorf("http_timeout cannot be negative")
	ErrMirrorURLInvalid  = fmt.Errorf("mirror base URL is invalid")
	ErrEmptySettingValue = fmt.Errorf("setting cannot be empty")

	// Definition errors.
	ErrDefinitionParse   = fmt.Errorf("failed to parse repository definition")
	ErrSnapshotIDInvalid = fmt.Errorf("invalid snapshot id")

	// Snapshot list errors.
	ErrSnapshotListParse = fmt.Errorf("failed to parse snapshot list")

	// Download errors.
	ErrUnexpectedStatus = fmt.Errorf("unexpected status code")

	// Cache errors.
	ErrCacheDirectory = fmt.Errorf("cache directory cannot be empty")
	ErrCacheClean     = fmt.Errorf("failed to clean cache")
	ErrInvalidRepoKey = fmt.Errorf("invalid repository key")

	// Export errors.
	ErrArchiveInsideSource = fmt.Errorf("archive path lies inside the snapshot directory")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")

	// Summary errors.
	ErrSummaryParse   = fmt.Errorf("failed to parse summary")
	ErrRepoNotInDump  = fmt.Errorf("repository not found in summary")
	ErrSummaryMissing = fmt.Errorf("summary file not found (run sync first)")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
