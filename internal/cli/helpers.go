package cli

import (
	"fmt"

	"github.com/cperrin88/rpmsnap/internal/logger"
	"github.com/cperrin88/rpmsnap/pkg/config"
	"github.com/cperrin88/rpmsnap/pkg/hooks"
	rshttp "github.com/cperrin88/rpmsnap/pkg/http"
	"github.com/fatih/color"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

// loadConfig loads the configuration and applies the global flags to the
// logger and console colors.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.InitLogger(level, logger.OutputFormat(cfg.Settings.LogFormat))

	if NoColor != nil && *NoColor {
		color.NoColor = true
	}

	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}
	return config.GetDefaultConfigPath()
}

func newHTTPClient(cfg *config.Config) *rshttp.HTTPClient {
	userAgent := cfg.Settings.UserAgent
	if userAgent == "" {
		userAgent = "rpmsnap/" + Version
	}
	return rshttp.NewHTTPClient(cfg.Settings.HTTPTimeout, userAgent)
}

// loadHooks returns the hook scripts found in dir, or nil when hooks are disabled.
func loadHooks(dir string) (hooks.HookManager, error) {
	if dir == "" {
		return nil, nil
	}
	executor := hooks.NewTengoExecutor()
	if err := hooks.LoadFromDir(executor, dir); err != nil {
		return nil, err
	}
	return executor, nil
}
