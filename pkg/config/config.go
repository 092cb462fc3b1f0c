// Package config provides configuration management for rpmsnap. Settings are
// read from a YAML file; a missing file yields the defaults, which reproduce
// the fixed layout of a plain run in the working directory.
package config

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Inputs
	DefinitionsDir string `yaml:"definitions_dir"`
	RepoList       string `yaml:"repo_list"` // path or http(s) URL
	MirrorBaseURL  string `yaml:"mirror_base_url"`

	// Outputs
	SnapshotsDir string `yaml:"snapshots_dir"`
	SummaryPath  string `yaml:"summary_path"`

	// Hook scripts; empty disables hooks
	HooksDir string `yaml:"hooks_dir,omitempty"`

	// Network settings; a zero timeout never times out
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent,omitempty"`

	// Output settings
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
}

// Default configuration values.
const (
	DefaultConfigFile     = "rpmsnap.yaml"
	DefaultDefinitionsDir = "repo_definitions"
	DefaultRepoList       = "repo-list.json"
	DefaultMirrorBaseURL  = "https://rpmrepo.osbuild.org/v2/mirror/public"
	DefaultSnapshotsDir   = "snapshots"
	DefaultSummaryPath    = "repo_data_dump.json"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with the default settings.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			DefinitionsDir: DefaultDefinitionsDir,
			RepoList:       DefaultRepoList,
			MirrorBaseURL:  DefaultMirrorBaseURL,
			SnapshotsDir:   DefaultSnapshotsDir,
			SummaryPath:    DefaultSummaryPath,
			LogLevel:       DefaultLogLevel,
			LogFormat:      DefaultLogFormat,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// applyDefaults fills unset settings with their defaults.
func (c *Config) applyDefaults() {
	d := DefaultConfig().Settings
	s := &c.Settings
	if s.DefinitionsDir == "" {
		s.DefinitionsDir = d.DefinitionsDir
	}
	if s.RepoList == "" {
		s.RepoList = d.RepoList
	}
	s.MirrorBaseURL = strings.TrimSuffix(s.MirrorBaseURL, "/")
	if s.MirrorBaseURL == "" {
		s.MirrorBaseURL = d.MirrorBaseURL
	}
	if s.SnapshotsDir == "" {
		s.SnapshotsDir = d.SnapshotsDir
	}
	if s.SummaryPath == "" {
		s.SummaryPath = d.SummaryPath
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
	if s.LogFormat == "" {
		s.LogFormat = d.LogFormat
	}
}

// SaveConfig saves configuration to a file atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeSecure); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var b strings.Builder
	encoder := yaml.NewEncoder(&b)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return []byte(b.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	required := map[string]string{
		"definitions_dir": s.DefinitionsDir,
		"repo_list":       s.RepoList,
		"snapshots_dir":   s.SnapshotsDir,
		"summary_path":    s.SummaryPath,
	}
	for _, key := range []string{"definitions_dir", "repo_list", "snapshots_dir", "summary_path"} {
		if required[key] == "" {
			return errors.Wrap(errors.ErrEmptySettingValue, key)
		}
	}
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNeg
	}
	if err := validateMirrorURL(s.MirrorBaseURL); err != nil {
		return err
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.LogFormat] {
		return errors.Wrapf(errors.ErrInvalidLogFormat, "'%s', must be one of: text, json", s.LogFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.Wrapf(errors.ErrInvalidLogLevel, "'%s', must be one of: debug, info, warn, error", s.LogLevel)
	}
	return nil
}

func validateMirrorURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(errors.ErrMirrorURLInvalid, err.Error())
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(errors.ErrMirrorURLInvalid, "%q must be an absolute http(s) URL", raw)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path, relative
// to the working directory like every other default path.
func GetDefaultConfigPath() string {
	return DefaultConfigFile
}
