package config

import (
	"reflect"
	"strings"
	"time"

	"github.com/cperrin88/rpmsnap/pkg/errors"
)

// SetValue sets a configuration value by its YAML key.
func (c *Config) SetValue(key, value string) error {
	s := &c.Settings
	switch key {
	case "definitions_dir":
		s.DefinitionsDir = value
	case "repo_list":
		s.RepoList = value
	case "mirror_base_url":
		s.MirrorBaseURL = strings.TrimSuffix(value, "/")
	case "snapshots_dir":
		s.SnapshotsDir = value
	case "summary_path":
		s.SummaryPath = value
	case "hooks_dir":
		s.HooksDir = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid duration for %s: %s", key, value)
		}
		s.HTTPTimeout = d
	case "user_agent":
		s.UserAgent = value
	case "log_level":
		s.LogLevel = value
	case "log_format":
		s.LogFormat = value
	default:
		return errors.Wrap(errors.ErrUnknownConfigKey, key)
	}
	return nil
}

// GetValue returns a configuration value by its YAML key.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", errors.Wrap(errors.ErrUnknownConfigKey, key)
	}
	return value, nil
}

// ToMap flattens the settings into YAML key → string value.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		yamlKey := strings.Split(yamlTag, ",")[0]

		switch v := settingsValue.Field(i).Interface().(type) {
		case time.Duration:
			result[yamlKey] = v.String()
		case string:
			result[yamlKey] = v
		}
	}

	return result
}
