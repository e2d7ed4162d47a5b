package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/model"
)

// SetValue sets a scalar configuration value by its YAML key.
// Interpreter lists are edited in the file directly.
func (c *Config) SetValue(key, value string) error {
	s := &c.Settings
	switch key {
	case "state_file":
		s.StateFile = value
	case "state_backend":
		s.StateBackend = value
	case "sources_file":
		s.SourcesFile = value
	case "max_concurrent_loads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %s", errutils.ErrInvalidConfigKey, key, value)
		}
		s.MaxConcurrentLoads = n
	case "work_dir":
		s.WorkDir = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %s", errutils.ErrInvalidConfigKey, key, value)
		}
		s.HTTPTimeout = d
	case "user_agent":
		s.UserAgent = value
	case "output_format":
		s.OutputFormat = value
	case "log_level":
		s.LogLevel = value
	case "log_format":
		s.LogFormat = value
	default:
		return fmt.Errorf("%w: %s", errutils.ErrUnknownConfigKey, key)
	}
	return c.Validate()
}

// GetValue returns a configuration value by its YAML key.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", errutils.ErrUnknownConfigKey, key)
	}
	return value, nil
}

// ToMap returns every setting keyed by its YAML key, for display.
func (c *Config) ToMap() map[string]string {
	s := c.Settings
	return map[string]string{
		"state_file":           s.StateFile,
		"state_backend":        s.StateBackend,
		"sources_file":         s.SourcesFile,
		"max_concurrent_loads": strconv.Itoa(s.MaxConcurrentLoads),
		"work_dir":             s.WorkDir,
		"interpreters":         formatInterpreters(s.Interpreters),
		"http_timeout":         s.HTTPTimeout.String(),
		"user_agent":           s.UserAgent,
		"output_format":        s.OutputFormat,
		"log_level":            s.LogLevel,
		"log_format":           s.LogFormat,
	}
}

// Keys returns the keys of ToMap in sorted order.
func (c *Config) Keys() []string {
	m := c.ToMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatInterpreters(m map[model.ScriptType][]string) string {
	parts := make([]string, 0, len(m))
	for _, t := range sortedScriptTypes(m) {
		parts = append(parts, fmt.Sprintf("%s=%s", t, strings.Join(m[t], ",")))
	}
	return strings.Join(parts, " ")
}
