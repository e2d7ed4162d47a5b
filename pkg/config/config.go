// Package config provides configuration management for the pakr package manager.
// Settings are read from a YAML file; a missing file yields DefaultConfig and
// every zero value left by a partial file is filled from the defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glorpus-work/pakr/pkg/errutils"
	"github.com/glorpus-work/pakr/pkg/fsutil"
	"github.com/glorpus-work/pakr/pkg/model"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// State settings
	StateFile    string `yaml:"state_file"`
	StateBackend string `yaml:"state_backend"` // json, sqlite

	// Sources
	SourcesFile        string `yaml:"sources_file"`
	MaxConcurrentLoads int    `yaml:"max_concurrent_loads"`

	// Installation settings
	WorkDir      string                         `yaml:"work_dir"`
	Interpreters map[model.ScriptType][]string `yaml:"interpreters"`

	// Network settings. A zero timeout waits indefinitely.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // table, json, yaml
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug
	LogFormat    string `yaml:"log_format"`    // text, json
}

// State backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Default configuration values.
const (
	DefaultStateFile          = "installed_packages.json"
	DefaultSourcesFile        = "sources.json"
	DefaultWorkDir            = "."
	DefaultMaxConcurrentLoads = 4
	DefaultUserAgent          = "pakr/dev"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultInterpreters returns the candidate binaries tried, in order, for each script type.
func DefaultInterpreters() map[model.ScriptType][]string {
	return map[model.ScriptType][]string{
		model.ScriptTypePython:     {"python3", "python"},
		model.ScriptTypeBash:       {"bash"},
		model.ScriptTypePowerShell: {"powershell"},
	}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			StateFile:          DefaultStateFile,
			StateBackend:       BackendJSON,
			SourcesFile:        DefaultSourcesFile,
			MaxConcurrentLoads: DefaultMaxConcurrentLoads,
			WorkDir:            DefaultWorkDir,
			Interpreters:       DefaultInterpreters(),
			UserAgent:          DefaultUserAgent,
			OutputFormat:       "table",
			LogLevel:           "info",
			LogFormat:          "text",
		},
	}
}

// LoadConfig loads configuration from a file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errutils.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errutils.ErrConfigValidation, err)
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errutils.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errutils.Wrap(errutils.ErrInvalidConfigPath, err.Error())
	}

	data, err := c.ToYAML()
	if err != nil {
		return err
	}

	if err := fsutil.WriteFileAtomic(absPath, data, fsutil.FileModeDefault); err != nil {
		return errutils.Wrap(errutils.ErrConfigFileRename, err.Error())
	}
	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var sb strings.Builder
	encoder := yaml.NewEncoder(&sb)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigMarshal, err.Error())
	}
	if err := encoder.Close(); err != nil {
		return nil, errutils.Wrap(errutils.ErrConfigEncode, err.Error())
	}
	return []byte(sb.String()), nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errutils.ErrConfigValidation
	}
	return validateSettings(c.Settings)
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errutils.ErrHTTPTimeoutNegative
	}
	if s.MaxConcurrentLoads < 1 {
		return errutils.ErrMaxConcurrentInvalid
	}
	switch s.StateBackend {
	case BackendJSON, BackendSQLite:
	default:
		return errutils.ErrInvalidStateBackendWithDetails(s.StateBackend)
	}
	validFormats := map[string]bool{"table": true, "json": true, "yaml": true}
	if !validFormats[s.OutputFormat] {
		return errutils.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errutils.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return fmt.Errorf("%w: '%s', must be one of: text, json", errutils.ErrInvalidLogFormat, s.LogFormat)
	}
	for _, scriptType := range sortedScriptTypes(s.Interpreters) {
		if len(s.Interpreters[scriptType]) == 0 {
			return fmt.Errorf("%w for script type %s", errutils.ErrNoInterpreters, scriptType)
		}
	}
	return nil
}

func sortedScriptTypes(m map[model.ScriptType][]string) []model.ScriptType {
	types := make([]model.ScriptType, 0, len(m))
	for k := range m {
		types = append(types, k)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// StatePath returns the installed-state location resolved against the working directory.
func (c *Config) StatePath() string {
	return c.resolve(c.Settings.StateFile)
}

// SourcesPath returns the sources file location resolved against the working directory.
func (c *Config) SourcesPath() string {
	return c.resolve(c.Settings.SourcesFile)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Settings.WorkDir, p)
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.StateFile == "" {
		c.Settings.StateFile = defaults.Settings.StateFile
	}
	if c.Settings.StateBackend == "" {
		c.Settings.StateBackend = defaults.Settings.StateBackend
	}
	if c.Settings.SourcesFile == "" {
		c.Settings.SourcesFile = defaults.Settings.SourcesFile
	}
	if c.Settings.MaxConcurrentLoads == 0 {
		c.Settings.MaxConcurrentLoads = defaults.Settings.MaxConcurrentLoads
	}
	if c.Settings.WorkDir == "" {
		c.Settings.WorkDir = defaults.Settings.WorkDir
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.LogFormat == "" {
		c.Settings.LogFormat = defaults.Settings.LogFormat
	}
	if c.Settings.Interpreters == nil {
		c.Settings.Interpreters = map[model.ScriptType][]string{}
	}
	for scriptType, candidates := range defaults.Settings.Interpreters {
		if _, ok := c.Settings.Interpreters[scriptType]; !ok {
			c.Settings.Interpreters[scriptType] = candidates
		}
	}
}
