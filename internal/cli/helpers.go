package cli

import (
	"fmt"

	"github.com/glorpus-work/pakr/internal/logger"
	"github.com/glorpus-work/pakr/pkg/archive"
	"github.com/glorpus-work/pakr/pkg/config"
	"github.com/glorpus-work/pakr/pkg/download"
	"github.com/glorpus-work/pakr/pkg/installed"
	"github.com/glorpus-work/pakr/pkg/integrity"
	"github.com/glorpus-work/pakr/pkg/orchestrator"
	"github.com/glorpus-work/pakr/pkg/script"
	"github.com/glorpus-work/pakr/pkg/source"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration, applies the global flags and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	level := cfg.Settings.LogLevel
	if Verbose != nil && *Verbose {
		level = "debug"
	}
	logger.InitLogger(level, logger.OutputFormat(cfg.Settings.LogFormat))
	logger.Debug("Configuration loaded", logger.Fields{"work_dir": cfg.Settings.WorkDir, "state_backend": cfg.Settings.StateBackend})

	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes LoadConfig fail with a descriptive error.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

func loadFetcher(cfg *config.Config) *download.Fetcher {
	return download.NewFetcher(cfg.Settings.HTTPTimeout, cfg.Settings.UserAgent)
}

func loadCatalog(cfg *config.Config) *source.Catalog {
	return source.NewCatalog(cfg.SourcesPath(), loadFetcher(cfg), cfg.Settings.MaxConcurrentLoads)
}

func loadStore(cfg *config.Config) (*installed.Store, error) {
	backend, err := installed.NewBackend(cfg.Settings.StateBackend, cfg.StatePath())
	if err != nil {
		return nil, err
	}
	store, err := installed.Open(backend)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return store, nil
}

func closeStore(store *installed.Store) {
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close installed package store", logger.Fields{"error": err})
	}
}

func loadOrchestrator(cfg *config.Config, store *installed.Store, hooks orchestrator.Hooks) *orchestrator.Orchestrator {
	return orchestrator.New(
		loadFetcher(cfg),
		integrity.NewVerifier(),
		archive.NewManager(cfg.Settings.WorkDir),
		script.NewRunner(cfg.Settings.Interpreters, script.NewProcessExecutor()),
		loadCatalog(cfg),
		store,
		cfg.Settings.WorkDir,
		hooks,
	)
}
