// Package app wires configuration, logging, the dataset and services together.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/greenwash/internal/common"
	"github.com/bobmcallan/greenwash/internal/dataset"
	"github.com/bobmcallan/greenwash/internal/interfaces"
	"github.com/bobmcallan/greenwash/internal/models"
	"github.com/bobmcallan/greenwash/internal/services/analytics"
	"github.com/bobmcallan/greenwash/internal/services/cases"
	"github.com/bobmcallan/greenwash/internal/services/chart"
)

// App holds the loaded dataset and the services built on it.
// When the dataset fails to load, LoadErr is set and the services are nil.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Dataset          *models.Dataset
	LoadErr          error
	CaseService      interfaces.CaseService
	AnalyticsService interfaces.AnalyticsService
	ChartService     interfaces.ChartService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// ResolveConfigPath picks the config file: the given path, GREENWASH_CONFIG,
// greenwash.toml beside the binary, then config/greenwash.toml.
func ResolveConfigPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv("GREENWASH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "greenwash.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/greenwash.toml" // fallback for development
		}
	}
	return configPath
}

// NewApp loads configuration and the dataset. datasetPath, when set, overrides the
// configured dataset path. A dataset that fails to load is not an error here: it is
// recorded in LoadErr so the caller can decide between a blocked server and exiting.
func NewApp(configPath, datasetPath string) (*App, error) {
	config, err := common.LoadConfig(ResolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if datasetPath != "" {
		config.Dataset.Path = datasetPath
	}

	logger := common.NewLoggerFromConfig(config)
	return NewAppWithConfig(config, logger), nil
}

// NewAppWithConfig loads the dataset named in config and builds the services.
func NewAppWithConfig(config *common.Config, logger *common.Logger) *App {
	startupStart := time.Now()

	a := &App{
		Config:      config,
		Logger:      logger,
		StartupTime: startupStart,
	}

	ds, err := dataset.Load(config.Dataset.Path,
		dataset.WithVocabulary(dataset.VocabularyFromConfig(config.Vocabulary)),
		dataset.WithLogger(logger),
	)
	if err != nil {
		a.LoadErr = err
		logger.Error().Err(err).Str("path", config.Dataset.Path).Msg("Dataset failed to load")
		return a
	}

	a.Dataset = ds
	a.CaseService = cases.NewService(ds, logger)
	a.AnalyticsService = analytics.NewService(ds.Vocabulary, config.Charts, logger)
	a.ChartService = chart.NewService(config.Charts, logger)

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a
}

// Ready reports whether the dataset loaded and the services are available.
func (a *App) Ready() bool {
	return a.LoadErr == nil && a.Dataset != nil
}

// CaseCount returns the number of loaded cases, or -1 when loading failed.
func (a *App) CaseCount() int {
	if !a.Ready() {
		return -1
	}
	return a.Dataset.Len()
}
