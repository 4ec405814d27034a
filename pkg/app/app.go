// Package app wires config, logging and the template store together for the
// commands.
package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/xiaomi388/templater/pkg/config"
	"github.com/xiaomi388/templater/pkg/logging"
	"github.com/xiaomi388/templater/pkg/persistence"
	"github.com/xiaomi388/templater/pkg/store"
)

// StorePath is set by the --store flag and wins over the config file.
var StorePath string

// LogToStderr is the log.file value that keeps logs on stderr.
const LogToStderr = "-"

type App struct {
	Config *config.Config
	Log    *logrus.Logger
	Store  *store.Store

	backend   persistence.Backend
	logCloser io.Closer
}

// ResolveConfigPath returns the --config value or <data dir>/config.yaml.
func ResolveConfigPath() (string, error) {
	if config.ConfigPath != "" {
		return config.ConfigPath, nil
	}

	dir, err := persistence.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, persistence.DefaultConfigName), nil
}

// Open loads the config, sets up logging and loads the template store.
func Open() (*App, error) {
	configPath, err := ResolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if StorePath != "" {
		cfg.Storage.Path = StorePath
	}

	logCfg := cfg.Log
	switch logCfg.File {
	case LogToStderr:
		logCfg.File = ""
	case "":
		logCfg.File = filepath.Join(filepath.Dir(configPath), persistence.DefaultLogFileName)
	}

	logger, logCloser, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	backend, err := persistence.NewBackend(cfg.Storage)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"config":  configPath,
		"backend": cfg.Storage.Backend,
		"path":    backend.Path(),
	}).Debug("opening templates")

	s := store.New(backend, logger, store.WithSkipMalformed(cfg.Storage.SkipMalformed))
	if err := s.Load(); err != nil {
		backend.Close()
		logCloser.Close()
		return nil, err
	}

	return &App{
		Config:    cfg,
		Log:       logger,
		Store:     s,
		backend:   backend,
		logCloser: logCloser,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.backend.Close(), a.logCloser.Close())
}
