package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thebluefowl/spacesync/internal/backend"
	"github.com/thebluefowl/spacesync/internal/config"
	"github.com/thebluefowl/spacesync/internal/host"
	"github.com/thebluefowl/spacesync/internal/logging"
	"github.com/thebluefowl/spacesync/internal/mediasync"
	"github.com/thebluefowl/spacesync/internal/storage"
)

// env bundles everything a command needs to talk to the remote store.
type env struct {
	cfg     config.Config
	store   storage.Store
	library *host.Static
	engine  *mediasync.Engine
	logger  *slog.Logger
}

func settingsStore() (*config.SettingsStore, error) {
	path := settingsFile
	if path == "" {
		var err error
		if path, err = config.DefaultSettingsPath(); err != nil {
			return nil, err
		}
	}
	return config.NewSettingsStore(path), nil
}

// loadOrSetupConfig resolves constants over persisted settings, running the
// interactive setup when neither provides a usable configuration.
func loadOrSetupConfig() (config.Config, error) {
	constants, err := config.LoadConstants(constantsFile)
	if err != nil {
		return config.Config{}, err
	}

	store, err := settingsStore()
	if err != nil {
		return config.Config{}, err
	}

	var settings config.Config
	if store.Exists() {
		password, err := askMasterPassword()
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to get master password: %w", err)
		}
		if settings, err = store.Load(password); err != nil {
			return config.Config{}, fmt.Errorf("failed to load settings: %w", err)
		}
	}

	cfg := config.Resolve(constants, settings)
	if err := cfg.Validate(); err != nil {
		if store.Exists() || !errors.Is(err, config.ErrIncomplete) {
			return config.Config{}, err
		}
		if settings, err = setup(store); err != nil {
			return config.Config{}, err
		}
		cfg = config.Resolve(constants, settings)
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func uploadDir(cfg config.Config) host.UploadDir {
	base := baseDirFlag
	if base == "" {
		base = cfg.UploadPath
	}
	return host.UploadDir{BaseDir: base, Subdir: subdirFlag}
}

// requireBaseDir fails commands that work on local files when the upload
// root is unknown.
func (e *env) requireBaseDir() error {
	if e.library.UploadDir().BaseDir == "" {
		return errors.New("upload root unknown: set --base-dir or UPLOAD_PATH")
	}
	return nil
}

func newEnv(ctx context.Context, opts ...mediasync.Option) (*env, error) {
	cfg, err := loadOrSetupConfig()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	store, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Options{Level: logLevel, Format: logFormat})
	library := host.NewStatic(uploadDir(cfg))
	opts = append([]mediasync.Option{mediasync.WithLogger(logger)}, opts...)

	return &env{
		cfg:     cfg,
		store:   store,
		library: library,
		engine:  mediasync.New(cfg, store, library, opts...),
		logger:  logger,
	}, nil
}
