// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"

	"github.com/pkg/errors"
	uconfig "go.uber.org/config"

	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
)

// IMPORTANT: to define a config, add a field or a new config type to the existing config types. In addition, provide
// the default value in Default var.

var (
	// Default is the default config
	Default = Config{
		DB: func() db.Config {
			cfg := db.DefaultConfig
			cfg.DbPath = "./chaindb"
			return cfg
		}(),
	}

	// ErrInvalidCfg indicates the invalid config value
	ErrInvalidCfg = errors.New("invalid config value")

	// Validates is the collection config validation functions
	Validates = []Validate{
		ValidateDB,
		ValidateLog,
	}
)

type (
	// Config is the root config of the chain database tools
	Config struct {
		DB      db.Config                   `yaml:"db"`
		Log     log.GlobalConfig            `yaml:"log"`
		SubLogs map[string]log.GlobalConfig `yaml:"subLogs"`
	}

	// Validate is the interface of validating the config
	Validate func(Config) error
)

// New creates a config instance. It first loads the default configs. If the config path is not empty, it will read from
// the file and override the default configs. By default, it will apply all validation functions. To bypass validation,
// use DoNotValidate instead.
func New(configPaths []string, validates ...Validate) (Config, error) {
	opts := make([]uconfig.YAMLOption, 0)
	opts = append(opts, uconfig.Static(Default))
	opts = append(opts, uconfig.Expand(os.LookupEnv))
	for _, path := range configPaths {
		if path != "" {
			opts = append(opts, uconfig.File(path))
		}
	}
	yaml, err := uconfig.NewYAML(opts...)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to init config")
	}

	var cfg Config
	if err := yaml.Get(uconfig.Root).Populate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal YAML config to struct")
	}

	// By default, the config needs to pass all the validation
	if len(validates) == 0 {
		validates = Validates
	}
	for _, validate := range validates {
		if err := validate(cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to validate config")
		}
	}
	return cfg, nil
}

// ValidateDB validates the storage engine configs
func ValidateDB(cfg Config) error {
	switch cfg.DB.DBType {
	case db.DBPebble, db.DBLevel, db.DBBolt:
		if cfg.DB.DbPath == "" {
			return errors.Wrapf(ErrInvalidCfg, "%s needs a db path", cfg.DB.DBType)
		}
	case db.DBMemory:
	default:
		return errors.Wrapf(ErrInvalidCfg, "unsupported db type %q", cfg.DB.DBType)
	}
	if cfg.DB.BackgroundThreads <= 0 {
		return errors.Wrap(ErrInvalidCfg, "background threads should be greater than 0")
	}
	if cfg.DB.MaxOpenFiles <= 0 {
		return errors.Wrap(ErrInvalidCfg, "max open files should be greater than 0")
	}
	if cfg.DB.WriteBufferSizeMB == 0 || cfg.DB.MaxFileSizeMB == 0 {
		return errors.Wrap(ErrInvalidCfg, "write buffer and max file size should be greater than 0")
	}
	return nil
}

// ValidateLog validates the logger configs
func ValidateLog(cfg Config) error {
	if cfg.Log.StderrRedirectFile != nil && *cfg.Log.StderrRedirectFile == "" {
		return errors.Wrap(ErrInvalidCfg, "stderr redirect file is empty")
	}
	for name, sub := range cfg.SubLogs {
		if name == "" || name == "global" {
			return errors.Wrapf(ErrInvalidCfg, "invalid sub logger name %q", name)
		}
		if sub.StderrRedirectFile != nil {
			return errors.Wrapf(ErrInvalidCfg, "sub logger %s cannot redirect stderr", name)
		}
	}
	return nil
}

// DoNotValidate validates the given config
func DoNotValidate(cfg Config) error { return nil }
