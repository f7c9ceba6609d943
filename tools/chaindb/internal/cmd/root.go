// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/config"
	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
	"github.com/iotexproject/iotex-chaindb/pkg/probe"
)

var (
	_configPath string
	_dbPath     string
	_dbType     string
	_probePort  int
	_cfg        config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chaindb [command] [flags]",
	Short: "Command-line interface for the chain database",
	Long:  "chaindb is a command-line interface to inspect, compact and reset a chain database.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		subLogs := make(map[string]log.GlobalConfig, len(cfg.SubLogs))
		for name, sub := range cfg.SubLogs {
			subLogs[name] = sub
		}
		if err := log.InitLoggers(cfg.Log, subLogs); err != nil {
			return errors.Wrap(err, "failed to init loggers")
		}
		_cfg = cfg
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&_configPath, "config", "c", "", "path of the yaml config file")
	rootCmd.PersistentFlags().StringVar(&_dbPath, "db-path", "", "override the db path of the config")
	rootCmd.PersistentFlags().StringVar(&_dbType, "db-type", "", "override the db type of the config")
	rootCmd.PersistentFlags().IntVar(&_probePort, "probe-port", 0, "serve health and metrics on this port while running, 0 to disable")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.L().Fatal("Failed to execute command.", zap.Error(err))
	}
}

// loadConfig reads the config file, applies the flag overrides and validates
// the result
func loadConfig() (config.Config, error) {
	cfg, err := config.New([]string{_configPath}, config.DoNotValidate)
	if err != nil {
		return config.Config{}, err
	}
	if _dbPath != "" {
		cfg.DB.DbPath = _dbPath
	}
	if _dbType != "" {
		cfg.DB.DBType = _dbType
	}
	for _, validate := range config.Validates {
		if err := validate(cfg); err != nil {
			return config.Config{}, errors.Wrap(err, "failed to validate config")
		}
	}
	return cfg, nil
}

// withDB starts the configured database, runs fn and stops the database
func withDB(ctx context.Context, fn func(db.DataBase) error) (err error) {
	d, err := db.CreateDataBase(_cfg.DB)
	if err != nil {
		return err
	}
	var lc lifecycle.Lifecycle
	ps := addProbe(&lc, d)
	lc.Add(d)
	if err := lc.OnStart(ctx); err != nil {
		return errors.Wrapf(err, "failed to open %s at %s", _cfg.DB.DBType, _cfg.DB.DbPath)
	}
	if ps != nil {
		ps.Ready()
	}
	defer func() {
		if stopErr := lc.OnStop(ctx); stopErr != nil {
			log.L().Error("Failed to close database.", zap.Error(stopErr))
			if err == nil {
				err = stopErr
			}
		}
	}()
	return fn(d)
}

// addProbe registers a probe server reporting the readiness of d when
// --probe-port is set
func addProbe(lc *lifecycle.Lifecycle, d db.DataBase) *probe.Server {
	if _probePort <= 0 {
		return nil
	}
	check := func() bool { return true }
	if r, ok := d.(interface{ IsReady() bool }); ok {
		check = r.IsReady
	}
	ps := probe.New(_probePort, probe.WithReadinessCheck(check))
	lc.Add(ps)
	return ps
}
