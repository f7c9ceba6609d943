// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package log

import (
	"encoding/hex"
	"log"
	"os"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GlobalConfig defines the global logger configurations.
type GlobalConfig struct {
	Zap                *zap.Config `json:"zap" yaml:"zap"`
	StderrRedirectFile *string     `json:"stderrRedirectFile" yaml:"stderrRedirectFile"`
	RedirectStdLog     bool        `json:"stdLogRedirect" yaml:"stdLogRedirect"`
}

var (
	_globalCfg  GlobalConfig
	_logMu      sync.RWMutex
	_subLoggers = make(map[string]*zap.Logger)
)

func init() {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.Level.SetLevel(zap.InfoLevel)
	l, err := zapCfg.Build()
	if err != nil {
		log.Println("Failed to init zap global logger, no zap log will be shown till zap is properly initialized: ", err)
		return
	}
	_logMu.Lock()
	_globalCfg.Zap = &zapCfg
	_logMu.Unlock()
	zap.ReplaceGlobals(l)
}

// L wraps zap.L().
func L() *zap.Logger { return zap.L() }

// S wraps zap.S().
func S() *zap.SugaredLogger { return zap.S() }

// Logger returns logger of the given name, falling back to the global one
func Logger(name string) *zap.Logger {
	_logMu.RLock()
	logger, ok := _subLoggers[name]
	_logMu.RUnlock()
	if !ok {
		return L().With(zap.String("module", name))
	}
	return logger
}

// Hex creates a zap field which convert binary to hex.
func Hex(k string, d []byte) zap.Field {
	return zap.String(k, hex.EncodeToString(d))
}

// InitLoggers initializes the global logger and other sub loggers.
func InitLoggers(globalCfg GlobalConfig, subCfgs map[string]GlobalConfig, opts ...zap.Option) error {
	if _, exists := subCfgs["global"]; exists {
		return errors.New("\"global\" is a reserved name for global logger")
	}
	subCfgs["global"] = globalCfg
	for name, cfg := range subCfgs {
		if name != "global" && cfg.StderrRedirectFile != nil {
			return errors.Errorf("cannot redirect stderr in sub logger %s", name)
		}
		logger, err := buildLogger(cfg, opts...)
		if err != nil {
			return errors.Wrapf(err, "failed to build logger %s", name)
		}
		if name != "global" {
			_logMu.Lock()
			_subLoggers[name] = logger.With(zap.String("module", name))
			_logMu.Unlock()
			continue
		}
		if cfg.StderrRedirectFile != nil {
			stderrF, err := os.OpenFile(*cfg.StderrRedirectFile, os.O_WRONLY|os.O_CREATE|os.O_SYNC|os.O_APPEND, 0600)
			if err != nil {
				return errors.Wrap(err, "failed to open stderr redirect file")
			}
			if err := redirectStderr(stderrF); err != nil {
				return errors.Wrap(err, "failed to redirect stderr")
			}
		}
		if cfg.RedirectStdLog {
			zap.RedirectStdLog(logger)
		}
		zap.ReplaceGlobals(logger)
		_logMu.Lock()
		_globalCfg = cfg
		_logMu.Unlock()
	}
	delete(subCfgs, "global")
	return nil
}

func buildLogger(cfg GlobalConfig, opts ...zap.Option) (*zap.Logger, error) {
	if cfg.Zap == nil {
		zapCfg := zap.NewProductionConfig()
		cfg.Zap = &zapCfg
	} else {
		cfg.Zap.EncoderConfig = zap.NewProductionEncoderConfig()
	}
	return cfg.Zap.Build(opts...)
}
