// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLoggers(t *testing.T) {
	r := require.New(t)

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.OutputPaths = []string{"stdout"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	subs := map[string]GlobalConfig{
		"db": {Zap: &zapCfg},
	}
	r.NoError(InitLoggers(GlobalConfig{Zap: &zapCfg}, subs))
	r.Len(subs, 1)
	r.NotNil(Logger("db"))
	r.NotNil(Logger("unknown"))

	subs["global"] = GlobalConfig{}
	r.Error(InitLoggers(GlobalConfig{}, subs))

	path := "stderr.log"
	r.Error(InitLoggers(GlobalConfig{}, map[string]GlobalConfig{
		"db": {StderrRedirectFile: &path},
	}))
}

func TestLoggerFallback(t *testing.T) {
	r := require.New(t)

	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Logger("chaindb").Info("opened", zap.String("engine", "pebble"))
	S().Infow("closed")
	r.Equal(2, logs.Len())
	entry := logs.All()[0]
	r.Equal("opened", entry.Message)
	r.Equal("chaindb", entry.ContextMap()["module"])
	r.Equal("pebble", entry.ContextMap()["engine"])
}

func TestHex(t *testing.T) {
	require.Equal(t, "0a0b", Hex("k", []byte{0x0a, 0x0b}).String)
}
