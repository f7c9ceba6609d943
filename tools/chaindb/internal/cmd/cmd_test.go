// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-chaindb/chaindb"
	"github.com/iotexproject/iotex-chaindb/chaindb/codec"
	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/testutil"
)

func seedChain(t *testing.T, dir string, blocks uint32) {
	r := require.New(t)
	ctx := context.Background()
	cfg := db.DefaultLevelDBConfig
	cfg.DbPath = dir
	d, err := db.CreateDataBase(cfg)
	r.NoError(err)
	r.NoError(d.Start(ctx))
	for i := uint32(0); i < blocks; i++ {
		info := codec.BlockInfo{BlockHash: hash.Hash256b([]byte(fmt.Sprint(i)))}
		r.NoError(d.Write(chaindb.NewWriteBatch().InsertCachedBlock(info, i, nil)))
	}
	r.NoError(d.Stop(ctx))
}

func run(t *testing.T, args ...string) (string, error) {
	_configPath, _dbPath, _dbType, _probePort = "", "", "", 0
	_dumpLimit, _confirmRecreate = 0, false
	_destPath, _destType, _migrateBatch = "", db.DBPebble, 1000
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	r := require.New(t)
	dir := testutil.TempDir(t, "chaindb-cli")
	defer testutil.CleanupPath(t, dir)
	seedChain(t, dir, 5)
	flags := []string{"--db-path", dir, "--db-type", db.DBLevel}

	out, err := run(t, append([]string{"height"}, flags...)...)
	r.NoError(err)
	r.Contains(out, "last block index: 4")

	out, err = run(t, append([]string{"dump", "BlockIndexToBlockInfo", "--limit", "2"}, flags...)...)
	r.NoError(err)
	r.Equal(2, bytes.Count([]byte(out), []byte("\n")))
	r.Contains(out, "BlockIndexToBlockInfo [0]")

	_, err = run(t, append([]string{"dump", "nope"}, flags...)...)
	r.Error(err)

	out, err = run(t, append([]string{"stats"}, flags...)...)
	r.NoError(err)
	r.Contains(out, "BlockIndexToBlockInfo")
	r.Contains(out, "DataSize")

	out, err = run(t, append([]string{"config"}, flags...)...)
	r.NoError(err)
	r.Contains(out, "dbType: leveldb")

	port := testutil.FreePort(t)
	out, err = run(t, append([]string{"optimize", "--probe-port", strconv.Itoa(port)}, flags...)...)
	r.NoError(err)
	r.Contains(out, "optimized")

	dest := testutil.TempDir(t, "chaindb-cli-dest")
	defer testutil.CleanupPath(t, dest)
	out, err = run(t, append([]string{"migrate", "--dest-path", dest, "--dest-type", db.DBBolt, "--batch-size", "2"}, flags...)...)
	r.NoError(err)
	r.Contains(out, "migrated 16 records")
	out, err = run(t, "height", "--db-path", dest, "--db-type", db.DBBolt)
	r.NoError(err)
	r.Contains(out, "last block index: 4")

	// a destination holding records is refused and left untouched
	_, err = run(t, append([]string{"migrate", "--dest-path", dest, "--dest-type", db.DBBolt}, flags...)...)
	r.ErrorContains(err, "not empty")
	out, err = run(t, "height", "--db-path", dest, "--db-type", db.DBBolt)
	r.NoError(err)
	r.Contains(out, "last block index: 4")

	_, err = run(t, append([]string{"migrate", "--dest-path", dir, "--dest-type", db.DBLevel}, flags...)...)
	r.Error(err)

	_, err = run(t, append([]string{"recreate"}, flags...)...)
	r.Error(err)
	out, err = run(t, append([]string{"recreate", "--yes"}, flags...)...)
	r.NoError(err)
	r.Contains(out, "recreated")

	out, err = run(t, append([]string{"height"}, flags...)...)
	r.NoError(err)
	r.Contains(out, "empty chain")
}

func TestLoadConfigValidates(t *testing.T) {
	r := require.New(t)
	_, err := run(t, "height", "--db-type", "rocksdb")
	r.Error(err)
	r.Contains(err.Error(), "failed to validate config")
}
