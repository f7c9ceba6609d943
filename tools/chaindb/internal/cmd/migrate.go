// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v2"
	"github.com/spf13/cobra"

	"github.com/iotexproject/iotex-chaindb/chaindb"
	"github.com/iotexproject/iotex-chaindb/chaindb/keyformat"
	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
)

var (
	_destPath     string
	_destType     string
	_migrateBatch int
)

// migrateCmd copies the database into another engine
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copies every record into a database of another engine or path",
	Long:  "Copies every record of the configured database into the destination database, which must be empty.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		destCfg := _cfg.DB
		destCfg.DbPath = _destPath
		destCfg.DBType = _destType
		destCfg.ReadOnly = false
		if destCfg.DBType == _cfg.DB.DBType && destCfg.DbPath == _cfg.DB.DbPath {
			return errors.New("destination is the source database")
		}
		dst, err := db.CreateDataBase(destCfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		return withDB(ctx, func(src db.DataBase) (err error) {
			if err := dst.Start(ctx); err != nil {
				return errors.Wrapf(err, "failed to open destination %s at %s", destCfg.DBType, destCfg.DbPath)
			}
			stopped := false
			defer func() {
				if stopped {
					return
				}
				if stopErr := dst.Stop(ctx); stopErr != nil && err == nil {
					err = errors.Wrap(stopErr, "failed to close destination")
				}
			}()
			empty, err := isEmpty(dst)
			if err != nil {
				return err
			}
			if !empty {
				return errors.Errorf("destination %s at %s is not empty", destCfg.DBType, destCfg.DbPath)
			}

			bar := progressbar.NewOptions(len(keyformat.Tags()), progressbar.OptionSetWriter(cmd.ErrOrStderr()))
			total, err := chaindb.Copy(src, dst, _migrateBatch, func(keyformat.Tag, uint64) {
				bar.Add(1)
			})
			if err != nil {
				return err
			}
			stopped = true
			if err := dst.Stop(ctx); err != nil {
				return errors.Wrap(err, "failed to close destination")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nmigrated %d records to %s at %s\n", total, destCfg.DBType, destCfg.DbPath)
			return nil
		})
	},
}

// isEmpty reports whether d holds no record at all
func isEmpty(d db.DataBase) (bool, error) {
	empty := true
	if err := d.ForEach(nil, func(_, _ []byte) error {
		empty = false
		return db.ErrStopIteration
	}); err != nil {
		return false, err
	}
	return empty, nil
}

func init() {
	migrateCmd.Flags().StringVar(&_destPath, "dest-path", "", "db path of the destination")
	migrateCmd.Flags().StringVar(&_destType, "dest-type", db.DBPebble, "db type of the destination")
	migrateCmd.Flags().IntVar(&_migrateBatch, "batch-size", chaindb.DefaultCopyBatchSize, "records per write batch")
	if err := migrateCmd.MarkFlagRequired("dest-path"); err != nil {
		log.L().Fatal(err.Error())
	}
	rootCmd.AddCommand(migrateCmd)
}
