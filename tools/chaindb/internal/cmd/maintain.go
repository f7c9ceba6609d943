// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
)

// optimizeCmd compacts a stopped database
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Compacts the whole key range of the database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := db.CreateDataBase(_cfg.DB)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		var lc lifecycle.Lifecycle
		if ps := addProbe(&lc, d); ps != nil {
			if err := lc.OnStart(ctx); err != nil {
				return err
			}
			defer func() {
				if err := lc.OnStop(ctx); err != nil {
					log.L().Error("Failed to stop probe server.", zap.Error(err))
				}
			}()
			ps.Ready()
		}
		log.L().Info("Optimizing database.", zap.String("type", _cfg.DB.DBType), zap.String("path", _cfg.DB.DbPath))
		if err := d.Optimize(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "optimized")
		return nil
	},
}

var _confirmRecreate bool

// recreateCmd drops all data of the database
var recreateCmd = &cobra.Command{
	Use:   "recreate",
	Short: "Drops all data and leaves an empty database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !_confirmRecreate {
			return errors.New("recreate drops all data, pass --yes to confirm")
		}
		return withDB(cmd.Context(), func(d db.DataBase) error {
			if err := d.Recreate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "recreated")
			return nil
		})
	},
}

func init() {
	recreateCmd.Flags().BoolVar(&_confirmRecreate, "yes", false, "confirm dropping all data")
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(recreateCmd)
}
