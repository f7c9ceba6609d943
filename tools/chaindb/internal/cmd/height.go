// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iotexproject/iotex-chaindb/chaindb"
	"github.com/iotexproject/iotex-chaindb/db"
)

// heightCmd represents the height command
var heightCmd = &cobra.Command{
	Use:   "height",
	Short: "Prints the index of the top block",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(d db.DataBase) error {
			index, ok, err := chaindb.LastBlockIndex(d)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "empty chain")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "last block index: %d\n", index)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(heightCmd)
}
