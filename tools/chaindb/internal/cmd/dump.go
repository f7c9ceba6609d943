// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/iotexproject/iotex-chaindb/chaindb"
	"github.com/iotexproject/iotex-chaindb/chaindb/keyformat"
	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/pkg/util/fileutil"
)

var _dumpLimit int

// dumpCmd prints the records of one family
var dumpCmd = &cobra.Command{
	Use:   "dump [tag]",
	Short: "Prints the records of a key family",
	Long:  "Prints the records of a key family, given by its one-character tag or its name.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := keyformat.ParseTag(args[0])
		if err != nil {
			return err
		}
		return withDB(cmd.Context(), func(d db.DataBase) error {
			out := cmd.OutOrStdout()
			n := 0
			return d.ForEach([]byte{byte(tag)}, func(k, v []byte) error {
				if _dumpLimit > 0 && n >= _dumpLimit {
					return db.ErrStopIteration
				}
				n++
				_, values, err := keyformat.Parse(k)
				if err != nil {
					fmt.Fprintf(out, "%s %x (%v): %x\n", tag, k, err, v)
					return nil
				}
				fmt.Fprintf(out, "%s %v: %x\n", tag, values, v)
				return nil
			})
		})
	},
}

// statsCmd prints the record count of every family
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints the record count of every key family and the data size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(d db.DataBase) error {
			tb := table.New("Family", "Tag", "Records").WithWriter(cmd.OutOrStdout())
			for _, tag := range keyformat.Tags() {
				count, err := chaindb.CountKeys(d, tag)
				if err != nil {
					return err
				}
				tb.AddRow(tag, string(rune(tag)), count)
			}
			if dir := db.DataDir(_cfg.DB); dir != "" {
				size, err := fileutil.DirSize(dir)
				if err != nil {
					return err
				}
				tb.AddRow("DataSize", "", size)
			}
			tb.Print()
			return nil
		})
	},
}

func init() {
	dumpCmd.Flags().IntVarP(&_dumpLimit, "limit", "n", 0, "stop after n records, 0 for no limit")
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(statsCmd)
}
