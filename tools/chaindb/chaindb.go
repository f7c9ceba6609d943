// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// chaindb is a command-line tool to inspect and maintain a chain database
package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/iotexproject/iotex-chaindb/tools/chaindb/internal/cmd"
)

func main() {
	cmd.Execute()
}
