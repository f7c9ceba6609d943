// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

//go:build arm || arm64

package log

import (
	"os"
	"syscall"
)

// redirectStderr points fd 2 at f
func redirectStderr(f *os.File) error {
	return syscall.Dup3(int(f.Fd()), 2, 0)
}
