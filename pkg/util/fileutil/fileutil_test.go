// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	r := require.New(t)

	dir, err := os.MkdirTemp("", "fileutil")
	r.NoError(err)
	defer os.RemoveAll(dir)

	r.True(FileExists(dir))
	r.False(FileExists(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "data")
	r.NoError(os.WriteFile(file, []byte("chain"), 0600))
	r.True(FileExists(file))
}

func TestDirSize(t *testing.T) {
	r := require.New(t)

	dir, err := os.MkdirTemp("", "fileutil")
	r.NoError(err)
	defer os.RemoveAll(dir)

	r.NoError(os.WriteFile(filepath.Join(dir, "a"), make([]byte, 10), 0600))
	r.NoError(os.MkdirAll(filepath.Join(dir, "sub"), 0700))
	r.NoError(os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 5), 0600))
	size, err := DirSize(dir)
	r.NoError(err)
	r.EqualValues(15, size)

	_, err = DirSize(filepath.Join(dir, "missing"))
	r.Error(err)
}
