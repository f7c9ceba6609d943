// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package batch

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var (
	testK = [3][]byte{[]byte("key_1"), []byte("key_2"), []byte("key_3")}
	testV = [3][]byte{[]byte("value_1"), []byte("value_2"), []byte("value_3")}
)

func TestBatch(t *testing.T) {
	require := require.New(t)

	b := NewBatch()
	b.Put(testK[0], testV[0])
	b.Delete(testK[1])
	b.Put(testK[2], testV[2])
	b.Delete(testK[1])
	require.Equal(4, b.Size())

	w, err := b.Entry(1)
	require.NoError(err)
	require.Equal(Delete, w.WriteType())
	require.Equal(testK[1], w.Key())
	require.Empty(w.Value())
	_, err = b.Entry(4)
	require.Error(err)

	kvs := b.ExtractRawDataToInsert()
	require.Equal([]*KV{{Key: testK[0], Value: testV[0]}, {Key: testK[2], Value: testV[2]}}, kvs)
	require.Equal(2, b.Size())
	require.Empty(b.ExtractRawDataToInsert())

	keys := b.ExtractRawKeysToRemove()
	require.Equal([][]byte{testK[1], testK[1]}, keys)
	require.Zero(b.Size())
	require.Empty(b.ExtractRawKeysToRemove())
}

func TestBatchConflict(t *testing.T) {
	require := require.New(t)

	b := NewBatch()
	b.Put(testK[0], testV[0])
	b.Put(testK[0], testV[1])
	require.Panics(func() { b.Delete(testK[0]) })

	b = NewBatch()
	b.Delete(testK[0])
	defer func() {
		p := recover()
		require.NotNil(p)
		err, ok := p.(error)
		require.True(ok)
		require.Equal(ErrConflictingWrite, errors.Cause(err))
	}()
	b.Put(testK[0], testV[0])
}

func TestWriteInfoCopies(t *testing.T) {
	require := require.New(t)

	wi := NewWriteInfo(Put, []byte("k"), []byte("v"))
	k := wi.Key()
	k[0] = 'x'
	require.Equal([]byte("k"), wi.Key())
	require.Equal("put", wi.WriteType().String())
	require.Equal("delete", Delete.String())
}
