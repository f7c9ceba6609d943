// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chaindb

import (
	"testing"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/iotexproject/iotex-chaindb/chaindb/codec"
	"github.com/iotexproject/iotex-chaindb/chaindb/keyformat"
	"github.com/iotexproject/iotex-chaindb/db/batch"
)

func testHash(s string) hash.Hash256 {
	return hash.Hash256b([]byte(s))
}

func putKeys(kvs []*batch.KV) [][]byte {
	keys := make([][]byte, len(kvs))
	for i, kv := range kvs {
		keys[i] = kv.Key
	}
	return keys
}

func putValue(kvs []*batch.KV, key []byte) []byte {
	for _, kv := range kvs {
		if string(kv.Key) == string(key) {
			return kv.Value
		}
	}
	return nil
}

func TestInsertRemoveCachedBlock(t *testing.T) {
	r := require.New(t)

	info := codec.BlockInfo{BlockHash: testHash("block 5"), Timestamp: 100}
	txHashes := []hash.Hash256{testHash("tx1"), testHash("tx2")}
	wb := NewWriteBatch().InsertCachedBlock(info, 5, txHashes)
	puts := wb.ExtractRawDataToInsert()
	r.Equal([][]byte{
		keyformat.BlockInfoByIndex.Encode(uint32(5)),
		keyformat.TxHashesByBlock.Encode(uint32(5)),
		keyformat.BlockIndexByHash.Encode(info.BlockHash),
		keyformat.LastBlockIndexKey.Encode(),
	}, putKeys(puts))
	r.Empty(wb.ExtractRawKeysToRemove())
	r.Equal(codec.MustEncode(uint32(5)), putValue(puts, keyformat.LastBlockIndexKey.Encode()))
	r.Equal(codec.MustEncode(&info), puts[0].Value)

	// move once
	r.Empty(wb.ExtractRawDataToInsert())

	wb = NewWriteBatch().RemoveCachedBlock(info.BlockHash, 5)
	puts = wb.ExtractRawDataToInsert()
	r.Len(puts, 1)
	r.Equal(codec.MustEncode(uint32(4)), putValue(puts, keyformat.LastBlockIndexKey.Encode()))
	r.Len(wb.ExtractRawKeysToRemove(), 3)

	// removing the genesis block empties the chain
	wb = NewWriteBatch().RemoveCachedBlock(info.BlockHash, 0)
	r.Empty(wb.ExtractRawDataToInsert())
	deletes := wb.ExtractRawKeysToRemove()
	r.Len(deletes, 4)
	r.Contains(deletes, keyformat.LastBlockIndexKey.Encode())
}

func TestInsertKeyOutputGlobalIndexes(t *testing.T) {
	r := require.New(t)

	outputs := []codec.PackedOutIndex{{BlockIndex: 1}, {BlockIndex: 2}}
	wb := NewWriteBatch().InsertKeyOutputGlobalIndexes(5, outputs, 7)
	puts := wb.ExtractRawDataToInsert()
	r.Equal([][]byte{
		keyformat.KeyOutputCountByAmount.Encode(uint64(5)),
		keyformat.KeyOutputByAmount.Encode(uint64(5), uint64(5)),
		keyformat.KeyOutputByAmount.Encode(uint64(5), uint64(6)),
	}, putKeys(puts))
	r.Equal(codec.MustEncode(uint64(7)), puts[0].Value)
	r.Equal(codec.MustEncode(&outputs[1]), puts[2].Value)

	wb = NewWriteBatch().RemoveKeyOutputGlobalIndexes(5, 2, 5)
	puts = wb.ExtractRawDataToInsert()
	r.Equal(codec.MustEncode(uint64(5)), puts[0].Value)
	r.Equal([][]byte{
		keyformat.KeyOutputByAmount.Encode(uint64(5), uint64(5)),
		keyformat.KeyOutputByAmount.Encode(uint64(5), uint64(6)),
	}, wb.ExtractRawKeysToRemove())

	r.Panics(func() { NewWriteBatch().InsertKeyOutputGlobalIndexes(5, outputs, 1) })
}

func TestInsertPaymentID(t *testing.T) {
	r := require.New(t)

	pid, tx := testHash("pid"), testHash("tx")
	wb := NewWriteBatch().InsertPaymentID(tx, pid, 3)
	puts := wb.ExtractRawDataToInsert()
	r.Equal(codec.MustEncode(uint32(3)), putValue(puts, keyformat.PaymentIDCountByID.Encode(pid)))
	r.Equal(codec.MustEncode(tx), putValue(puts, keyformat.TxHashByPaymentID.Encode(pid, uint32(2))))

	wb = NewWriteBatch().RemovePaymentID(pid, 2)
	puts = wb.ExtractRawDataToInsert()
	r.Equal(codec.MustEncode(uint32(2)), putValue(puts, keyformat.PaymentIDCountByID.Encode(pid)))
	r.Equal([][]byte{keyformat.TxHashByPaymentID.Encode(pid, uint32(2))}, wb.ExtractRawKeysToRemove())

	r.Panics(func() { NewWriteBatch().InsertPaymentID(tx, pid, 0) })
}

func TestInsertKeyOutputAmounts(t *testing.T) {
	r := require.New(t)

	wb := NewWriteBatch().InsertKeyOutputAmounts([]uint64{30, 10, 20}, 5)
	puts := wb.ExtractRawDataToInsert()
	r.Equal(codec.MustEncode(uint32(5)), putValue(puts, keyformat.KeyOutputAmountsCountKey.Encode()))
	for id, amount := range map[uint32]uint64{2: 10, 3: 20, 4: 30} {
		r.Equal(codec.MustEncode(amount), putValue(puts, keyformat.KeyOutputAmountByID.Encode(id)))
	}

	wb = NewWriteBatch().RemoveKeyOutputAmounts(3, 2)
	r.Len(wb.ExtractRawKeysToRemove(), 3)

	r.Panics(func() { NewWriteBatch().InsertKeyOutputAmounts([]uint64{1, 2}, 1) })
	r.Panics(func() { NewWriteBatch().InsertKeyOutputAmounts([]uint64{1, 1}, 2) })
}

func TestSpentKeyImagesAreSorted(t *testing.T) {
	r := require.New(t)

	images := []hash.Hash256{testHash("c"), testHash("a"), testHash("b")}
	wb := NewWriteBatch().InsertSpentKeyImages(9, images)
	puts := wb.ExtractRawDataToInsert()
	r.Len(puts, 4)
	r.Equal(codec.MustEncode(codec.SortedHashes(images)), putValue(puts, keyformat.KeyImagesByBlock.Encode(uint32(9))))
	for _, ki := range images {
		r.Equal(codec.MustEncode(uint32(9)), putValue(puts, keyformat.BlockIndexByKeyImage.Encode(ki)))
	}
	// the caller's slice is untouched
	r.Equal(testHash("c"), images[0])

	wb = NewWriteBatch().RemoveSpentKeyImages(9, images)
	r.Empty(wb.ExtractRawDataToInsert())
	r.Len(wb.ExtractRawKeysToRemove(), 4)
}

func TestWriteBatchRawBlockAndIndexes(t *testing.T) {
	r := require.New(t)

	raw := &codec.RawBlock{Block: []byte("block"), Transactions: [][]byte{[]byte("tx")}}
	info := codec.KeyOutputInfo{PublicKey: testHash("pub"), OutputIndex: 1}
	wb := NewWriteBatch().
		InsertRawBlock(3, raw).
		InsertClosestTimestampBlockIndex(1000, 3).
		InsertTimestamp(1000, []hash.Hash256{testHash("block")}).
		InsertKeyOutputInfo(5, 0, info).
		InsertCachedTransaction(codec.TransactionInfo{TransactionHash: testHash("tx")}, 10)
	r.Equal(6, wb.Size())
	puts := wb.ExtractRawDataToInsert()
	r.Equal(codec.EncodeRawBlock(raw), putValue(puts, keyformat.RawBlockByIndex.Encode(uint32(3))))
	r.Equal(codec.MustEncode(uint32(3)), putValue(puts, keyformat.ClosestTimestampBlockIndex.Encode(uint64(1000))))
	r.Equal(codec.MustEncode(&info), putValue(puts, keyformat.KeyOutputInfoByGlobalIndex.Encode(uint64(5), uint64(0))))
	r.Equal(codec.MustEncode(uint64(10)), putValue(puts, keyformat.TransactionsCountKey.Encode()))

	wb = NewWriteBatch().
		RemoveRawBlock(3).
		RemoveClosestTimestampBlockIndex(1000).
		RemoveTimestamp(1000).
		RemoveKeyOutputInfo(5, 0).
		RemoveCachedTransaction(testHash("tx"), 9)
	r.Len(wb.ExtractRawDataToInsert(), 1)
	r.Len(wb.ExtractRawKeysToRemove(), 5)
}

func TestWriteBatchConflict(t *testing.T) {
	r := require.New(t)

	info := codec.BlockInfo{BlockHash: testHash("block")}
	wb := NewWriteBatch().InsertCachedBlock(info, 1, nil)
	r.Panics(func() { wb.RemoveCachedBlock(info.BlockHash, 1) })
}

func TestRemoveCachedBlocksDownToGenesis(t *testing.T) {
	r := require.New(t)

	h0, h1, h2 := testHash("block 0"), testHash("block 1"), testHash("block 2")
	wb := NewWriteBatch().
		RemoveCachedBlock(h2, 2).
		RemoveCachedBlock(h1, 1)
	// puts apply in staging order, the last one wins
	var last []byte
	for _, kv := range wb.ExtractRawDataToInsert() {
		if string(kv.Key) == string(keyformat.LastBlockIndexKey.Encode()) {
			last = kv.Value
		}
	}
	r.Equal(codec.MustEncode(uint32(0)), last)

	wb = NewWriteBatch().RemoveCachedBlock(h1, 1)
	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = p.(error)
			}
		}()
		wb.RemoveCachedBlock(h0, 0)
		return nil
	}()
	r.Equal(batch.ErrConflictingWrite, errors.Cause(err))

	wb = NewWriteBatch().RemoveCachedBlock(h0, 0)
	r.Contains(wb.ExtractRawKeysToRemove(), keyformat.LastBlockIndexKey.Encode())
}
