// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chaindb

import (
	"sort"

	"github.com/iotexproject/go-pkgs/hash"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/chaindb/codec"
	"github.com/iotexproject/iotex-chaindb/chaindb/keyformat"
	"github.com/iotexproject/iotex-chaindb/db/batch"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
)

// WriteBatch stages the mutations of one applied or reverted block. Staging
// does no I/O and never fails; counters are passed in by the caller, who
// owns them. A batch is used once by a single goroutine.
type WriteBatch struct {
	raw *batch.Batch
}

var _ batch.WriteBatch = (*WriteBatch)(nil)

// NewWriteBatch returns an empty write batch
func NewWriteBatch() *WriteBatch {
	return &WriteBatch{
		raw: batch.NewBatch(),
	}
}

func (wb *WriteBatch) put(key []byte, value interface{}) {
	b, err := codec.EncodeValue(value)
	if err != nil {
		log.L().Panic("Failed to encode value.", log.Hex("key", key), zap.Error(err))
	}
	wb.raw.Put(key, b)
}

func (wb *WriteBatch) delete(key []byte) {
	wb.raw.Delete(key)
}

// Size returns the number of staged mutations
func (wb *WriteBatch) Size() int {
	return wb.raw.Size()
}

// InsertCachedBlock stores the block info, the tx hash list, the hash to
// index mapping, and moves the last block index to index
func (wb *WriteBatch) InsertCachedBlock(info codec.BlockInfo, index uint32, txHashes []hash.Hash256) *WriteBatch {
	wb.put(keyformat.BlockInfoByIndex.Encode(index), &info)
	wb.put(keyformat.TxHashesByBlock.Encode(index), txHashes)
	wb.put(keyformat.BlockIndexByHash.Encode(info.BlockHash), index)
	wb.put(keyformat.LastBlockIndexKey.Encode(), index)
	return wb
}

// RemoveCachedBlock reverts InsertCachedBlock. Removing block 0 empties the
// chain, so the last block index is deleted instead of set. A batch that
// already removed a later block has put the last block index and panics with
// batch.ErrConflictingWrite on removing block 0; rolling back to an empty
// chain takes a separate batch for the genesis block.
func (wb *WriteBatch) RemoveCachedBlock(blockHash hash.Hash256, index uint32) *WriteBatch {
	wb.delete(keyformat.BlockInfoByIndex.Encode(index))
	wb.delete(keyformat.TxHashesByBlock.Encode(index))
	wb.delete(keyformat.BlockIndexByHash.Encode(blockHash))
	if index == 0 {
		wb.delete(keyformat.LastBlockIndexKey.Encode())
	} else {
		wb.put(keyformat.LastBlockIndexKey.Encode(), index-1)
	}
	return wb
}

// InsertSpentKeyImages records the key images spent by a block, both as a
// sorted per-block set and as per-image pointers to the block
func (wb *WriteBatch) InsertSpentKeyImages(blockIndex uint32, keyImages []hash.Hash256) *WriteBatch {
	wb.put(keyformat.KeyImagesByBlock.Encode(blockIndex), codec.SortedHashes(keyImages))
	for _, ki := range keyImages {
		wb.put(keyformat.BlockIndexByKeyImage.Encode(ki), blockIndex)
	}
	return wb
}

// RemoveSpentKeyImages reverts InsertSpentKeyImages
func (wb *WriteBatch) RemoveSpentKeyImages(blockIndex uint32, keyImages []hash.Hash256) *WriteBatch {
	wb.delete(keyformat.KeyImagesByBlock.Encode(blockIndex))
	for _, ki := range keyImages {
		wb.delete(keyformat.BlockIndexByKeyImage.Encode(ki))
	}
	return wb
}

// InsertCachedTransaction stores a transaction and sets the total tx count
func (wb *WriteBatch) InsertCachedTransaction(info codec.TransactionInfo, totalTxsCount uint64) *WriteBatch {
	info.AmountGlobalIndexes = append([]codec.AmountGlobalIndexes(nil), info.AmountGlobalIndexes...)
	info.SortAmountGlobalIndexes()
	wb.put(keyformat.TxInfoByHash.Encode(info.TransactionHash), &info)
	wb.put(keyformat.TransactionsCountKey.Encode(), totalTxsCount)
	return wb
}

// RemoveCachedTransaction removes a transaction and restores the total tx count
func (wb *WriteBatch) RemoveCachedTransaction(txHash hash.Hash256, totalTxsCount uint64) *WriteBatch {
	wb.delete(keyformat.TxInfoByHash.Encode(txHash))
	wb.put(keyformat.TransactionsCountKey.Encode(), totalTxsCount)
	return wb
}

// InsertPaymentID appends txHash to the list of payment id, newCount being
// the list length including it
func (wb *WriteBatch) InsertPaymentID(txHash, paymentID hash.Hash256, newCount uint32) *WriteBatch {
	if newCount == 0 {
		log.L().Panic("Payment id count must include the inserted tx.", log.Hex("paymentID", paymentID[:]))
	}
	wb.put(keyformat.PaymentIDCountByID.Encode(paymentID), newCount)
	wb.put(keyformat.TxHashByPaymentID.Encode(paymentID, newCount-1), txHash)
	return wb
}

// RemovePaymentID drops the last tx of payment id, prevCount being the list
// length after removal
func (wb *WriteBatch) RemovePaymentID(paymentID hash.Hash256, prevCount uint32) *WriteBatch {
	wb.put(keyformat.PaymentIDCountByID.Encode(paymentID), prevCount)
	wb.delete(keyformat.TxHashByPaymentID.Encode(paymentID, prevCount))
	return wb
}

// InsertKeyOutputGlobalIndexes appends outputs to the list of amount, whose
// length becomes totalCount. The outputs take the sequence numbers
// totalCount-len(outputs) to totalCount-1.
func (wb *WriteBatch) InsertKeyOutputGlobalIndexes(amount uint64, outputs []codec.PackedOutIndex, totalCount uint64) *WriteBatch {
	if totalCount < uint64(len(outputs)) {
		log.L().Panic("Total count is less than the number of outputs.",
			zap.Uint64("amount", amount),
			zap.Int("outputs", len(outputs)),
			zap.Uint64("totalCount", totalCount))
	}
	wb.put(keyformat.KeyOutputCountByAmount.Encode(amount), totalCount)
	seq := totalCount - uint64(len(outputs))
	for i := range outputs {
		wb.put(keyformat.KeyOutputByAmount.Encode(amount, seq), &outputs[i])
		seq++
	}
	return wb
}

// RemoveKeyOutputGlobalIndexes drops the top countToRemove outputs of amount
// and restores its count to totalCount
func (wb *WriteBatch) RemoveKeyOutputGlobalIndexes(amount uint64, countToRemove, totalCount uint64) *WriteBatch {
	wb.put(keyformat.KeyOutputCountByAmount.Encode(amount), totalCount)
	for i := uint64(0); i < countToRemove; i++ {
		wb.delete(keyformat.KeyOutputByAmount.Encode(amount, totalCount+i))
	}
	return wb
}

// InsertRawBlock stores the serialized block
func (wb *WriteBatch) InsertRawBlock(index uint32, raw *codec.RawBlock) *WriteBatch {
	wb.raw.Put(keyformat.RawBlockByIndex.Encode(index), codec.EncodeRawBlock(raw))
	return wb
}

// RemoveRawBlock removes the serialized block
func (wb *WriteBatch) RemoveRawBlock(index uint32) *WriteBatch {
	wb.delete(keyformat.RawBlockByIndex.Encode(index))
	return wb
}

// InsertClosestTimestampBlockIndex maps a timestamp to the closest block
func (wb *WriteBatch) InsertClosestTimestampBlockIndex(timestamp uint64, blockIndex uint32) *WriteBatch {
	wb.put(keyformat.ClosestTimestampBlockIndex.Encode(timestamp), blockIndex)
	return wb
}

// RemoveClosestTimestampBlockIndex removes the timestamp mapping
func (wb *WriteBatch) RemoveClosestTimestampBlockIndex(timestamp uint64) *WriteBatch {
	wb.delete(keyformat.ClosestTimestampBlockIndex.Encode(timestamp))
	return wb
}

// InsertKeyOutputAmounts appends distinct amounts in ascending order to the
// amount list, whose length becomes totalCount
func (wb *WriteBatch) InsertKeyOutputAmounts(amounts []uint64, totalCount uint32) *WriteBatch {
	sorted := sortedAmounts(amounts)
	if uint64(totalCount) < uint64(len(sorted)) {
		log.L().Panic("Total count is less than the number of amounts.",
			zap.Int("amounts", len(sorted)),
			zap.Uint32("totalCount", totalCount))
	}
	wb.put(keyformat.KeyOutputAmountsCountKey.Encode(), totalCount)
	id := totalCount - uint32(len(sorted))
	for _, amount := range sorted {
		wb.put(keyformat.KeyOutputAmountByID.Encode(id), amount)
		id++
	}
	return wb
}

// RemoveKeyOutputAmounts drops the top countToRemove amounts and restores the
// list length to totalCount
func (wb *WriteBatch) RemoveKeyOutputAmounts(countToRemove, totalCount uint32) *WriteBatch {
	wb.put(keyformat.KeyOutputAmountsCountKey.Encode(), totalCount)
	for i := uint32(0); i < countToRemove; i++ {
		wb.delete(keyformat.KeyOutputAmountByID.Encode(totalCount + i))
	}
	return wb
}

// InsertTimestamp maps a timestamp to the hashes of the blocks carrying it
func (wb *WriteBatch) InsertTimestamp(timestamp uint64, blockHashes []hash.Hash256) *WriteBatch {
	wb.put(keyformat.BlockHashesByTimestamp.Encode(timestamp), blockHashes)
	return wb
}

// RemoveTimestamp removes the timestamp mapping
func (wb *WriteBatch) RemoveTimestamp(timestamp uint64) *WriteBatch {
	wb.delete(keyformat.BlockHashesByTimestamp.Encode(timestamp))
	return wb
}

// InsertKeyOutputInfo stores the info of the output at (amount, globalIndex)
func (wb *WriteBatch) InsertKeyOutputInfo(amount, globalIndex uint64, info codec.KeyOutputInfo) *WriteBatch {
	wb.put(keyformat.KeyOutputInfoByGlobalIndex.Encode(amount, globalIndex), &info)
	return wb
}

// RemoveKeyOutputInfo removes the info of the output at (amount, globalIndex)
func (wb *WriteBatch) RemoveKeyOutputInfo(amount, globalIndex uint64) *WriteBatch {
	wb.delete(keyformat.KeyOutputInfoByGlobalIndex.Encode(amount, globalIndex))
	return wb
}

func sortedAmounts(amounts []uint64) []uint64 {
	sorted := make([]uint64, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			log.L().Panic("Duplicate key output amount.", zap.Uint64("amount", sorted[i]))
		}
	}
	return sorted
}

// ExtractRawDataToInsert moves the staged puts out of the batch
func (wb *WriteBatch) ExtractRawDataToInsert() []*batch.KV {
	return wb.raw.ExtractRawDataToInsert()
}

// ExtractRawKeysToRemove moves the staged deletes out of the batch
func (wb *WriteBatch) ExtractRawKeysToRemove() [][]byte {
	return wb.raw.ExtractRawKeysToRemove()
}
