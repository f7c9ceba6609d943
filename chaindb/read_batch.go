// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chaindb

import (
	"github.com/iotexproject/go-pkgs/hash"
	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-chaindb/chaindb/codec"
	"github.com/iotexproject/iotex-chaindb/chaindb/keyformat"
	"github.com/iotexproject/iotex-chaindb/db/batch"
)

// ErrInvalidResult is returned when a read result does not match its batch
var ErrInvalidResult = errors.New("invalid read result")

type (
	// Slot holds the typed result of one read request
	Slot[T any] struct {
		value T
		found bool
	}

	readRequest struct {
		key    []byte
		decode func([]byte) error
	}

	// ReadBatch collects typed read requests, and decodes the raw result of
	// an engine into their slots. It is submitted at most once.
	ReadBatch struct {
		requests  []readRequest
		found     []bool
		submitted bool
	}
)

var _ batch.ReadBatch = (*ReadBatch)(nil)

// Get returns the value and whether the record exists; an absent record
// returns the zero value and false
func (s *Slot[T]) Get() (T, bool) {
	return s.value, s.found
}

// Found returns whether the record exists
func (s *Slot[T]) Found() bool {
	return s.found
}

// NewReadBatch returns an empty read batch
func NewReadBatch() *ReadBatch {
	return &ReadBatch{}
}

func request[T any](rb *ReadBatch, key []byte) *Slot[T] {
	slot := &Slot[T]{}
	rb.requests = append(rb.requests, readRequest{
		key: key,
		decode: func(b []byte) error {
			if err := codec.DecodeValue(b, &slot.value); err != nil {
				return err
			}
			slot.found = true
			return nil
		},
	})
	return slot
}

// Len returns the number of requests
func (rb *ReadBatch) Len() int {
	return len(rb.requests)
}

// Raw requests the undecoded value of an arbitrary key
func (rb *ReadBatch) Raw(key []byte) *Slot[[]byte] {
	slot := &Slot[[]byte]{}
	rb.requests = append(rb.requests, readRequest{
		key: key,
		decode: func(b []byte) error {
			slot.value, slot.found = b, true
			return nil
		},
	})
	return slot
}

// BlockInfo requests the info of the block at index
func (rb *ReadBatch) BlockInfo(index uint32) *Slot[codec.BlockInfo] {
	return request[codec.BlockInfo](rb, keyformat.BlockInfoByIndex.Encode(index))
}

// TxHashes requests the tx hashes of the block at index
func (rb *ReadBatch) TxHashes(index uint32) *Slot[[]hash.Hash256] {
	return request[[]hash.Hash256](rb, keyformat.TxHashesByBlock.Encode(index))
}

// RawBlock requests the serialized block at index
func (rb *ReadBatch) RawBlock(index uint32) *Slot[codec.RawBlock] {
	return request[codec.RawBlock](rb, keyformat.RawBlockByIndex.Encode(index))
}

// BlockIndexByHash requests the index of the block with hash
func (rb *ReadBatch) BlockIndexByHash(blockHash hash.Hash256) *Slot[uint32] {
	return request[uint32](rb, keyformat.BlockIndexByHash.Encode(blockHash))
}

// LastBlockIndex requests the index of the top block
func (rb *ReadBatch) LastBlockIndex() *Slot[uint32] {
	return request[uint32](rb, keyformat.LastBlockIndexKey.Encode())
}

// SpentKeyImages requests the sorted key images spent in the block at index
func (rb *ReadBatch) SpentKeyImages(index uint32) *Slot[[]hash.Hash256] {
	return request[[]hash.Hash256](rb, keyformat.KeyImagesByBlock.Encode(index))
}

// KeyImageBlockIndex requests the index of the block spending keyImage
func (rb *ReadBatch) KeyImageBlockIndex(keyImage hash.Hash256) *Slot[uint32] {
	return request[uint32](rb, keyformat.BlockIndexByKeyImage.Encode(keyImage))
}

// TransactionInfo requests the transaction with hash
func (rb *ReadBatch) TransactionInfo(txHash hash.Hash256) *Slot[codec.TransactionInfo] {
	return request[codec.TransactionInfo](rb, keyformat.TxInfoByHash.Encode(txHash))
}

// TransactionsCount requests the total number of transactions
func (rb *ReadBatch) TransactionsCount() *Slot[uint64] {
	return request[uint64](rb, keyformat.TransactionsCountKey.Encode())
}

// KeyOutputCount requests the number of outputs of amount
func (rb *ReadBatch) KeyOutputCount(amount uint64) *Slot[uint64] {
	return request[uint64](rb, keyformat.KeyOutputCountByAmount.Encode(amount))
}

// KeyOutput requests the location of output seq of amount
func (rb *ReadBatch) KeyOutput(amount, seq uint64) *Slot[codec.PackedOutIndex] {
	return request[codec.PackedOutIndex](rb, keyformat.KeyOutputByAmount.Encode(amount, seq))
}

// KeyOutputInfo requests the info of the output at (amount, globalIndex)
func (rb *ReadBatch) KeyOutputInfo(amount, globalIndex uint64) *Slot[codec.KeyOutputInfo] {
	return request[codec.KeyOutputInfo](rb, keyformat.KeyOutputInfoByGlobalIndex.Encode(amount, globalIndex))
}

// KeyOutputAmountsCount requests the number of distinct output amounts
func (rb *ReadBatch) KeyOutputAmountsCount() *Slot[uint32] {
	return request[uint32](rb, keyformat.KeyOutputAmountsCountKey.Encode())
}

// KeyOutputAmount requests the amount with id
func (rb *ReadBatch) KeyOutputAmount(id uint32) *Slot[uint64] {
	return request[uint64](rb, keyformat.KeyOutputAmountByID.Encode(id))
}

// PaymentIDCount requests the number of txs of payment id
func (rb *ReadBatch) PaymentIDCount(paymentID hash.Hash256) *Slot[uint32] {
	return request[uint32](rb, keyformat.PaymentIDCountByID.Encode(paymentID))
}

// PaymentIDTx requests the tx hash at seq of payment id
func (rb *ReadBatch) PaymentIDTx(paymentID hash.Hash256, seq uint32) *Slot[hash.Hash256] {
	return request[hash.Hash256](rb, keyformat.TxHashByPaymentID.Encode(paymentID, seq))
}

// Timestamp requests the hashes of the blocks with timestamp
func (rb *ReadBatch) Timestamp(timestamp uint64) *Slot[[]hash.Hash256] {
	return request[[]hash.Hash256](rb, keyformat.BlockHashesByTimestamp.Encode(timestamp))
}

// ClosestTimestampBlockIndex requests the block index closest to timestamp
func (rb *ReadBatch) ClosestTimestampBlockIndex(timestamp uint64) *Slot[uint32] {
	return request[uint32](rb, keyformat.ClosestTimestampBlockIndex.Encode(timestamp))
}

// RawKeys returns the keys in request order
func (rb *ReadBatch) RawKeys() [][]byte {
	keys := make([][]byte, len(rb.requests))
	for i := range rb.requests {
		keys[i] = rb.requests[i].key
	}
	return keys
}

// SubmitRawResult decodes the values found by the engine into the slots.
// values and found run parallel to RawKeys. A value that cannot be decoded
// is corruption and fails the whole result.
func (rb *ReadBatch) SubmitRawResult(values [][]byte, found []bool) error {
	if rb.submitted {
		return errors.Wrap(ErrInvalidResult, "result already submitted")
	}
	if len(values) != len(rb.requests) || len(found) != len(rb.requests) {
		return errors.Wrapf(ErrInvalidResult, "%d requests, got %d values and %d flags", len(rb.requests), len(values), len(found))
	}
	rb.submitted = true
	for i := range rb.requests {
		if !found[i] {
			continue
		}
		if err := rb.requests[i].decode(values[i]); err != nil {
			return errors.Wrapf(err, "key %x", rb.requests[i].key)
		}
	}
	rb.found = append([]bool(nil), found...)
	return nil
}

// Found returns the found flags in request order after submission
func (rb *ReadBatch) Found() []bool {
	return rb.found
}
