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
)

func TestReadBatchKeys(t *testing.T) {
	r := require.New(t)

	rb := NewReadBatch()
	rb.BlockInfo(1)
	rb.LastBlockIndex()
	rb.KeyOutput(5, 1)
	r.Equal(3, rb.Len())
	r.Equal([][]byte{
		keyformat.BlockInfoByIndex.Encode(uint32(1)),
		keyformat.LastBlockIndexKey.Encode(),
		keyformat.KeyOutputByAmount.Encode(uint64(5), uint64(1)),
	}, rb.RawKeys())
	r.Empty(NewReadBatch().RawKeys())
}

func TestReadBatchPartialResult(t *testing.T) {
	r := require.New(t)

	info := codec.BlockInfo{BlockHash: testHash("block"), Timestamp: 7}
	rb := NewReadBatch()
	s1 := rb.BlockInfo(1)
	s2 := rb.TransactionsCount()
	s3 := rb.PaymentIDTx(testHash("pid"), 0)
	r.Nil(rb.Found())

	r.NoError(rb.SubmitRawResult(
		[][]byte{codec.MustEncode(&info), nil, codec.MustEncode(testHash("tx"))},
		[]bool{true, false, true},
	))
	r.Equal([]bool{true, false, true}, rb.Found())

	got, ok := s1.Get()
	r.True(ok)
	r.Equal(info, got)
	count, ok := s2.Get()
	r.False(ok)
	r.Zero(count)
	r.False(s2.Found())
	txHash, ok := s3.Get()
	r.True(ok)
	r.Equal(testHash("tx"), txHash)

	// a result is submitted once
	err := rb.SubmitRawResult([][]byte{nil, nil, nil}, []bool{false, false, false})
	r.Equal(ErrInvalidResult, errors.Cause(err))
	_, ok = s1.Get()
	r.True(ok)
}

func TestReadBatchInvalidResult(t *testing.T) {
	r := require.New(t)

	rb := NewReadBatch()
	rb.LastBlockIndex()
	rb.TransactionsCount()
	r.Equal(ErrInvalidResult, errors.Cause(rb.SubmitRawResult([][]byte{nil}, []bool{false})))
	r.Equal(ErrInvalidResult, errors.Cause(rb.SubmitRawResult([][]byte{nil, nil}, []bool{false})))
	// rejected results do not consume the batch
	r.NoError(rb.SubmitRawResult([][]byte{nil, nil}, []bool{false, false}))
}

func TestReadBatchCorruption(t *testing.T) {
	r := require.New(t)

	rb := NewReadBatch()
	slot := rb.BlockInfo(1)
	err := rb.SubmitRawResult([][]byte{{0xde, 0xad}}, []bool{true})
	r.True(errors.Is(err, codec.ErrDecode))
	_, ok := slot.Get()
	r.False(ok)

	rb = NewReadBatch()
	rb.RawBlock(1)
	err = rb.SubmitRawResult([][]byte{{0x01, 0x05}}, []bool{true})
	r.True(errors.Is(err, codec.ErrDecode))

	// a stored zero is found, unlike an absent record
	rb = NewReadBatch()
	last := rb.LastBlockIndex()
	r.NoError(rb.SubmitRawResult([][]byte{codec.MustEncode(uint32(0))}, []bool{true}))
	index, ok := last.Get()
	r.True(ok)
	r.Zero(index)
}

func TestReadBatchTypedSlots(t *testing.T) {
	r := require.New(t)

	raw := codec.RawBlock{Block: []byte("block"), Transactions: [][]byte{[]byte("tx")}}
	images := []hash.Hash256{testHash("a"), testHash("b")}
	rb := NewReadBatch()
	rawSlot := rb.RawBlock(1)
	imagesSlot := rb.SpentKeyImages(1)
	bytesSlot := rb.Raw([]byte("custom"))
	amountSlot := rb.KeyOutputAmount(0)
	r.NoError(rb.SubmitRawResult(
		[][]byte{codec.EncodeRawBlock(&raw), codec.MustEncode(images), []byte("opaque"), codec.MustEncode(uint64(50))},
		[]bool{true, true, true, true},
	))
	gotRaw, ok := rawSlot.Get()
	r.True(ok)
	r.Equal(raw, gotRaw)
	gotImages, _ := imagesSlot.Get()
	r.Equal(images, gotImages)
	gotBytes, _ := bytesSlot.Get()
	r.Equal([]byte("opaque"), gotBytes)
	amount, _ := amountSlot.Get()
	r.EqualValues(50, amount)
}
