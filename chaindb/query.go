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
	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/pkg/util/byteutil"
)

// LastBlockIndex reads the index of the top block; ok is false on an empty
// chain
func LastBlockIndex(d db.DataBase) (index uint32, ok bool, err error) {
	rb := NewReadBatch()
	slot := rb.LastBlockIndex()
	if err := d.ReadThreadSafe(rb); err != nil {
		return 0, false, err
	}
	index, ok = slot.Get()
	return index, ok, nil
}

// ForEachKeyOutput visits the outputs of amount in sequence order
func ForEachKeyOutput(d db.DataBase, amount uint64, fn func(seq uint64, out codec.PackedOutIndex) error) error {
	return d.ForEach(keyformat.KeyOutputByAmount.Prefix(amount), func(k, v []byte) error {
		var seq uint64
		if err := keyformat.KeyOutputByAmount.Decode(k, nil, &seq); err != nil {
			return err
		}
		var out codec.PackedOutIndex
		if err := codec.DecodeValue(v, &out); err != nil {
			return err
		}
		return fn(seq, out)
	})
}

// ForEachBlockInfo visits the blocks from index on in index order
func ForEachBlockInfo(d db.DataBase, from uint32, fn func(index uint32, info codec.BlockInfo) error) error {
	start := keyformat.BlockInfoByIndex.Encode(from)
	limit := byteutil.PrefixUpperBound(keyformat.BlockInfoByIndex.Prefix())
	return d.Range(start, limit, func(k, v []byte) error {
		var index uint32
		if err := keyformat.BlockInfoByIndex.Decode(k, &index); err != nil {
			return err
		}
		var info codec.BlockInfo
		if err := codec.DecodeValue(v, &info); err != nil {
			return err
		}
		return fn(index, info)
	})
}

// ForEachPaymentIDTx visits the txs of payment id in insertion order
func ForEachPaymentIDTx(d db.DataBase, paymentID hash.Hash256, fn func(seq uint32, txHash hash.Hash256) error) error {
	return d.ForEach(keyformat.TxHashByPaymentID.Prefix(paymentID), func(k, v []byte) error {
		var seq uint32
		if err := keyformat.TxHashByPaymentID.Decode(k, nil, &seq); err != nil {
			return err
		}
		var txHash hash.Hash256
		if err := codec.DecodeValue(v, &txHash); err != nil {
			return err
		}
		return fn(seq, txHash)
	})
}

// CountKeys counts the records of a family
func CountKeys(d db.DataBase, tag keyformat.Tag) (uint64, error) {
	var count uint64
	if err := d.ForEach([]byte{byte(tag)}, func(_, _ []byte) error {
		count++
		return nil
	}); err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", tag)
	}
	return count, nil
}
