// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"sort"

	"github.com/iotexproject/go-pkgs/hash"
)

type (
	// BlockInfo is the cached per-block record
	BlockInfo struct {
		BlockHash                    hash.Hash256
		BlockSize                    uint32
		Timestamp                    uint64
		CumulativeDifficulty         uint64
		AlreadyGeneratedCoins        uint64
		AlreadyGeneratedTransactions uint64
	}

	// PackedOutIndex locates an output inside the chain
	PackedOutIndex struct {
		BlockIndex       uint32
		TransactionIndex uint16
		OutputIndex      uint16
	}

	// KeyOutput is a transaction output paying amount to a one-time key
	KeyOutput struct {
		Amount uint64
		Key    hash.Hash256
	}

	// AmountGlobalIndexes lists the global output indexes assigned to one
	// amount inside a transaction
	AmountGlobalIndexes struct {
		Amount        uint64
		GlobalIndexes []uint64
	}

	// TransactionInfo is the cached per-transaction record
	TransactionInfo struct {
		BlockIndex          uint32
		TransactionIndex    uint32
		TransactionHash     hash.Hash256
		UnlockTime          uint64
		Outputs             []KeyOutput
		GlobalIndexes       []uint32
		AmountGlobalIndexes []AmountGlobalIndexes
	}

	// KeyOutputInfo is the record of a single key output by global index
	KeyOutputInfo struct {
		PublicKey       hash.Hash256
		TransactionHash hash.Hash256
		UnlockTime      uint64
		OutputIndex     uint16
	}

	// RawBlock is a serialized block plus its serialized transactions
	RawBlock struct {
		Block        []byte
		Transactions [][]byte
	}
)

// SortAmountGlobalIndexes orders the amount mapping by amount so that equal
// mappings encode equally
func (ti *TransactionInfo) SortAmountGlobalIndexes() {
	sort.SliceStable(ti.AmountGlobalIndexes, func(i, j int) bool {
		return ti.AmountGlobalIndexes[i].Amount < ti.AmountGlobalIndexes[j].Amount
	})
}

// SortedHashes returns a sorted copy of hashes, used for key image sets. An
// empty set is nil.
func SortedHashes(hashes []hash.Hash256) []hash.Hash256 {
	if len(hashes) == 0 {
		return nil
	}
	sorted := make([]hash.Hash256, len(hashes))
	copy(sorted, hashes)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	return sorted
}
