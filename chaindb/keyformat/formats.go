// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package keyformat

import (
	"github.com/iotexproject/go-pkgs/hash"
)

var (
	// KeyImagesByBlock is (blockIndex). Value is the sorted key image list
	// spent in the block.
	KeyImagesByBlock = New(TagBlockIndexToKeyImages, uint32(0))

	// TxHashesByBlock is (blockIndex). Value is the block's tx hash list.
	TxHashesByBlock = New(TagBlockIndexToTxHashes, uint32(0))

	// RawBlockByIndex is (blockIndex). Value is a raw block.
	RawBlockByIndex = New(TagBlockIndexToRawBlock, uint32(0))

	// BlockIndexByHash is (blockHash). Value is the block index.
	BlockIndexByHash = New(TagBlockHashToBlockIndex, hash.Hash256{})

	// BlockInfoByIndex is (blockIndex). Value is BlockInfo.
	BlockInfoByIndex = New(TagBlockIndexToBlockInfo, uint32(0))

	// BlockIndexByKeyImage is (keyImage). Value is the spending block index.
	BlockIndexByKeyImage = New(TagKeyImageToBlockIndex, hash.Hash256{})

	// LastBlockIndexKey is the singleton holding the top block index.
	LastBlockIndexKey = New(TagLastBlockIndex)

	// TxInfoByHash is (txHash). Value is TransactionInfo.
	TxInfoByHash = New(TagTxHashToTxInfo, hash.Hash256{})

	// KeyOutputByAmount is (amount, seq). Value is PackedOutIndex.
	KeyOutputByAmount = New(TagKeyOutputAmount, uint64(0), uint64(0))

	// KeyOutputCountByAmount is (amount). Value is the number of outputs of
	// that amount.
	KeyOutputCountByAmount = New(TagKeyOutputAmountCount, uint64(0))

	// ClosestTimestampBlockIndex is (timestamp). Value is a block index.
	ClosestTimestampBlockIndex = New(TagClosestTimestampBlockIndex, uint64(0))

	// TxHashByPaymentID is (paymentID, seq). Value is a tx hash.
	TxHashByPaymentID = New(TagPaymentIDToTxHash, hash.Hash256{}, uint32(0))

	// BlockHashesByTimestamp is (timestamp). Value is a block hash list.
	BlockHashesByTimestamp = New(TagTimestampToBlockHashes, uint64(0))

	// KeyOutputAmountByID is (amountID). Value is an amount.
	KeyOutputAmountByID = New(TagKeyOutputAmounts, uint32(0))

	// KeyOutputInfoByGlobalIndex is (amount, globalIndex). Value is
	// KeyOutputInfo.
	KeyOutputInfoByGlobalIndex = New(TagKeyOutputKey, uint64(0), uint64(0))

	// KeyOutputAmountsCountKey is the singleton holding the number of
	// distinct output amounts.
	KeyOutputAmountsCountKey = New(TagKeyOutputAmountsCount)

	// PaymentIDCountByID is (paymentID). Value is the number of txs carrying
	// the payment id.
	PaymentIDCountByID = New(TagPaymentIDCount, hash.Hash256{})

	// TransactionsCountKey is the singleton holding the total tx count.
	TransactionsCountKey = New(TagTransactionsCount)
)
