// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package keyformat

import (
	"fmt"

	"github.com/pkg/errors"
)

// Tag is the one-byte prefix identifying a record family
type Tag byte

// Record family tags. Singletons and counters have their own tags so that no
// fixed key ever shares a prefix with per-item keys.
const (
	TagBlockIndexToKeyImages      Tag = '0'
	TagBlockIndexToTxHashes       Tag = '1'
	TagBlockIndexToRawBlock       Tag = '4'
	TagBlockHashToBlockIndex      Tag = '5'
	TagBlockIndexToBlockInfo      Tag = '6'
	TagKeyImageToBlockIndex       Tag = '7'
	TagLastBlockIndex             Tag = '8'
	TagTxHashToTxInfo             Tag = 'a'
	TagKeyOutputAmount            Tag = 'b'
	TagKeyOutputAmountCount       Tag = 'c'
	TagClosestTimestampBlockIndex Tag = 'e'
	TagPaymentIDToTxHash          Tag = 'f'
	TagTimestampToBlockHashes     Tag = 'g'
	TagKeyOutputAmounts           Tag = 'h'
	TagKeyOutputKey               Tag = 'j'
	TagKeyOutputAmountsCount      Tag = 'k'
	TagPaymentIDCount             Tag = 'p'
	TagTransactionsCount          Tag = 't'
)

var _tagNames = map[Tag]string{
	TagBlockIndexToKeyImages:      "BlockIndexToKeyImages",
	TagBlockIndexToTxHashes:       "BlockIndexToTxHashes",
	TagBlockIndexToRawBlock:       "BlockIndexToRawBlock",
	TagBlockHashToBlockIndex:      "BlockHashToBlockIndex",
	TagBlockIndexToBlockInfo:      "BlockIndexToBlockInfo",
	TagKeyImageToBlockIndex:       "KeyImageToBlockIndex",
	TagLastBlockIndex:             "LastBlockIndex",
	TagTxHashToTxInfo:             "TransactionHashToTransactionInfo",
	TagKeyOutputAmount:            "KeyOutputAmount",
	TagKeyOutputAmountCount:       "KeyOutputAmountCount",
	TagClosestTimestampBlockIndex: "ClosestTimestampBlockIndex",
	TagPaymentIDToTxHash:          "PaymentIdToTxHash",
	TagTimestampToBlockHashes:     "TimestampToBlockHashes",
	TagKeyOutputAmounts:           "KeyOutputAmounts",
	TagKeyOutputKey:               "KeyOutputKey",
	TagKeyOutputAmountsCount:      "KeyOutputAmountsCount",
	TagPaymentIDCount:             "PaymentIdCount",
	TagTransactionsCount:          "TransactionsCount",
}

// String returns the family name of the tag
func (t Tag) String() string {
	if name, ok := _tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(0x%02x)", byte(t))
}

// Tags returns all known tags in key order
func Tags() []Tag {
	tags := make([]Tag, 0, len(_tagNames))
	for i := 0; i < 256; i++ {
		if _, ok := _tagNames[Tag(i)]; ok {
			tags = append(tags, Tag(i))
		}
	}
	return tags
}

// ParseTag resolves a tag from either its one-character form ("b") or its
// family name ("KeyOutputAmount")
func ParseTag(s string) (Tag, error) {
	if len(s) == 1 {
		if _, ok := _tagNames[Tag(s[0])]; ok {
			return Tag(s[0]), nil
		}
	}
	for t, name := range _tagNames {
		if name == s {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownTag, "%q", s)
}
