// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package batch

const (
	// Put indicate the type of write operation to be Put
	Put WriteType = iota
	// Delete indicate the type of write operation to be Delete
	Delete
)

type (
	// WriteType is the type of write
	WriteType uint8

	// WriteInfo is one staged Put or Delete
	WriteInfo struct {
		writeType WriteType
		key       []byte
		value     []byte
	}

	// KV is a raw key/value pair handed to an engine for insertion
	KV struct {
		Key   []byte
		Value []byte
	}
)

// NewWriteInfo creates a new write info
func NewWriteInfo(writeType WriteType, key, value []byte) *WriteInfo {
	return &WriteInfo{
		writeType: writeType,
		key:       key,
		value:     value,
	}
}

// WriteType returns the type of a write info
func (wi *WriteInfo) WriteType() WriteType {
	return wi.writeType
}

// Key returns a copy of key
func (wi *WriteInfo) Key() []byte {
	key := make([]byte, len(wi.key))
	copy(key, wi.key)

	return key
}

// Value returns a copy of value
func (wi *WriteInfo) Value() []byte {
	value := make([]byte, len(wi.value))
	copy(value, wi.value)

	return value
}

func (wt WriteType) String() string {
	switch wt {
	case Put:
		return "put"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}
