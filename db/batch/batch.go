// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package batch

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrConflictingWrite marks a key staged for both put and delete in one batch
var ErrConflictingWrite = errors.New("key staged for both put and delete")

type (
	// WriteBatch is a set of raw mutations applied atomically by an engine.
	// Both extract calls move the staged data out: a second call returns
	// nothing.
	WriteBatch interface {
		ExtractRawDataToInsert() []*KV
		ExtractRawKeysToRemove() [][]byte
	}

	// ReadBatch is a set of raw keys looked up together by an engine, which
	// hands back one value and one found flag per key in key order
	ReadBatch interface {
		RawKeys() [][]byte
		SubmitRawResult(values [][]byte, found []bool) error
	}

	// Batch stages raw puts and deletes in order
	Batch struct {
		queue  []*WriteInfo
		staged map[string]WriteType
	}
)

var _ WriteBatch = (*Batch)(nil)

// NewBatch returns an empty batch
func NewBatch() *Batch {
	return &Batch{
		staged: make(map[string]WriteType),
	}
}

// Put stages key = value. Staging a put for a key already staged for delete
// panics.
func (b *Batch) Put(key, value []byte) {
	b.stage(NewWriteInfo(Put, key, value))
}

// Delete stages removal of key. Staging a delete for a key already staged
// for put panics.
func (b *Batch) Delete(key []byte) {
	b.stage(NewWriteInfo(Delete, key, nil))
}

func (b *Batch) stage(wi *WriteInfo) {
	k := string(wi.key)
	if wt, ok := b.staged[k]; ok && wt != wi.writeType {
		panic(errors.Wrap(ErrConflictingWrite, fmt.Sprintf("%s of key %x", wi.writeType, wi.key)))
	}
	b.staged[k] = wi.writeType
	b.queue = append(b.queue, wi)
}

// Size returns the number of staged writes
func (b *Batch) Size() int {
	return len(b.queue)
}

// Entry returns the i-th staged write
func (b *Batch) Entry(i int) (*WriteInfo, error) {
	if i < 0 || i >= len(b.queue) {
		return nil, errors.Errorf("index %d out of range [0, %d)", i, len(b.queue))
	}
	return b.queue[i], nil
}

// ExtractRawDataToInsert moves the staged puts out of the batch in staging order
func (b *Batch) ExtractRawDataToInsert() []*KV {
	var (
		kvs  []*KV
		rest = b.queue[:0]
	)
	for _, wi := range b.queue {
		if wi.writeType == Put {
			kvs = append(kvs, &KV{Key: wi.key, Value: wi.value})
			continue
		}
		rest = append(rest, wi)
	}
	b.queue = rest
	return kvs
}

// ExtractRawKeysToRemove moves the staged deletes out of the batch in staging order
func (b *Batch) ExtractRawKeysToRemove() [][]byte {
	var (
		keys [][]byte
		rest = b.queue[:0]
	)
	for _, wi := range b.queue {
		if wi.writeType == Delete {
			keys = append(keys, wi.key)
			continue
		}
		rest = append(rest, wi)
	}
	b.queue = rest
	return keys
}
