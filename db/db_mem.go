// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/db/batch"
	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
	"github.com/iotexproject/iotex-chaindb/pkg/util/byteutil"
)

const (
	_memDBName     = "MemDB"
	_memDBCapacity = 4 << 20
)

type (
	// MemDB is an ordered in-memory DataBase for tests and tooling. Data
	// survives Stop and Start, Destroy drops it.
	MemDB struct {
		lifecycle.Readiness
		mutex  sync.RWMutex
		db     *memdb.DB
		config Config
		// failAfter > 0 makes the next Write fail after that many mutations
		failAfter int
	}

	undoEntry struct {
		key     []byte
		value   []byte
		existed bool
	}
)

var _ DataBase = (*MemDB)(nil)

// NewMemDB creates a new in-memory DB
func NewMemDB(cfg Config) *MemDB {
	return &MemDB{
		config: cfg,
	}
}

// Start makes the DB available
func (m *MemDB) Start(_ context.Context) (err error) {
	defer func() { observeOp(_memDBName, "start", err) }()
	if m.IsReady() {
		return ErrAlreadyInitialized
	}
	m.mutex.Lock()
	if m.db == nil {
		m.db = memdb.New(comparer.DefaultComparer, _memDBCapacity)
	}
	m.mutex.Unlock()
	return m.TurnOn()
}

// Stop makes the DB unavailable, the content is kept
func (m *MemDB) Stop(_ context.Context) (err error) {
	defer func() { observeOp(_memDBName, "stop", err) }()
	if err := m.TurnOff(); err != nil {
		return ErrNotInitialized
	}
	return nil
}

// Destroy drops the content
func (m *MemDB) Destroy() error {
	if m.IsReady() {
		return ErrAlreadyInitialized
	}
	m.mutex.Lock()
	m.db = nil
	m.mutex.Unlock()
	return nil
}

// Recreate drops the content and starts again
func (m *MemDB) Recreate(ctx context.Context) error {
	return recreate(ctx, m)
}

// Optimize has nothing to compact
func (m *MemDB) Optimize(_ context.Context) error {
	log.L().Debug("Nothing to optimize in memory.", zap.String("engine", _memDBName))
	return nil
}

// Write applies the batch under the write lock, undoing the applied
// mutations if any of them fails
func (m *MemDB) Write(wb batch.WriteBatch) (err error) {
	defer func() { observeOp(_memDBName, "write", err) }()
	if !m.IsReady() {
		return ErrNotInitialized
	}
	puts := wb.ExtractRawDataToInsert()
	deletes := wb.ExtractRawKeysToRemove()
	observeBatch(_memDBName, "write", len(puts)+len(deletes))

	m.mutex.Lock()
	defer m.mutex.Unlock()
	undo := make([]undoEntry, 0, len(puts)+len(deletes))
	apply := func(key, value []byte, del bool) error {
		if m.failAfter > 0 && len(undo) == m.failAfter {
			m.failAfter = 0
			return errors.New("injected failure")
		}
		prev, err := m.db.Get(key)
		entry := undoEntry{key: key}
		if err == nil {
			entry.value = byteutil.CopyBytes(prev)
			entry.existed = true
		}
		undo = append(undo, entry)
		if del {
			if !entry.existed {
				return nil
			}
			return m.db.Delete(key)
		}
		return m.db.Put(key, value)
	}
	for _, kv := range puts {
		if err = apply(kv.Key, kv.Value, false); err != nil {
			break
		}
	}
	if err == nil {
		for _, k := range deletes {
			if err = apply(k, nil, true); err != nil {
				break
			}
		}
	}
	if err != nil {
		for i := len(undo) - 1; i >= 0; i-- {
			if undo[i].existed {
				m.db.Put(undo[i].key, undo[i].value)
			} else {
				m.db.Delete(undo[i].key)
			}
		}
		return errors.Wrap(ErrInternal, err.Error())
	}
	return nil
}

// Read looks up the keys of rb
func (m *MemDB) Read(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_memDBName, "read", err) }()
	return m.read(rb)
}

// ReadThreadSafe looks up the keys of rb under the read lock, which excludes
// writers for the whole batch
func (m *MemDB) ReadThreadSafe(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_memDBName, "readThreadSafe", err) }()
	return m.read(rb)
}

func (m *MemDB) read(rb batch.ReadBatch) error {
	if !m.IsReady() {
		return ErrNotInitialized
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	observeBatch(_memDBName, "read", len(rb.RawKeys()))
	return readKeys(rb, func(key []byte) ([]byte, bool, error) {
		v, err := m.db.Get(key)
		if err != nil {
			if errors.Is(err, memdb.ErrNotFound) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return byteutil.CopyBytes(v), true, nil
	})
}

// ForEach visits every key with prefix
func (m *MemDB) ForEach(prefix []byte, fn func(k, v []byte) error) error {
	return m.Range(prefix, byteutil.PrefixUpperBound(prefix), fn)
}

// Range visits every key in [start, limit)
func (m *MemDB) Range(start, limit []byte, fn func(k, v []byte) error) error {
	if !m.IsReady() {
		return ErrNotInitialized
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	iter := m.db.NewIterator(&util.Range{Start: start, Limit: limit})
	defer iter.Release()
	for iter.Next() {
		cont, err := visit(fn, iter.Key(), iter.Value())
		if err != nil {
			return err
		}
		if !cont {
			break
		}
	}
	return nil
}

// Config returns the config
func (m *MemDB) Config() Config {
	return m.config
}

// failNextWriteAfter injects a failure into the next Write after n mutations
func (m *MemDB) failNextWriteAfter(n int) {
	m.mutex.Lock()
	m.failAfter = n
	m.mutex.Unlock()
}
