// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/db/batch"
	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
	"github.com/iotexproject/iotex-chaindb/pkg/routine"
	"github.com/iotexproject/iotex-chaindb/pkg/util/byteutil"
	"github.com/iotexproject/iotex-chaindb/pkg/util/fileutil"
)

const (
	_pebbleDBName = "PebbleDB"
	_numLevels    = 7
)

var (
	// keys start with a one-byte tag below 0xff
	_compactStart = []byte{0x00}
	_compactEnd   = []byte{0xff}

	_optimizeReportInterval = time.Minute
)

// PebbleDB is DataBase implementation based on pebble DB
type PebbleDB struct {
	lifecycle.Readiness
	mutex  sync.Mutex
	db     *pebble.DB
	path   string
	config Config
}

var _ DataBase = (*PebbleDB)(nil)

// NewPebbleDB creates a new PebbleDB instance
func NewPebbleDB(cfg Config) *PebbleDB {
	return &PebbleDB{
		db:     nil,
		path:   filepath.Join(cfg.DbPath, _pebbleDBName),
		config: cfg,
	}
}

func (b *PebbleDB) options() *pebble.Options {
	cfg := b.config
	opts := &pebble.Options{
		FormatMajorVersion:       pebble.FormatPrePebblev1MarkedCompacted,
		MaxOpenFiles:             cfg.MaxOpenFiles,
		MemTableSize:             cfg.WriteBufferSize(),
		MaxConcurrentCompactions: func() int { return max(cfg.BackgroundThreads, 1) },
		ReadOnly:                 cfg.ReadOnly,
		Logger:                   log.Logger("pebble").Sugar(),
		Levels:                   make([]pebble.LevelOptions, _numLevels),
	}
	targetFileSize := int64(cfg.MaxFileSize())
	for i := range opts.Levels {
		l := &opts.Levels[i]
		l.BlockSize = 32 << 10
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
		l.TargetFileSize = targetFileSize
		// the upper levels churn too fast to be worth compressing
		if !cfg.Compression || i < 2 {
			l.Compression = pebble.NoCompression
		} else {
			l.Compression = pebble.ZstdCompression
		}
		targetFileSize *= 2
	}
	return opts
}

// open opens the data directory, creating it unless mustExist is set
func (b *PebbleDB) open(mustExist bool) (*pebble.DB, error) {
	if mustExist && !fileutil.FileExists(b.path) {
		return nil, errors.Wrapf(ErrIO, "%s does not exist", b.path)
	}
	if !mustExist && !b.config.ReadOnly {
		if err := os.MkdirAll(b.path, 0700); err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
	}
	opts := b.options()
	opts.ErrorIfNotExists = mustExist
	if size := b.config.ReadCacheSize(); size > 0 {
		cache := pebble.NewCache(int64(size))
		defer cache.Unref()
		opts.Cache = cache
	}
	db, err := pebble.Open(b.path, opts)
	if err != nil {
		return nil, ioOrInternal(err)
	}
	return db, nil
}

// Start opens the DB (creates new files if not existing yet)
func (b *PebbleDB) Start(_ context.Context) (err error) {
	defer func() { observeOp(_pebbleDBName, "start", err) }()
	if b.IsReady() {
		log.L().Error("Database is already initialized.", zap.String("path", b.path))
		return ErrAlreadyInitialized
	}
	log.L().Info("Opening database.", zap.String("engine", _pebbleDBName), zap.String("path", b.path))
	db, err := b.open(false)
	if err != nil {
		log.L().Error("Failed to open database.", zap.String("path", b.path), zap.Error(err))
		return err
	}
	b.db = db
	return b.TurnOn()
}

// Stop flushes the memtable, syncs and closes the DB
func (b *PebbleDB) Stop(_ context.Context) (err error) {
	defer func() { observeOp(_pebbleDBName, "stop", err) }()
	if err := b.TurnOff(); err != nil {
		log.L().Error("Database is not initialized.", zap.String("path", b.path))
		return ErrNotInitialized
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	log.L().Info("Closing database.", zap.String("engine", _pebbleDBName), zap.String("path", b.path))
	var flushErr error
	if !b.config.ReadOnly {
		if flushErr = b.db.Flush(); flushErr != nil {
			log.L().Error("Failed to flush database.", zap.Error(flushErr))
		}
	}
	closeErr := b.db.Close()
	b.db = nil
	if flushErr != nil {
		return errors.Wrap(ErrIO, flushErr.Error())
	}
	if closeErr != nil {
		return errors.Wrap(ErrIO, closeErr.Error())
	}
	return nil
}

// Destroy removes the data directory
func (b *PebbleDB) Destroy() error {
	if b.IsReady() {
		return ErrAlreadyInitialized
	}
	log.L().Warn("Destroying database.", zap.String("path", b.path))
	if err := os.RemoveAll(b.path); err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	return nil
}

// Recreate destroys the data and starts over with an empty DB
func (b *PebbleDB) Recreate(ctx context.Context) error {
	return recreate(ctx, b)
}

// Write commits a write batch in one pebble batch
func (b *PebbleDB) Write(wb batch.WriteBatch) (err error) {
	defer func() { observeOp(_pebbleDBName, "write", err) }()
	if !b.IsReady() {
		return ErrNotInitialized
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.db == nil {
		return ErrNotInitialized
	}

	puts := wb.ExtractRawDataToInsert()
	deletes := wb.ExtractRawKeysToRemove()
	observeBatch(_pebbleDBName, "write", len(puts)+len(deletes))
	pb := b.db.NewBatch()
	defer pb.Close()
	for _, kv := range puts {
		if err := pb.Set(kv.Key, kv.Value, nil); err != nil {
			return errors.Wrap(ErrInternal, err.Error())
		}
	}
	for _, k := range deletes {
		if err := pb.Delete(k, nil); err != nil {
			return errors.Wrap(ErrInternal, err.Error())
		}
	}
	opts := pebble.NoSync
	if b.config.SyncWrites {
		opts = pebble.Sync
	}
	if err := pb.Commit(opts); err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			log.L().Error("No space left to commit batch.", zap.String("path", b.path), zap.Error(err))
		}
		return errors.Wrap(ErrInternal, err.Error())
	}
	return nil
}

// Read looks up the keys of rb
func (b *PebbleDB) Read(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_pebbleDBName, "read", err) }()
	if !b.IsReady() {
		return ErrNotInitialized
	}
	observeBatch(_pebbleDBName, "read", len(rb.RawKeys()))
	return readKeys(rb, pebbleGetter(b.db.Get))
}

// ReadThreadSafe looks up the keys of rb from a snapshot
func (b *PebbleDB) ReadThreadSafe(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_pebbleDBName, "readThreadSafe", err) }()
	if !b.IsReady() {
		return ErrNotInitialized
	}
	snap := b.db.NewSnapshot()
	defer snap.Close()
	observeBatch(_pebbleDBName, "read", len(rb.RawKeys()))
	return readKeys(rb, pebbleGetter(snap.Get))
}

// ForEach visits every key with prefix
func (b *PebbleDB) ForEach(prefix []byte, fn func(k, v []byte) error) error {
	return b.Range(prefix, byteutil.PrefixUpperBound(prefix), fn)
}

// Range visits every key in [start, limit)
func (b *PebbleDB) Range(start, limit []byte, fn func(k, v []byte) error) error {
	if !b.IsReady() {
		return ErrNotInitialized
	}
	iter, err := b.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: limit,
	})
	if err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	for iter.First(); iter.Valid(); iter.Next() {
		cont, err := visit(fn, iter.Key(), iter.Value())
		if err != nil {
			iter.Close()
			return err
		}
		if !cont {
			break
		}
	}
	if err := iter.Error(); err != nil {
		iter.Close()
		return errors.Wrap(ErrInternal, err.Error())
	}
	return iter.Close()
}

// Optimize compacts the whole key range
func (b *PebbleDB) Optimize(ctx context.Context) (err error) {
	defer func() { observeOp(_pebbleDBName, "optimize", err) }()
	b.mutex.Lock()
	defer b.mutex.Unlock()
	db := b.db
	if !b.IsReady() {
		if db, err = b.open(true); err != nil {
			return err
		}
		defer db.Close()
	}
	log.L().Info("Preparing to optimize DB for reading... This may take a long time.", zap.String("path", b.path))
	reporter := routine.NewRecurringTask(func() {
		log.L().Info("Compaction in progress.", zap.String("metrics", db.Metrics().String()))
	}, _optimizeReportInterval)
	if err := reporter.Start(ctx); err != nil {
		return err
	}
	defer reporter.Stop(ctx)
	if err := db.Compact(_compactStart, _compactEnd, true); err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	log.L().Info("Finished optimizing DB.", zap.String("path", b.path))
	return nil
}

// Config returns the config
func (b *PebbleDB) Config() Config {
	return b.config
}

func pebbleGetter(get func([]byte) ([]byte, io.Closer, error)) getter {
	return func(key []byte) ([]byte, bool, error) {
		v, closer, err := get(key)
		if err != nil {
			if errors.Is(err, pebble.ErrNotFound) {
				return nil, false, nil
			}
			return nil, false, err
		}
		val := byteutil.CopyBytes(v)
		return val, true, closer.Close()
	}
}
