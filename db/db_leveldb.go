// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/db/batch"
	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
	"github.com/iotexproject/iotex-chaindb/pkg/routine"
	"github.com/iotexproject/iotex-chaindb/pkg/util/byteutil"
	"github.com/iotexproject/iotex-chaindb/pkg/util/fileutil"
)

const _levelDBName = "LevelDB"

// LevelDB is DataBase implementation based on goleveldb
type LevelDB struct {
	lifecycle.Readiness
	mutex  sync.Mutex
	db     *leveldb.DB
	path   string
	config Config
}

var _ DataBase = (*LevelDB)(nil)

// NewLevelDB creates a new LevelDB instance
func NewLevelDB(cfg Config) *LevelDB {
	return &LevelDB{
		path:   filepath.Join(cfg.DbPath, _levelDBName),
		config: cfg,
	}
}

func (l *LevelDB) options() *opt.Options {
	cfg := l.config
	compression := opt.NoCompression
	if cfg.Compression {
		compression = opt.SnappyCompression
	}
	return &opt.Options{
		BlockCacheCapacity:     int(cfg.ReadCacheSize()),
		WriteBuffer:            int(cfg.WriteBufferSize()),
		OpenFilesCacheCapacity: cfg.MaxOpenFiles,
		CompactionTableSize:    int(cfg.MaxFileSize()),
		Compression:            compression,
		Filter:                 filter.NewBloomFilter(10),
		ReadOnly:               cfg.ReadOnly,
		NoSync:                 !cfg.SyncWrites,
	}
}

// open opens the data directory, creating it unless mustExist is set
func (l *LevelDB) open(mustExist bool) (*leveldb.DB, error) {
	if mustExist && !fileutil.FileExists(l.path) {
		return nil, errors.Wrapf(ErrIO, "%s does not exist", l.path)
	}
	if !mustExist && !l.config.ReadOnly {
		if err := os.MkdirAll(l.path, 0700); err != nil {
			return nil, errors.Wrap(ErrIO, err.Error())
		}
	}
	opts := l.options()
	opts.ErrorIfMissing = mustExist
	db, err := leveldb.OpenFile(l.path, opts)
	if err != nil {
		if lerrors.IsCorrupted(err) {
			return nil, errors.Wrap(ErrInternal, err.Error())
		}
		return nil, ioOrInternal(err)
	}
	return db, nil
}

// Start opens the DB (creates new files if not existing yet)
func (l *LevelDB) Start(_ context.Context) (err error) {
	defer func() { observeOp(_levelDBName, "start", err) }()
	if l.IsReady() {
		log.L().Error("Database is already initialized.", zap.String("path", l.path))
		return ErrAlreadyInitialized
	}
	log.L().Info("Opening database.", zap.String("engine", _levelDBName), zap.String("path", l.path))
	db, err := l.open(false)
	if err != nil {
		log.L().Error("Failed to open database.", zap.String("path", l.path), zap.Error(err))
		return err
	}
	l.db = db
	return l.TurnOn()
}

// Stop closes the DB, the journal is synced on close
func (l *LevelDB) Stop(_ context.Context) (err error) {
	defer func() { observeOp(_levelDBName, "stop", err) }()
	if err := l.TurnOff(); err != nil {
		log.L().Error("Database is not initialized.", zap.String("path", l.path))
		return ErrNotInitialized
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	log.L().Info("Closing database.", zap.String("engine", _levelDBName), zap.String("path", l.path))
	err = l.db.Close()
	l.db = nil
	if err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	return nil
}

// Destroy removes the data directory
func (l *LevelDB) Destroy() error {
	if l.IsReady() {
		return ErrAlreadyInitialized
	}
	log.L().Warn("Destroying database.", zap.String("path", l.path))
	if err := os.RemoveAll(l.path); err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	return nil
}

// Recreate destroys the data and starts over with an empty DB
func (l *LevelDB) Recreate(ctx context.Context) error {
	return recreate(ctx, l)
}

// Write commits a write batch in one leveldb batch
func (l *LevelDB) Write(wb batch.WriteBatch) (err error) {
	defer func() { observeOp(_levelDBName, "write", err) }()
	if !l.IsReady() {
		return ErrNotInitialized
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()
	if l.db == nil {
		return ErrNotInitialized
	}

	puts := wb.ExtractRawDataToInsert()
	deletes := wb.ExtractRawKeysToRemove()
	observeBatch(_levelDBName, "write", len(puts)+len(deletes))
	lb := new(leveldb.Batch)
	for _, kv := range puts {
		lb.Put(kv.Key, kv.Value)
	}
	for _, k := range deletes {
		lb.Delete(k)
	}
	if err := l.db.Write(lb, &opt.WriteOptions{Sync: l.config.SyncWrites}); err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	return nil
}

// Read looks up the keys of rb
func (l *LevelDB) Read(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_levelDBName, "read", err) }()
	if !l.IsReady() {
		return ErrNotInitialized
	}
	observeBatch(_levelDBName, "read", len(rb.RawKeys()))
	return readKeys(rb, levelGetter(l.db.Get))
}

// ReadThreadSafe looks up the keys of rb from a snapshot
func (l *LevelDB) ReadThreadSafe(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_levelDBName, "readThreadSafe", err) }()
	if !l.IsReady() {
		return ErrNotInitialized
	}
	snap, err := l.db.GetSnapshot()
	if err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	defer snap.Release()
	observeBatch(_levelDBName, "read", len(rb.RawKeys()))
	return readKeys(rb, levelGetter(snap.Get))
}

// ForEach visits every key with prefix
func (l *LevelDB) ForEach(prefix []byte, fn func(k, v []byte) error) error {
	return l.Range(prefix, byteutil.PrefixUpperBound(prefix), fn)
}

// Range visits every key in [start, limit)
func (l *LevelDB) Range(start, limit []byte, fn func(k, v []byte) error) error {
	if !l.IsReady() {
		return ErrNotInitialized
	}
	iter := l.db.NewIterator(&util.Range{Start: start, Limit: limit}, nil)
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
	if err := iter.Error(); err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	return nil
}

// Optimize compacts the whole key range
func (l *LevelDB) Optimize(ctx context.Context) (err error) {
	defer func() { observeOp(_levelDBName, "optimize", err) }()
	l.mutex.Lock()
	defer l.mutex.Unlock()
	db := l.db
	if !l.IsReady() {
		if db, err = l.open(true); err != nil {
			return err
		}
		defer db.Close()
	}
	log.L().Info("Preparing to optimize DB for reading... This may take a long time.", zap.String("path", l.path))
	reporter := routine.NewRecurringTask(func() {
		stats, err := db.GetProperty("leveldb.stats")
		if err != nil {
			log.L().Warn("Failed to get compaction stats.", zap.Error(err))
			return
		}
		log.L().Info("Compaction in progress.", zap.String("stats", stats))
	}, _optimizeReportInterval)
	if err := reporter.Start(ctx); err != nil {
		return err
	}
	defer reporter.Stop(ctx)
	if err := db.CompactRange(util.Range{}); err != nil {
		return errors.Wrap(ErrInternal, err.Error())
	}
	log.L().Info("Finished optimizing DB.", zap.String("path", l.path))
	return nil
}

// Config returns the config
func (l *LevelDB) Config() Config {
	return l.config
}

func levelGetter(get func([]byte, *opt.ReadOptions) ([]byte, error)) getter {
	return func(key []byte) ([]byte, bool, error) {
		v, err := get(key, nil)
		if err != nil {
			if errors.Is(err, leveldb.ErrNotFound) {
				return nil, false, nil
			}
			return nil, false, err
		}
		return v, true, nil
	}
}
