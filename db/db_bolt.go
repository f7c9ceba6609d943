// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/db/batch"
	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
	"github.com/iotexproject/iotex-chaindb/pkg/util/byteutil"
	"github.com/iotexproject/iotex-chaindb/pkg/util/fileutil"
)

const (
	_boltDBName       = "BoltDB"
	_boltFileName     = "chain.db"
	fileMode          = 0600
	_compactTxMaxSize = 64 << 20
)

var _boltBucket = []byte("chain")

// BoltDB is DataBase implementation based on bolt DB
type BoltDB struct {
	lifecycle.Readiness
	// mutex serializes writes, handleMu guards swapping the handle
	mutex    sync.Mutex
	handleMu sync.RWMutex
	db       *bolt.DB
	path     string
	config   Config
}

var _ DataBase = (*BoltDB)(nil)

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(cfg Config) *BoltDB {
	return &BoltDB{
		path:   filepath.Join(cfg.DbPath, _boltDBName),
		config: cfg,
	}
}

func (b *BoltDB) file() string {
	return filepath.Join(b.path, _boltFileName)
}

func (b *BoltDB) openFile(path string, readOnly bool) (*bolt.DB, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{
		Timeout:         time.Second,
		NoSync:          !b.config.SyncWrites,
		ReadOnly:        readOnly,
		FreelistType:    bolt.FreelistMapType,
		InitialMmapSize: int(b.config.WriteBufferSize()),
	})
	if err != nil {
		return nil, ioOrInternal(err)
	}
	if readOnly {
		return db, nil
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(_boltBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(ErrInternal, err.Error())
	}
	return db, nil
}

// Start opens the BoltDB (creates new file if not existing yet)
func (b *BoltDB) Start(_ context.Context) (err error) {
	defer func() { observeOp(_boltDBName, "start", err) }()
	if b.IsReady() {
		log.L().Error("Database is already initialized.", zap.String("path", b.path))
		return ErrAlreadyInitialized
	}
	log.L().Info("Opening database.", zap.String("engine", _boltDBName), zap.String("path", b.path))
	if !b.config.ReadOnly {
		if err := os.MkdirAll(b.path, 0700); err != nil {
			return errors.Wrap(ErrIO, err.Error())
		}
	}
	db, err := b.openFile(b.file(), b.config.ReadOnly)
	if err != nil {
		log.L().Error("Failed to open database.", zap.String("path", b.path), zap.Error(err))
		return err
	}
	b.handleMu.Lock()
	b.db = db
	b.handleMu.Unlock()
	return b.TurnOn()
}

// Stop syncs and closes the BoltDB
func (b *BoltDB) Stop(_ context.Context) (err error) {
	defer func() { observeOp(_boltDBName, "stop", err) }()
	if err := b.TurnOff(); err != nil {
		log.L().Error("Database is not initialized.", zap.String("path", b.path))
		return ErrNotInitialized
	}
	b.handleMu.Lock()
	defer b.handleMu.Unlock()
	log.L().Info("Closing database.", zap.String("engine", _boltDBName), zap.String("path", b.path))
	var syncErr error
	if !b.config.ReadOnly {
		if syncErr = b.db.Sync(); syncErr != nil {
			log.L().Error("Failed to sync database.", zap.Error(syncErr))
		}
	}
	closeErr := b.db.Close()
	b.db = nil
	if syncErr != nil {
		return errors.Wrap(ErrIO, syncErr.Error())
	}
	if closeErr != nil {
		return errors.Wrap(ErrIO, closeErr.Error())
	}
	return nil
}

// Destroy removes the data directory
func (b *BoltDB) Destroy() error {
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
func (b *BoltDB) Recreate(ctx context.Context) error {
	return recreate(ctx, b)
}

// Write commits a write batch in one bolt transaction
func (b *BoltDB) Write(wb batch.WriteBatch) (err error) {
	defer func() { observeOp(_boltDBName, "write", err) }()
	if !b.IsReady() {
		return ErrNotInitialized
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.handleMu.RLock()
	defer b.handleMu.RUnlock()
	if b.db == nil {
		return ErrNotInitialized
	}

	puts := wb.ExtractRawDataToInsert()
	deletes := wb.ExtractRawKeysToRemove()
	observeBatch(_boltDBName, "write", len(puts)+len(deletes))
	numRetries := max(b.config.NumRetries, 1)
	for c := uint8(0); c < numRetries; c++ {
		if err = b.db.Update(func(tx *bolt.Tx) error {
			bucket := tx.Bucket(_boltBucket)
			if bucket == nil {
				return errors.New("bucket does not exist")
			}
			for _, kv := range puts {
				if err := bucket.Put(kv.Key, kv.Value); err != nil {
					return errors.Wrapf(err, "failed to put key %x", kv.Key)
				}
			}
			for _, k := range deletes {
				if err := bucket.Delete(k); err != nil {
					return errors.Wrapf(err, "failed to delete key %x", k)
				}
			}
			return nil
		}); err == nil {
			break
		}
	}
	if err != nil {
		err = errors.Wrap(ErrInternal, err.Error())
	}
	return err
}

// Read looks up the keys of rb in a read transaction
func (b *BoltDB) Read(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_boltDBName, "read", err) }()
	return b.view(rb)
}

// ReadThreadSafe looks up the keys of rb; a bolt read transaction is
// already a consistent snapshot
func (b *BoltDB) ReadThreadSafe(rb batch.ReadBatch) (err error) {
	defer func() { observeOp(_boltDBName, "readThreadSafe", err) }()
	return b.view(rb)
}

func (b *BoltDB) view(rb batch.ReadBatch) error {
	if !b.IsReady() {
		return ErrNotInitialized
	}
	b.handleMu.RLock()
	defer b.handleMu.RUnlock()
	if b.db == nil {
		return ErrNotInitialized
	}
	observeBatch(_boltDBName, "read", len(rb.RawKeys()))
	return b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(_boltBucket)
		return readKeys(rb, func(key []byte) ([]byte, bool, error) {
			if bucket == nil {
				return nil, false, nil
			}
			v := bucket.Get(key)
			if v == nil {
				return nil, false, nil
			}
			return byteutil.CopyBytes(v), true, nil
		})
	})
}

// ForEach visits every key with prefix
func (b *BoltDB) ForEach(prefix []byte, fn func(k, v []byte) error) error {
	return b.Range(prefix, byteutil.PrefixUpperBound(prefix), fn)
}

// Range visits every key in [start, limit)
func (b *BoltDB) Range(start, limit []byte, fn func(k, v []byte) error) error {
	if !b.IsReady() {
		return ErrNotInitialized
	}
	b.handleMu.RLock()
	defer b.handleMu.RUnlock()
	if b.db == nil {
		return ErrNotInitialized
	}
	return b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(_boltBucket)
		if bucket == nil {
			return nil
		}
		c := bucket.Cursor()
		k, v := c.First()
		if start != nil {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if limit != nil && bytes.Compare(k, limit) >= 0 {
				break
			}
			cont, err := visit(fn, k, v)
			if err != nil {
				return err
			}
			if !cont {
				break
			}
		}
		return nil
	})
}

// Optimize rewrites the data file into a fresh compacted file
func (b *BoltDB) Optimize(_ context.Context) (err error) {
	defer func() { observeOp(_boltDBName, "optimize", err) }()
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.handleMu.Lock()
	defer b.handleMu.Unlock()

	file := b.file()
	if !fileutil.FileExists(file) {
		return errors.Wrapf(ErrIO, "%s does not exist", file)
	}
	open := b.db != nil
	src := b.db
	if !open {
		if src, err = b.openFile(file, true); err != nil {
			return err
		}
	}
	log.L().Info("Preparing to optimize DB for reading... This may take a long time.", zap.String("path", b.path))
	tmp := file + ".compact"
	if err := os.RemoveAll(tmp); err != nil {
		return errors.Wrap(ErrIO, err.Error())
	}
	dst, err := bolt.Open(tmp, fileMode, &bolt.Options{Timeout: time.Second, NoSync: true})
	if err != nil {
		err = ioOrInternal(err)
		if !open {
			src.Close()
		}
		return err
	}
	compactErr := bolt.Compact(dst, src, _compactTxMaxSize)
	if compactErr == nil {
		compactErr = dst.Sync()
	}
	if err := dst.Close(); err != nil && compactErr == nil {
		compactErr = err
	}
	if err := src.Close(); err != nil && compactErr == nil {
		compactErr = err
	}
	b.db = nil
	if compactErr == nil {
		if err := os.Rename(tmp, file); err != nil {
			compactErr = err
		}
	} else {
		os.Remove(tmp)
	}
	if open {
		db, err := b.openFile(file, b.config.ReadOnly)
		if err != nil {
			log.L().Error("Failed to reopen database after compaction.", zap.Error(err))
			b.TurnOff()
			return err
		}
		b.db = db
	}
	if compactErr != nil {
		return errors.Wrap(ErrInternal, compactErr.Error())
	}
	log.L().Info("Finished optimizing DB.", zap.String("path", b.path))
	return nil
}

// Config returns the config
func (b *BoltDB) Config() Config {
	return b.config
}

// writeForceFail applies wb and then fails, to test the transaction rolls back
func (b *BoltDB) writeForceFail(wb batch.WriteBatch) error {
	puts := wb.ExtractRawDataToInsert()
	deletes := wb.ExtractRawKeysToRemove()
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(_boltBucket)
		for _, kv := range puts {
			if err := bucket.Put(kv.Key, kv.Value); err != nil {
				return err
			}
		}
		for _, k := range deletes {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		return errors.Wrap(ErrIO, "force fail to test DB rollback")
	})
}
