// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package db provides the storage engines of the chain database. Every engine
// implements DataBase: an ordered key-value store that applies a write batch
// atomically and answers a read batch in one call.
package db

import (
	"context"
	"os"
	"syscall"

	"github.com/pkg/errors"

	"github.com/iotexproject/iotex-chaindb/db/batch"
	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
	"github.com/iotexproject/iotex-chaindb/pkg/util/byteutil"
)

var (
	// ErrNotInitialized indicates an operation on a database that is not started
	ErrNotInitialized = errors.New("database is not initialized")
	// ErrAlreadyInitialized indicates a start or destroy of a started database
	ErrAlreadyInitialized = errors.New("database is already initialized")
	// ErrIO indicates a filesystem failure
	ErrIO = errors.New("DB I/O operation error")
	// ErrInternal indicates an engine failure or a misuse of the engine
	ErrInternal = errors.New("DB internal error")
	// ErrStopIteration stops ForEach and Range early without error
	ErrStopIteration = errors.New("stop iteration")
)

type (
	// DataBase is the storage engine interface of the chain database
	DataBase interface {
		lifecycle.StartStopper
		// Destroy removes the on-disk data of a stopped database
		Destroy() error
		// Recreate drops all data and starts again with an empty store
		Recreate(context.Context) error
		// Optimize compacts the full key range, opening a private handle if
		// the database is stopped. A stopped database with no data on disk
		// fails with ErrIO
		Optimize(context.Context) error
		// Write applies all puts then all deletes of wb atomically
		Write(wb batch.WriteBatch) error
		// Read looks up the keys of rb without snapshot isolation
		Read(rb batch.ReadBatch) error
		// ReadThreadSafe looks up the keys of rb from a point-in-time snapshot
		ReadThreadSafe(rb batch.ReadBatch) error
		// ForEach visits every key with the prefix in key order
		ForEach(prefix []byte, fn func(k, v []byte) error) error
		// Range visits every key in [start, limit) in key order, nil limit
		// meaning no upper bound
		Range(start, limit []byte, fn func(k, v []byte) error) error
		// Config returns the config the database was built with
		Config() Config
	}

	// getter returns a caller-owned copy of the value of key, or found = false
	getter func(key []byte) (value []byte, found bool, err error)
)

// recreate stops d if needed, destroys its data and starts it again
func recreate(ctx context.Context, d interface {
	DataBase
	IsReady() bool
}) error {
	if d.IsReady() {
		if err := d.Stop(ctx); err != nil {
			return err
		}
	}
	if err := d.Destroy(); err != nil {
		return err
	}
	return d.Start(ctx)
}

// readKeys resolves the keys of rb through get and submits the result
func readKeys(rb batch.ReadBatch, get getter) error {
	keys := rb.RawKeys()
	if len(keys) == 0 {
		return errors.Wrap(ErrInternal, "empty read batch")
	}
	values := make([][]byte, len(keys))
	found := make([]bool, len(keys))
	for i, k := range keys {
		v, ok, err := get(k)
		if err != nil {
			return errors.Wrapf(ErrInternal, "failed to read key %x: %v", k, err)
		}
		if ok {
			values[i] = v
			found[i] = true
		}
	}
	return rb.SubmitRawResult(values, found)
}

// ioOrInternal classifies an engine open failure
func ioOrInternal(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) || errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EACCES) {
		return errors.Wrap(ErrIO, err.Error())
	}
	return errors.Wrap(ErrInternal, err.Error())
}

// visit hands a copy of the pair to fn and reports whether to continue
func visit(fn func(k, v []byte) error, k, v []byte) (bool, error) {
	if err := fn(byteutil.CopyBytes(k), byteutil.CopyBytes(v)); err != nil {
		if errors.Cause(err) == ErrStopIteration {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
