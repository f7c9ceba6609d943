// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"path/filepath"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyDBPath is the error when db path is empty
	ErrEmptyDBPath = errors.New("empty db path")
	// ErrUnsupportedDBType is the error when db type is unknown
	ErrUnsupportedDBType = errors.New("unsupported db type")
)

// CreateDataBase creates the engine selected by cfg.DBType
func CreateDataBase(cfg Config) (DataBase, error) {
	if cfg.DBType != DBMemory && len(cfg.DbPath) == 0 {
		return nil, ErrEmptyDBPath
	}
	switch cfg.DBType {
	case DBPebble:
		return NewPebbleDB(cfg), nil
	case DBLevel:
		return NewLevelDB(cfg), nil
	case DBBolt:
		return NewBoltDB(cfg), nil
	case DBMemory:
		return NewMemDB(cfg), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedDBType, "%q", cfg.DBType)
	}
}

// DataDir returns the directory holding the data of the engine selected by
// cfg, or "" for the memory engine
func DataDir(cfg Config) string {
	switch cfg.DBType {
	case DBPebble:
		return filepath.Join(cfg.DbPath, _pebbleDBName)
	case DBLevel:
		return filepath.Join(cfg.DbPath, _levelDBName)
	case DBBolt:
		return filepath.Join(cfg.DbPath, _boltDBName)
	default:
		return ""
	}
}
