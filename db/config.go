// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

const (
	// DBPebble is the pebble LSM engine
	DBPebble = "pebble"
	// DBLevel is the goleveldb LSM engine
	DBLevel = "leveldb"
	// DBBolt is the bbolt B-tree engine
	DBBolt = "bolt"
	// DBMemory is the in-memory engine
	DBMemory = "memory"
)

// Config is the config for database
type Config struct {
	DbPath string `yaml:"dbPath"`
	// DBType selects the engine, one of pebble, leveldb, bolt and memory
	DBType string `yaml:"dbType"`
	// BackgroundThreads is the number of concurrent compactions
	BackgroundThreads int `yaml:"backgroundThreads"`
	// MaxOpenFiles caps the table files kept open
	MaxOpenFiles int `yaml:"maxOpenFiles"`
	// WriteBufferSizeMB is the memtable budget
	WriteBufferSizeMB uint64 `yaml:"writeBufferSizeMB"`
	// ReadCacheSizeMB is the block cache size
	ReadCacheSizeMB uint64 `yaml:"readCacheSizeMB"`
	// MaxFileSizeMB is the target size of a table file
	MaxFileSizeMB uint64 `yaml:"maxFileSizeMB"`
	// Compression enables block compression
	Compression bool `yaml:"compression"`
	// SyncWrites makes every batch commit durable before returning
	SyncWrites bool `yaml:"syncWrites"`
	// NumRetries is the number of retries of a failed bolt transaction
	NumRetries uint8 `yaml:"numRetries"`
	// ReadOnly is set db to be opened in read only mode
	ReadOnly bool `yaml:"readOnly"`
}

// WriteBufferSize returns the configured WriteBufferSizeMB in bytes
func (cfg Config) WriteBufferSize() uint64 {
	return cfg.WriteBufferSizeMB * 1024 * 1024
}

// ReadCacheSize returns the configured ReadCacheSizeMB in bytes
func (cfg Config) ReadCacheSize() uint64 {
	return cfg.ReadCacheSizeMB * 1024 * 1024
}

// MaxFileSize returns the configured MaxFileSizeMB in bytes
func (cfg Config) MaxFileSize() uint64 {
	return cfg.MaxFileSizeMB * 1024 * 1024
}

var (
	// DefaultConfig is the default config, backed by pebble
	DefaultConfig = Config{
		DBType:            DBPebble,
		BackgroundThreads: 2,
		MaxOpenFiles:      500,
		WriteBufferSizeMB: 256,
		ReadCacheSizeMB:   128,
		MaxFileSizeMB:     64,
		Compression:       true,
		SyncWrites:        true,
		NumRetries:        3,
	}

	// DefaultLevelDBConfig is the default config of the goleveldb engine
	DefaultLevelDBConfig = Config{
		DBType:            DBLevel,
		BackgroundThreads: 2,
		MaxOpenFiles:      128,
		WriteBufferSizeMB: 64,
		ReadCacheSizeMB:   64,
		MaxFileSizeMB:     16,
		Compression:       true,
		SyncWrites:        true,
		NumRetries:        3,
	}
)
