// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package chaindb

import (
	"time"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/iotexproject/iotex-chaindb/chaindb/keyformat"
	"github.com/iotexproject/iotex-chaindb/db"
	"github.com/iotexproject/iotex-chaindb/db/batch"
	"github.com/iotexproject/iotex-chaindb/pkg/log"
)

const (
	// DefaultCopyBatchSize is the number of records written per batch by Copy
	DefaultCopyBatchSize = 1000

	_copyRetries       = 3
	_copyRetryInterval = 100 * time.Millisecond
)

// Copy copies every record family from src to dst, one family at a time and
// batchSize records per write. done is called after each family with the
// number of records copied for it. Copy returns the total record count.
func Copy(src, dst db.DataBase, batchSize int, done func(tag keyformat.Tag, n uint64)) (uint64, error) {
	if batchSize <= 0 {
		batchSize = DefaultCopyBatchSize
	}
	var (
		total   uint64
		pending = make([]batch.KV, 0, batchSize)
	)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		// a batch is consumed by the write, so each attempt stages a fresh one
		if err := backoff.Retry(func() error {
			b := batch.NewBatch()
			for i := range pending {
				b.Put(pending[i].Key, pending[i].Value)
			}
			return dst.Write(b)
		}, backoff.WithMaxRetries(backoff.NewConstantBackOff(_copyRetryInterval), _copyRetries)); err != nil {
			return errors.Wrap(err, "failed to write copied records")
		}
		pending = pending[:0]
		return nil
	}
	for _, tag := range keyformat.Tags() {
		var n uint64
		if err := src.ForEach([]byte{byte(tag)}, func(k, v []byte) error {
			pending = append(pending, batch.KV{Key: k, Value: v})
			n++
			if len(pending) < batchSize {
				return nil
			}
			return flush()
		}); err != nil {
			return total, errors.Wrapf(err, "failed to copy %s", tag)
		}
		if err := flush(); err != nil {
			return total, errors.Wrapf(err, "failed to copy %s", tag)
		}
		total += n
		log.L().Debug("Copied record family.", zap.Stringer("tag", tag), zap.Uint64("records", n))
		if done != nil {
			done(tag, n)
		}
	}
	return total, nil
}
