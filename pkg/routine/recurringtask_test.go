// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package routine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/iotexproject/iotex-chaindb/pkg/routine"
)

func TestRecurringTask(t *testing.T) {
	r := require.New(t)

	var count atomic.Uint32
	ctx := context.Background()
	task := routine.NewRecurringTask(func() { count.Inc() }, 5*time.Millisecond)
	r.NoError(task.Start(ctx))
	r.Eventually(func() bool { return count.Load() >= 3 }, time.Second, time.Millisecond)
	r.NoError(task.Stop(ctx))
	stopped := count.Load()
	time.Sleep(20 * time.Millisecond)
	r.Equal(stopped, count.Load())

	// stopping twice is harmless
	r.NoError(task.Stop(ctx))
}
