// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package routine

import (
	"context"
	"sync"
	"time"

	"github.com/iotexproject/iotex-chaindb/pkg/lifecycle"
)

var _ lifecycle.StartStopper = (*RecurringTask)(nil)

// Task is the callback run by a routine
type Task func()

// RecurringTask runs a task on every tick of an interval until stopped
type RecurringTask struct {
	t        Task
	interval time.Duration
	ticker   *time.Ticker
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewRecurringTask creates an instance of RecurringTask
func NewRecurringTask(t Task, i time.Duration) *RecurringTask {
	return &RecurringTask{
		t:        t,
		interval: i,
		done:     make(chan struct{}),
	}
}

// Start starts the timer
func (t *RecurringTask) Start(_ context.Context) error {
	t.ticker = time.NewTicker(t.interval)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		for {
			select {
			case <-t.done:
				return
			case <-t.ticker.C:
				t.t()
			}
		}
	}()
	return nil
}

// Stop stops the timer and waits for a running task to return
func (t *RecurringTask) Stop(_ context.Context) error {
	t.once.Do(func() {
		if t.ticker != nil {
			t.ticker.Stop()
		}
		close(t.done)
	})
	t.wg.Wait()
	return nil
}
