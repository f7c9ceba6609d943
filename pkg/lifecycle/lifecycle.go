// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

// Package lifecycle provides start/stop plumbing shared by storage components.
package lifecycle

import (
	"context"
)

type (
	// Starter is a component that can be started
	Starter interface {
		Start(context.Context) error
	}

	// Stopper is a component that can be stopped
	Stopper interface {
		Stop(context.Context) error
	}

	// StartStopper is both a Starter and a Stopper
	StartStopper interface {
		Starter
		Stopper
	}
)

// Lifecycle starts registered models in order and stops them in reverse order
type Lifecycle struct {
	models []StartStopper
}

// Add registers a model
func (lc *Lifecycle) Add(m StartStopper) {
	lc.models = append(lc.models, m)
}

// AddModels registers models
func (lc *Lifecycle) AddModels(m ...StartStopper) {
	lc.models = append(lc.models, m...)
}

// OnStart starts all models, stopping at the first failure
func (lc *Lifecycle) OnStart(ctx context.Context) error {
	for _, m := range lc.models {
		if err := m.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// OnStop stops all models in reverse order and returns the last error seen
func (lc *Lifecycle) OnStop(ctx context.Context) error {
	var err error
	for i := len(lc.models) - 1; i >= 0; i-- {
		if e := lc.models[i].Stop(ctx); e != nil {
			err = e
		}
	}
	return err
}
