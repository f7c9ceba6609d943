// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	trace   *[]string
	stopErr error
}

func (m *recorder) Start(context.Context) error {
	*m.trace = append(*m.trace, "start "+m.name)
	return nil
}

func (m *recorder) Stop(context.Context) error {
	*m.trace = append(*m.trace, "stop "+m.name)
	return m.stopErr
}

func TestLifecycle(t *testing.T) {
	r := require.New(t)

	var (
		trace []string
		lc    Lifecycle
		ctx   = context.Background()
	)
	lc.Add(&recorder{name: "db", trace: &trace})
	lc.AddModels(&recorder{name: "reporter", trace: &trace})
	r.NoError(lc.OnStart(ctx))
	r.NoError(lc.OnStop(ctx))
	r.Equal([]string{"start db", "start reporter", "stop reporter", "stop db"}, trace)
}

func TestLifecycleWithError(t *testing.T) {
	r := require.New(t)

	var (
		trace []string
		lc    Lifecycle
		ctx   = context.Background()
		err   = errors.New("error")
	)
	lc.AddModels(&recorder{name: "a", trace: &trace, stopErr: err}, &recorder{name: "b", trace: &trace})
	r.NoError(lc.OnStart(ctx))
	r.EqualError(lc.OnStop(ctx), err.Error())
	r.Equal([]string{"start a", "start b", "stop b", "stop a"}, trace)
}
