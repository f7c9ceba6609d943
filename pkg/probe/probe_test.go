// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/iotexproject/iotex-chaindb/testutil"
)

type testCase struct {
	endpoint string
	code     int
}

func testFunc(t *testing.T, port int, ts []testCase) {
	for _, tt := range ts {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d%s", port, tt.endpoint))
		require.NoError(t, err)
		require.Equal(t, tt.code, resp.StatusCode, tt.endpoint)
		resp.Body.Close()
	}
}

func waitLive(t *testing.T, port int) {
	require.NoError(t, testutil.WaitUntil(100*time.Millisecond, 2*time.Second, func() (bool, error) {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/liveness", port))
		if err != nil {
			return false, nil
		}
		resp.Body.Close()
		return true, nil
	}))
}

func TestBasicProbe(t *testing.T) {
	port := testutil.FreePort(t)
	s := New(port)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	waitLive(t, port)
	notReady := []testCase{
		{"/liveness", http.StatusOK},
		{"/readiness", http.StatusServiceUnavailable},
		{"/health", http.StatusServiceUnavailable},
	}
	ready := []testCase{
		{"/liveness", http.StatusOK},
		{"/readiness", http.StatusOK},
		{"/health", http.StatusOK},
	}
	testFunc(t, port, notReady)
	s.Ready()
	testFunc(t, port, ready)
	s.NotReady()
	testFunc(t, port, notReady)

	require.NoError(t, s.Stop(ctx))
	_, err := http.Get(fmt.Sprintf("http://localhost:%d/liveness", port))
	require.Error(t, err)
}

func TestReadinessCheck(t *testing.T) {
	ctx := context.Background()
	port := testutil.FreePort(t)
	var dbReady atomic.Bool
	s := New(port, WithReadinessCheck(dbReady.Load))
	require.NoError(t, s.Start(ctx))
	defer s.Stop(ctx)
	waitLive(t, port)

	s.Ready()
	testFunc(t, port, []testCase{{"/readiness", http.StatusServiceUnavailable}})
	dbReady.Store(true)
	testFunc(t, port, []testCase{{"/readiness", http.StatusOK}})

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/metrics", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "go_goroutines")
}
