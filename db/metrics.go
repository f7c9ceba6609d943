// Copyright (c) 2024 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package db

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	_engineOpsMtc = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chaindb_engine_ops_total",
		Help: "Number of storage engine operations.",
	}, []string{"engine", "method", "result"})
	_batchSizeMtc = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chaindb_engine_batch_size",
		Help:    "Number of keys per storage engine batch.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"engine", "kind"})
)

func init() {
	prometheus.MustRegister(_engineOpsMtc)
	prometheus.MustRegister(_batchSizeMtc)
}

func observeOp(engine, method string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	_engineOpsMtc.WithLabelValues(engine, method, result).Inc()
}

func observeBatch(engine, kind string, size int) {
	_batchSizeMtc.WithLabelValues(engine, kind).Observe(float64(size))
}
