// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the engine-level counters and histograms an embedder can
// register against its own prometheus.Registerer, mirroring the teacher's
// practice of exposing package-level metric vars rather than a global
// default registry dependency.
type Metrics struct {
	FramesExecuted   prometheus.Counter
	CallsDispatched  *prometheus.CounterVec
	CreatesDispatched *prometheus.CounterVec
	GasUsed          prometheus.Histogram
	DepthExceeded    prometheus.Counter
	OutOfGas         prometheus.Counter
}

// NewMetrics constructs a Metrics bundle and registers it against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FramesExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kakarot",
			Subsystem: "vm",
			Name:      "frames_executed_total",
			Help:      "Number of frames (root message calls and nested CALL/CREATE children) executed.",
		}),
		CallsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kakarot",
			Subsystem: "vm",
			Name:      "calls_dispatched_total",
			Help:      "CALL-family opcodes dispatched, labeled by kind.",
		}, []string{"kind"}),
		CreatesDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kakarot",
			Subsystem: "vm",
			Name:      "creates_dispatched_total",
			Help:      "CREATE-family opcodes dispatched, labeled by kind.",
		}, []string{"kind"}),
		GasUsed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kakarot",
			Subsystem: "vm",
			Name:      "gas_used",
			Help:      "Gas consumed per top-level Execute call.",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 10),
		}),
		DepthExceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kakarot",
			Subsystem: "vm",
			Name:      "depth_exceeded_total",
			Help:      "CALL/CREATE dispatches rejected for exceeding the 1024 frame depth limit.",
		}),
		OutOfGas: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "kakarot",
			Subsystem: "vm",
			Name:      "out_of_gas_total",
			Help:      "CALL/CREATE initiations whose upfront gas Charge ran out of gas.",
		}),
	}
	reg.MustRegister(m.FramesExecuted, m.CallsDispatched, m.CreatesDispatched, m.GasUsed, m.DepthExceeded, m.OutOfGas)
	return m
}
