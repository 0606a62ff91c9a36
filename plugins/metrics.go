// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package plugins

import (
	"net/http"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/gogama/rage"
)

const maxLatencyMicros = 60_000_000

// Metrics is a plug-in which aggregates dispatched responses. Stubbed
// responses are not recorded. It is safe for concurrent use.
type Metrics struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
	statuses  map[int]int64
	failures  int64
}

// NewMetrics returns an empty Metrics plug-in tracking latencies
// between one microsecond and one minute.
func NewMetrics() *Metrics {
	return &Metrics{
		histogram: hdrhistogram.New(1, maxLatencyMicros, 3),
		statuses:  make(map[int]int64),
	}
}

// WillSendRequest does nothing.
func (m *Metrics) WillSendRequest(_ *rage.Request) {}

// DidSendRequest does nothing.
func (m *Metrics) DidSendRequest(_ *rage.Request, _ *http.Request) {}

// DidReceiveResponse records the response's latency and status.
func (m *Metrics) DidReceiveResponse(resp *rage.Response, _ *http.Request) {
	if resp.Stubbed {
		return
	}

	us := resp.Duration().Microseconds()
	if us < 1 {
		us = 1
	}
	if us > maxLatencyMicros {
		us = maxLatencyMicros
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_ = m.histogram.RecordValue(us)
	if resp.HTTP == nil {
		m.failures++
		return
	}
	m.statuses[resp.StatusCode()]++
}

// A Summary is a point-in-time copy of the values in a Metrics.
type Summary struct {
	Count    int64
	Failures int64
	Statuses map[int]int64
	Min      time.Duration
	Mean     time.Duration
	P50      time.Duration
	P95      time.Duration
	P99      time.Duration
	Max      time.Duration
}

// Summary returns the current values.
func (m *Metrics) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	statuses := make(map[int]int64, len(m.statuses))
	for code, n := range m.statuses {
		statuses[code] = n
	}
	h := m.histogram
	return Summary{
		Count:    h.TotalCount(),
		Failures: m.failures,
		Statuses: statuses,
		Min:      micros(h.Min()),
		Mean:     micros(int64(h.Mean())),
		P50:      micros(h.ValueAtQuantile(50)),
		P95:      micros(h.ValueAtQuantile(95)),
		P99:      micros(h.ValueAtQuantile(99)),
		Max:      micros(h.Max()),
	}
}

// Reset clears all recorded values.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histogram.Reset()
	m.statuses = make(map[int]int64)
	m.failures = 0
}

func micros(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
