// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"fmt"
	"time"
)

type stubKind int

const (
	stubImmediate stubKind = iota
	stubNever
	stubDelayed
)

// A StubMode controls when, and whether, stub data replaces a real
// network exchange. The zero value is StubImmediate.
//
// StubMode values are comparable with ==.
type StubMode struct {
	kind  stubKind
	delay time.Duration
}

var (
	// StubImmediate returns the stub data without any added latency.
	StubImmediate = StubMode{}
	// StubNever ignores the stub data; the request goes to the network.
	StubNever = StubMode{kind: stubNever}
)

// StubDelayed returns the stub data after blocking the dispatching
// goroutine for d.
func StubDelayed(d time.Duration) StubMode {
	if d < 0 {
		d = 0
	}
	return StubMode{kind: stubDelayed, delay: d}
}

// StubDelayedMillis is StubDelayed expressed in milliseconds.
func StubDelayedMillis(ms int) StubMode {
	return StubDelayed(time.Duration(ms) * time.Millisecond)
}

// Delay returns the blocking delay of a delayed mode, and zero for the
// other modes.
func (m StubMode) Delay() time.Duration {
	return m.delay
}

// String renders the mode as "never", "immediate" or "delayed(<d>)".
func (m StubMode) String() string {
	switch m.kind {
	case stubNever:
		return "never"
	case stubDelayed:
		return fmt.Sprintf("delayed(%s)", m.delay)
	default:
		return "immediate"
	}
}

// StubData is a canned response body substituted for a network
// exchange, together with its delivery mode.
type StubData struct {
	Data []byte
	Mode StubMode
}

// payload returns the stub bytes and true unless the mode is never.
// A delayed mode sleeps on the calling goroutine first.
func (s *StubData) payload() ([]byte, bool) {
	if s == nil {
		return nil, false
	}
	switch s.Mode.kind {
	case stubNever:
		return nil, false
	case stubDelayed:
		time.Sleep(s.Mode.delay)
	}
	return s.Data, true
}
