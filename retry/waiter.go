// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gogama/rage"
)

// A Waiter says how long to sleep before the next attempt. It is only
// consulted after the Decider has allowed a retry.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Waiter interface {
	Wait(a *rage.Attempt) time.Duration
}

// DefaultWaiter honors a Retry-After header of up to 30 seconds and
// otherwise backs off exponentially with full jitter, starting at 50
// milliseconds and capped at 1 second.
var DefaultWaiter = RetryAfter(
	NewExpWaiter(50*time.Millisecond, time.Second, rand.NewSource(time.Now().UnixNano())),
	30*time.Second,
)

// WaiterFunc adapts an ordinary function to the Waiter interface.
type WaiterFunc func(a *rage.Attempt) time.Duration

// Wait returns f(a).
func (f WaiterFunc) Wait(a *rage.Attempt) time.Duration {
	return f(a)
}

// NewFixedWaiter returns a Waiter which always waits d.
func NewFixedWaiter(d time.Duration) Waiter {
	return WaiterFunc(func(_ *rage.Attempt) time.Duration {
		return d
	})
}

// NewExpWaiter returns a Waiter with exponential backoff. The ceiling
// for attempt index i is min(base<<i, max). With a nil src the waiter
// returns the ceiling itself; otherwise it returns a uniformly random
// duration in [0, ceiling), the "full jitter" scheme.
//
// Base must be positive and max must be at least base.
func NewExpWaiter(base, max time.Duration, src rand.Source) Waiter {
	if base <= 0 {
		panic("rage/retry: base must be positive")
	}
	if max < base {
		panic("rage/retry: max must be at least base")
	}
	w := &expWaiter{base: base, max: max}
	if src != nil {
		w.rand = rand.New(src)
	}
	return w
}

type expWaiter struct {
	base, max time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

func (w *expWaiter) Wait(a *rage.Attempt) time.Duration {
	ceil := w.max
	if a.Index < 63 {
		if d := w.base << uint(a.Index); d > 0 && d>>uint(a.Index) == w.base && d < w.max {
			ceil = d
		}
	}
	if w.rand == nil {
		return ceil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Duration(w.rand.Int63n(int64(ceil)))
}

// RetryAfter returns a Waiter which obeys the Retry-After header of the
// most recent response, given either in seconds or as an HTTP date.
// A missing or unparseable header, or one asking for longer than
// limit, defers to fallback.
func RetryAfter(fallback Waiter, limit time.Duration) Waiter {
	return WaiterFunc(func(a *rage.Attempt) time.Duration {
		if d, ok := retryAfter(a); ok && d <= limit {
			return d
		}
		return fallback.Wait(a)
	})
}

func retryAfter(a *rage.Attempt) (time.Duration, bool) {
	if a.Result.Err == nil || a.Result.Err.Response == nil {
		return 0, false
	}
	v := strings.TrimSpace(a.Result.Err.Response.Header().Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	t, err := http.ParseTime(v)
	if err != nil {
		return 0, false
	}
	d := time.Until(t)
	if d < 0 {
		d = 0
	}
	return d, true
}
