// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/rage"
)

// A Policy chooses the request timeout of each re-sent attempt. A zero
// timeout means no deadline.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout of the next attempt, given the state
	// after the most recent one.
	Timeout(a *rage.Attempt) time.Duration
}

// PolicyFunc adapts an ordinary function to the Policy interface.
type PolicyFunc func(a *rage.Attempt) time.Duration

// Timeout returns f(a).
func (f PolicyFunc) Timeout(a *rage.Attempt) time.Duration {
	return f(a)
}

// DefaultPolicy gives every attempt 5 seconds.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite never sets a deadline.
var Infinite Policy = Fixed(0)

// Fixed gives every attempt the timeout d.
func Fixed(d time.Duration) Policy {
	return Adaptive(d)
}

// Adaptive lengthens the timeout after attempts which timed out.
//
// An attempt following one which did not time out gets usual. An
// attempt following the n-th timeout gets after[n-1], or the last
// element of after once the timeouts outnumber it. For example
//
//	Adaptive(200*time.Millisecond, time.Second, 10*time.Second)
//
// retries quickly after ordinary failures, allows 1 second after the
// first timeout and 10 seconds after any later one. This cures one-off
// slow responses without causing a retry storm when the server is
// slow across the board.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	steps := append([]time.Duration{usual}, after...)
	return PolicyFunc(func(a *rage.Attempt) time.Duration {
		if !a.Timeout() {
			return steps[0]
		}
		i := a.Timeouts
		if i >= len(steps) {
			i = len(steps) - 1
		}
		return steps[i]
	})
}

// Within caps the timeouts of p so that no attempt runs past total,
// measured from the start of the first attempt. Once total has elapsed
// the returned timeout is one nanosecond, so pair Within with a retry
// decider such as retry.Before to stop retrying altogether.
func Within(total time.Duration, p Policy) Policy {
	return PolicyFunc(func(a *rage.Attempt) time.Duration {
		left := total - a.Duration()
		if left <= 0 {
			return time.Nanosecond
		}
		d := p.Timeout(a)
		if d == 0 || d > left {
			return left
		}
		return d
	})
}
