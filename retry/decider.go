// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/rage"
	"github.com/gogama/rage/transient"
)

// A Decider decides, after a failed attempt, whether to retry. It
// must be safe for concurrent use by multiple goroutines.
type Decider interface {
	Decide(a *rage.Attempt) bool
}

// DeciderFunc adapts an ordinary function to the Decider interface.
// Deciders built from DeciderFunc compose with And and Or, which makes
// DeciderFunc the usual currency of this package.
type DeciderFunc func(a *rage.Attempt) bool

// DefaultTimes is the number of times DefaultPolicy will retry.
const DefaultTimes = 5

// DefaultDecider is a general-purpose retry decider suitable for
// common use cases. It will allow up to DefaultTimes retries (i.e. up
// to 6 total attempts), and will retry in the case of a transient error
// (TransientErr) or if a valid HTTP response is received but it contains
// one of the following status codes: 429 (Too Many Requests); 502 (Bad
// Gateway); 503 (Service Unavailable); or 504 (Gateway Timeout).
//
// DefaultDecider never retries a configuration error, since re-sending
// cannot fix a request that failed to build.
var DefaultDecider = Times(DefaultTimes).And(StatusCode(429, 502, 503, 504).Or(TransientErr))

// TransientErr retries when transient.Categorize considers the most
// recent error transient. HTTP errors are never transient in this
// sense; combine TransientErr with StatusCode to retry them.
var TransientErr DeciderFunc = transientErr

// Decide returns f(a).
func (f DeciderFunc) Decide(a *rage.Attempt) bool {
	return f(a)
}

// And returns a decider which retries when both f and g do. g is not
// consulted if f declines.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(a *rage.Attempt) bool {
		return f(a) && g(a)
	}
}

// Or returns a decider which retries when f or g does. g is not
// consulted if f agrees.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(a *rage.Attempt) bool {
		return f(a) || g(a)
	}
}

// Times constructs a retry decider which allows up to n retries. The
// returned decider returns true while the attempt index a.Index is
// less than n, and false otherwise.
func Times(n int) DeciderFunc {
	return func(a *rage.Attempt) bool {
		return a.Index < n
	}
}

// Before constructs a retry decider allowing retries until a certain
// amount of time has elapsed since the first attempt started. The
// returned decider returns true while the elapsed time is less than d,
// and false afterward.
func Before(d time.Duration) DeciderFunc {
	return func(a *rage.Attempt) bool {
		return a.Duration() < d
	}
}

// StatusCode constructs a retry decider allowing retries based on the
// HTTP response status code. If the most recent attempt received a
// valid HTTP response, and the response status code is contained in
// the list ss, the decider returns true. Otherwise, it returns false.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(a *rage.Attempt) bool {
		for _, s := range ss2 {
			if a.StatusCode() == s {
				return true
			}
		}
		return false
	}
}

// Kind constructs a retry decider allowing retries when the most
// recent attempt failed with one of the given error kinds.
func Kind(kinds ...rage.Kind) DeciderFunc {
	ks := make([]rage.Kind, len(kinds))
	copy(ks, kinds)
	return func(a *rage.Attempt) bool {
		if a.Result.Err == nil {
			return false
		}
		for _, k := range ks {
			if a.Result.Err.Kind == k {
				return true
			}
		}
		return false
	}
}

func transientErr(a *rage.Attempt) bool {
	return transient.Categorize(a.Err()) != transient.Not
}
