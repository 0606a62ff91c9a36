// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/rage"
	"github.com/gogama/rage/timeout"
	"golang.org/x/time/rate"
)

// A Handler is a rage.ErrorHandler which re-sends a failed request
// following a retry policy. Its zero value is a valid handler which
// follows DefaultPolicy and handles every error except configuration
// errors.
//
// Install a Handler in the error handler chain of a request or of a
// rage.Client:
//
//	client.ErrorHandlers = []rage.ErrorHandler{
//		&retry.Handler{Policy: retry.NewPolicy(retry.Times(2), retry.NewFixedWaiter(time.Second))},
//	}
//
// A Handler is safe for concurrent use by multiple goroutines as long
// as its fields are not changed.
type Handler struct {
	// Disabled turns the handler off without removing it from the
	// chain.
	Disabled bool
	// Policy decides whether to retry and how long to wait first.
	//
	// If Policy is nil, DefaultPolicy is used.
	Policy Policy
	// Timeout, if not nil, sets the request timeout of each retry.
	// The request's own timeout is restored when the handler returns.
	Timeout timeout.Policy
	// Budget, if not nil, limits the rate of retries across every
	// request sharing the handler. A retry the budget does not allow
	// is not made, and the most recent result is returned.
	Budget *rate.Limiter
	// Can, if not nil, replaces the default error predicate.
	Can func(err *rage.Error) bool
}

// Enabled reports !h.Disabled.
func (h *Handler) Enabled() bool {
	return !h.Disabled
}

// CanHandleError reports whether the handler should run for err. By
// default every error but a KindConfiguration error is accepted.
func (h *Handler) CanHandleError(err *rage.Error) bool {
	if h.Can != nil {
		return h.Can(err)
	}
	return err.Kind != rage.KindConfiguration
}

// HandleErrorForRequest re-sends r until it succeeds, the policy
// declines to retry, or the budget is exhausted. The wait between
// attempts blocks the calling goroutine.
func (h *Handler) HandleErrorForRequest(r *rage.Request, res rage.Result) rage.Result {
	if res.Succeeded() {
		return res
	}

	p := h.Policy
	if p == nil {
		p = DefaultPolicy
	}

	if h.Timeout != nil {
		defer r.WithTimeout(r.Timeout())
	}

	a := rage.NewAttempt(r, res)
	for !a.Result.Succeeded() && p.Decide(a) {
		if h.Budget != nil && !h.Budget.Allow() {
			break
		}
		time.Sleep(p.Wait(a))
		if h.Timeout != nil {
			r.WithTimeout(h.Timeout.Timeout(a))
		}
		a.Next(r.Send())
	}
	return a.Result
}
