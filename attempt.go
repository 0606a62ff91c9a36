// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import "time"

// An Attempt is the state of a request which an error handler is
// re-sending. It is the input to retry and timeout policies.
type Attempt struct {
	// Request is the request being re-sent.
	Request *Request
	// Result is the result of the most recent attempt.
	Result Result
	// Index is the zero-based index of the most recent attempt. The
	// original Send is attempt zero.
	Index int
	// Timeouts counts the attempts so far which ended in a timeout.
	Timeouts int
	// Start is when the first attempt started.
	Start time.Time
}

// NewAttempt returns the state after the original Send of r produced
// res.
func NewAttempt(r *Request, res Result) *Attempt {
	a := &Attempt{
		Request: r,
		Start:   time.Now(),
	}
	a.record(res)
	if resp := a.response(); resp != nil && !resp.Start.IsZero() {
		a.Start = resp.Start
	}
	return a
}

// Next records the result of another attempt.
func (a *Attempt) Next(res Result) {
	a.Index++
	a.record(res)
}

func (a *Attempt) record(res Result) {
	a.Result = res
	if a.Timeout() {
		a.Timeouts++
	}
}

func (a *Attempt) response() *Response {
	if a.Result.Err != nil {
		return a.Result.Err.Response
	}
	return a.Result.Response
}

// Err returns the error of the most recent attempt, or nil.
func (a *Attempt) Err() error {
	if a.Result.Err == nil {
		return nil
	}
	return a.Result.Err
}

// StatusCode returns the HTTP status of the most recent attempt, or
// zero if it received no HTTP response.
func (a *Attempt) StatusCode() int {
	return a.response().StatusCode()
}

// Timeout reports whether the most recent attempt timed out.
func (a *Attempt) Timeout() bool {
	return a.Result.Err != nil && a.Result.Err.Timeout()
}

// Duration returns the time elapsed since the first attempt started.
func (a *Attempt) Duration() time.Duration {
	return time.Since(a.Start)
}
