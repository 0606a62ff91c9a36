// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

// A Result is either a successful Response or an Error. Exactly one
// of the two fields is non-nil.
type Result struct {
	Response *Response
	Err      *Error
}

// Success wraps a successful response.
func Success(resp *Response) Result {
	return Result{Response: resp}
}

// Failure wraps an error.
func Failure(err *Error) Result {
	return Result{Err: err}
}

// Succeeded reports whether the result holds a response.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Get returns the response and error in the usual Go shape. The error
// is a plain nil interface on success.
func (r Result) Get() (*Response, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Response, nil
}
