// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// A Response is the outcome of a single dispatch: the buffered body,
// the transport response (if any) and the transport error (if any).
//
// The Request field points back at the request that produced the
// response. It is informational; a Response does not keep a request
// alive any longer than the caller does.
type Response struct {
	// Request is the request that produced the response.
	Request *Request
	// Data is the fully-buffered response body. For a stubbed
	// response it is the stub data.
	Data []byte
	// HTTP is the transport response. It is nil for stubbed responses
	// and for network errors. Its Body has already been consumed and
	// closed; use Data instead.
	HTTP *http.Response
	// Err is the transport error, if any.
	Err error
	// Start and End bracket the dispatch.
	Start, End time.Time
	// Stubbed is true if the response was produced from stub data.
	Stubbed bool
}

// StatusCode returns the HTTP status code, or zero if there was no
// HTTP response.
func (r *Response) StatusCode() int {
	if r == nil || r.HTTP == nil {
		return 0
	}
	return r.HTTP.StatusCode
}

// Header returns the response header, or nil if there was no HTTP
// response.
func (r *Response) Header() http.Header {
	if r == nil || r.HTTP == nil {
		return nil
	}
	return r.HTTP.Header
}

// IsSuccess reports whether the response counts as a success: either
// it was stubbed, or it carries no transport error and a 2XX status.
func (r *Response) IsSuccess() bool {
	if r == nil {
		return false
	}
	if r.Stubbed {
		return true
	}
	return r.Err == nil && r.HTTP != nil && r.HTTP.StatusCode/100 == 2
}

// String returns the body as a string.
func (r *Response) String() string {
	if r == nil {
		return ""
	}
	return string(r.Data)
}

// Duration returns the elapsed dispatch time.
func (r *Response) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// JSON looks up a value in the body using a gjson path, for example
// "items.0.name". The zero gjson.Result is returned if the body is not
// JSON or the path does not exist.
func (r *Response) JSON(path string) gjson.Result {
	if r == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(r.Data, path)
}
