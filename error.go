// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"fmt"

	"github.com/gogama/rage/transient"
)

// A Kind classifies a failed request.
type Kind int

const (
	// KindRaw means the transport reported an error but a response
	// was nevertheless received, for example when the body could not
	// be read to the end.
	KindRaw Kind = iota
	// KindEmptyNetworkResponse means the server answered with a
	// non-2XX status and no body.
	KindEmptyNetworkResponse
	// KindConfiguration means the request could not be built, or a
	// response could not be mapped to the requested type.
	KindConfiguration
	// KindHTTP means the server answered with a non-2XX status and a
	// non-empty body.
	KindHTTP
	// KindNetworkError means the transport failed without producing
	// any response.
	KindNetworkError
)

var kindNames = []string{
	"raw",
	"empty network response",
	"configuration",
	"http",
	"network error",
}

// String returns a short lower-case name for the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// An Error describes a failed request. Response is set whenever the
// failure happened after dispatch, including for network errors, so
// error handlers can inspect the timing and the originating request.
type Error struct {
	Kind     Kind
	Response *Response
	Message  string
	Err      error
}

// Error renders the error message. An explicit Message wins; otherwise
// the message is composed from the kind, the status code and the
// underlying transport error.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	msg := "rage: " + e.Kind.String()
	if code := e.StatusCode(); code != 0 {
		msg += fmt.Sprintf(" (status %d)", code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying transport or parse error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status of the failed response, or zero
// if no HTTP response was received.
func (e *Error) StatusCode() int {
	return e.Response.StatusCode()
}

// Timeout reports whether the underlying error was a timeout.
func (e *Error) Timeout() bool {
	return e.Err != nil && transient.Categorize(e.Err) == transient.Timeout
}

// Transient reports whether the underlying error is a transport
// condition which may clear up on a later attempt.
func (e *Error) Transient() bool {
	return transient.IsTransient(e.Err)
}

// Classify builds the Error describing a response which is not a
// success. It is the classification step of Send and is exported for
// error handlers which re-dispatch a request themselves.
//
// Classify returns nil for a successful response.
func Classify(resp *Response) *Error {
	if resp == nil {
		return &Error{Kind: KindConfiguration, Message: nilResponseMsg}
	}
	if resp.IsSuccess() {
		return nil
	}
	switch {
	case resp.Err != nil && resp.HTTP != nil:
		return &Error{Kind: KindRaw, Response: resp, Err: resp.Err}
	case resp.Err != nil:
		return &Error{Kind: KindNetworkError, Response: resp, Err: resp.Err}
	case len(resp.Data) == 0:
		return &Error{Kind: KindEmptyNetworkResponse, Response: resp}
	default:
		return &Error{Kind: KindHTTP, Response: resp}
	}
}

const nilResponseMsg = "rage: no response to classify"

func configurationError(msg string, err error) *Error {
	return &Error{Kind: KindConfiguration, Message: msg, Err: err}
}
