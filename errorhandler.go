// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

// An ErrorHandler gets a chance to recover from a failed request.
//
// Execute consults the handlers in order. A handler runs only if it is
// enabled and its CanHandleError accepts the error produced by Send.
// Each running handler receives the Result left by the previous one,
// and may return a new Result, typically by re-sending the request.
type ErrorHandler interface {
	Enabled() bool
	CanHandleError(err *Error) bool
	HandleErrorForRequest(r *Request, res Result) Result
}

// FuncErrorHandler is an ErrorHandler assembled from functions.
//
// A nil Can accepts every error. A nil Handle returns the incoming
// Result unchanged.
type FuncErrorHandler struct {
	Disabled bool
	Can      func(err *Error) bool
	Handle   func(r *Request, res Result) Result
}

// Enabled reports !h.Disabled.
func (h *FuncErrorHandler) Enabled() bool {
	return !h.Disabled
}

// CanHandleError calls h.Can.
func (h *FuncErrorHandler) CanHandleError(err *Error) bool {
	return h.Can == nil || h.Can(err)
}

// HandleErrorForRequest calls h.Handle.
func (h *FuncErrorHandler) HandleErrorForRequest(r *Request, res Result) Result {
	if h.Handle == nil {
		return res
	}
	return h.Handle(r, res)
}

// OnKind returns a predicate, suitable for FuncErrorHandler.Can, which
// accepts errors of any of the given kinds.
func OnKind(kinds ...Kind) func(*Error) bool {
	return func(err *Error) bool {
		for _, k := range kinds {
			if err.Kind == k {
				return true
			}
		}
		return false
	}
}

// OnStatus returns a predicate which accepts errors carrying any of the
// given HTTP status codes.
func OnStatus(codes ...int) func(*Error) bool {
	return func(err *Error) bool {
		sc := err.StatusCode()
		for _, c := range codes {
			if sc == c {
				return true
			}
		}
		return false
	}
}
