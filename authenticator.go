// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

// An Authenticator transforms a request into an authorized one, for
// example by adding an Authorization header. The transform must not
// do any I/O; token acquisition belongs in an ErrorHandler or in code
// running before the request is built.
type Authenticator interface {
	AuthorizeRequest(r *Request) *Request
}

// The AuthenticatorFunc type is an adapter to allow the use of
// ordinary functions as authenticators.
type AuthenticatorFunc func(r *Request) *Request

// AuthorizeRequest calls f(r).
func (f AuthenticatorFunc) AuthorizeRequest(r *Request) *Request {
	return f(r)
}
