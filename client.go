// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import "time"

// A Client holds the defaults shared by a family of requests against
// one API: base URL, headers, authenticator, error handlers, plug-ins,
// timeout and executors. Its zero value is a valid configuration,
// although most clients set at least BaseURL.
//
// A Client is a factory. It keeps no connection state, and each
// request it creates gets its own copy of the defaults, so a Client
// may be shared by multiple goroutines as long as its fields are not
// changed concurrently.
type Client struct {
	// BaseURL is prepended to every request path.
	BaseURL string
	// Header holds default headers. Entries are copied into each
	// request, which may then override or remove them.
	Header map[string]string
	// ContentType, if set, is the default Content-Type header.
	ContentType ContentType
	// Authenticator is attached to each request. It is only applied
	// when Request.Authorized is called.
	Authenticator Authenticator
	// ErrorHandlers is the default error handler chain.
	ErrorHandlers []ErrorHandler
	// Timeout is the default request timeout. Zero means
	// DefaultTimeout.
	Timeout time.Duration
	// Plugins is the default plug-in list, shared by every request.
	Plugins []Plugin
	// Sessions provides transport sessions. Nil means DefaultSessions.
	Sessions SessionProvider
	// Background runs enqueued requests. Nil means Goroutines.
	Background Executor
	// Foreground delivers enqueued results. Nil means the package
	// default loop.
	Foreground Executor
}

// Describe returns the description of a request for method and path
// carrying the client's defaults.
func (c *Client) Describe(method Method, path string) *Description {
	return &Description{
		Method:        method,
		BaseURL:       c.BaseURL,
		Path:          path,
		Header:        c.Header,
		ContentType:   c.ContentType,
		Authenticator: c.Authenticator,
		ErrorHandlers: c.ErrorHandlers,
		Timeout:       c.Timeout,
		Plugins:       c.Plugins,
		Sessions:      c.Sessions,
		Background:    c.Background,
		Foreground:    c.Foreground,
	}
}

// Call returns a new request for method and path.
func (c *Client) Call(method Method, path string) *Request {
	return NewRequestFrom(c.Describe(method, path))
}

// Get returns a new GET request for path.
func (c *Client) Get(path string) *Request {
	return c.Call(MethodGet, path)
}

// Head returns a new HEAD request for path.
func (c *Client) Head(path string) *Request {
	return c.Call(MethodHead, path)
}

// Post returns a new POST request for path.
func (c *Client) Post(path string) *Request {
	return c.Call(MethodPost, path)
}

// Put returns a new PUT request for path.
func (c *Client) Put(path string) *Request {
	return c.Call(MethodPut, path)
}

// Patch returns a new PATCH request for path.
func (c *Client) Patch(path string) *Request {
	return c.Call(MethodPatch, path)
}

// Delete returns a new DELETE request for path.
func (c *Client) Delete(path string) *Request {
	return c.Call(MethodDelete, path)
}
