// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import "time"

// DefaultTimeout is the request timeout used when a Description does
// not set one.
const DefaultTimeout = 60 * time.Second

// A Description is the immutable recipe from which a Request is
// created. Client builds descriptions from its defaults; they may
// also be written by hand.
//
// The Authenticator is carried to the request but not applied; call
// Request.Authorized to apply it.
type Description struct {
	Method        Method
	BaseURL       string
	Path          string
	Header        map[string]string
	ContentType   ContentType
	Authenticator Authenticator
	ErrorHandlers []ErrorHandler
	// Timeout is the request timeout. Zero means DefaultTimeout; a
	// request with no deadline is made with Request.WithTimeout(0).
	Timeout time.Duration
	Plugins []Plugin
	// Sessions provides the transport session per dispatch. Nil means
	// DefaultSessions.
	Sessions SessionProvider
	// Background runs enqueued requests. Nil means Goroutines.
	Background Executor
	// Foreground delivers enqueued results. Nil means a package-level
	// Loop running on its own goroutine.
	Foreground Executor
}
