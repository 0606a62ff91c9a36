// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// An IdleCloser is an HTTPDoer which holds idle connections that can
// be released. Send releases them when a dispatch completes.
type IdleCloser interface {
	CloseIdleConnections()
}

// A SessionProvider hands out the transport session for one dispatch.
// The timeout is the request's timeout and is zero for no deadline.
type SessionProvider interface {
	Session(timeout time.Duration) HTTPDoer
}

// The SessionFunc type is an adapter to allow the use of ordinary
// functions as session providers.
type SessionFunc func(timeout time.Duration) HTTPDoer

// Session calls f(timeout).
func (f SessionFunc) Session(timeout time.Duration) HTTPDoer {
	return f(timeout)
}

// DefaultSessions is the SessionProvider used when a request has none.
// It creates a fresh session per dispatch with NewSession.
var DefaultSessions SessionProvider = SessionFunc(NewSession)

// NewSession returns a dedicated http.Client whose transport speaks
// HTTP/1.1 and HTTP/2 and is not shared with any other request. The
// client timeout and dial timeout are both set to timeout.
func NewSession(timeout time.Duration) HTTPDoer {
	dialer := &net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	// The only failure is an already-configured transport, which this
	// fresh one is not. On failure the session stays HTTP/1.1.
	_ = http2.ConfigureTransport(tr)
	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

// StaticSession returns a SessionProvider that hands out d for every
// dispatch. Send does not close idle connections on d, so d may pool
// connections across requests.
func StaticSession(d HTTPDoer) SessionProvider {
	if d == nil {
		panic("rage: nil HTTPDoer")
	}
	s := staticDoer{d}
	return SessionFunc(func(time.Duration) HTTPDoer { return s })
}

type staticDoer struct {
	d HTTPDoer
}

func (s staticDoer) Do(r *http.Request) (*http.Response, error) {
	return s.d.Do(r)
}
