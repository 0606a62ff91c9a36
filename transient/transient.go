// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"io"
	"net"
	"syscall"
)

// A Category is the transience category of an error, as reported by
// Categorize.
//
// Not means that repeating the call is very unlikely to change the
// outcome. Every other category means a repeat has some prospect of
// success.
type Category int

const (
	// Not indicates any non-transient error, including nil.
	Not Category = iota
	// Timeout indicates a client-side timeout, either the request
	// timeout configured on the rage request or a lower-level dial or
	// TLS handshake timeout.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout method that reports true.
	Timeout
	// ConnRefused indicates the remote host refused the connection
	// (ECONNREFUSED). This commonly happens while a service restarts.
	ConnRefused
	// ConnReset indicates the remote host reset an established
	// connection (ECONNRESET), typical of load balancers and services
	// shutting down mid-response.
	ConnReset
	// UnexpectedEOF indicates the connection was closed before the
	// complete response was read.
	UnexpectedEOF
	// TemporaryDNS indicates a DNS lookup failure that the resolver
	// itself flagged as temporary.
	TemporaryDNS
)

var categoryNames = []string{
	"Not",
	"Timeout",
	"ConnRefused",
	"ConnReset",
	"UnexpectedEOF",
	"TemporaryDNS",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categorize returns the transience category of err. Wrapped causes
// are examined, not just err itself. Timeout takes precedence over
// every other category.
//
// Categorize never consults a Temporary method, whose meaning is too
// loosely defined across the standard library to be useful.
func Categorize(err error) Category {
	if err == nil {
		return Not
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.ECONNREFUSED:
			return ConnRefused
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return UnexpectedEOF
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTemporary {
		return TemporaryDNS
	}

	return Not
}

// IsTransient reports whether Categorize(err) is anything but Not.
func IsTransient(err error) bool {
	return Categorize(err) != Not
}

type hasTimeout interface {
	Timeout() bool
}
