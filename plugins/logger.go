// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package plugins

import (
	"log"
	"sync"

	"github.com/gogama/rage"
	"github.com/google/uuid"
)

// A Logger is a plug-in which logs each request as it moves through
// Send. It is safe for concurrent use.
//
// Logger tracks a request from WillSendRequest to DidReceiveResponse.
// It checks in WillSendRequest that the request builds, so register it
// after any plug-in which changes the request.
type Logger struct {
	rage.Hooks

	out      *log.Logger
	idHeader string

	mu  sync.Mutex
	ids map[*rage.Request]string
}

// NewLogger returns a Logger writing to out. If idHeader is not empty,
// the correlation ID is also sent to the server in that header.
func NewLogger(out *log.Logger, idHeader string) *Logger {
	l := &Logger{
		out:      out,
		idHeader: idHeader,
		ids:      make(map[*rage.Request]string),
	}
	l.PushBack(rage.WillSendRequest, rage.HookFunc(l.willSend))
	l.PushBack(rage.DidSendRequest, rage.HookFunc(l.didSend))
	l.PushBack(rage.DidReceiveResponse, rage.HookFunc(l.didReceive))
	return l
}

// ID returns the correlation ID of a request currently in flight.
func (l *Logger) ID(r *rage.Request) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id, ok := l.ids[r]
	return id, ok
}

func (l *Logger) willSend(_ rage.Event, x *rage.Exchange) {
	id := uuid.NewString()
	if l.idHeader != "" {
		x.Request.Header(l.idHeader, id)
	}
	l.out.Printf("[%s] %s %s%s", id, x.Request.Method(), x.Request.BaseURL(), x.Request.PathTemplate())

	// A request which does not build gets no further events, so it is
	// not tracked.
	if _, err := x.Request.RawRequest(); err != nil {
		l.forget(x.Request)
		l.out.Printf("[%s] not sent: %v", id, err)
		return
	}
	l.mu.Lock()
	l.ids[x.Request] = id
	l.mu.Unlock()
}

func (l *Logger) forget(r *rage.Request) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.ids[r]
	delete(l.ids, r)
	return id
}

func (l *Logger) didSend(_ rage.Event, x *rage.Exchange) {
	id, _ := l.ID(x.Request)
	l.out.Printf("[%s] sending %s %s", id, x.Raw.Method, x.Raw.URL)
}

func (l *Logger) didReceive(_ rage.Event, x *rage.Exchange) {
	id := l.forget(x.Request)

	resp := x.Response
	switch {
	case resp.Stubbed:
		l.out.Printf("[%s] stubbed, %d bytes", id, len(resp.Data))
	case resp.Err != nil:
		l.out.Printf("[%s] failed after %s: %v", id, resp.Duration(), resp.Err)
	default:
		l.out.Printf("[%s] %d, %d bytes in %s", id, resp.StatusCode(), len(resp.Data), resp.Duration())
	}
}
