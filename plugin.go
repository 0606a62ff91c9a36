// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import "net/http"

// A Plugin observes a request as it moves through Send. Plug-ins are
// invoked in registration order at each of the three events.
//
// Plug-ins run on whichever goroutine runs Send. For an enqueued
// request this is a background executor goroutine, so a Plugin shared
// between requests must be safe for concurrent use.
type Plugin interface {
	// WillSendRequest is called before materialization.
	WillSendRequest(r *Request)
	// DidSendRequest is called with the materialized raw request,
	// before dispatch.
	DidSendRequest(r *Request, raw *http.Request)
	// DidReceiveResponse is called after dispatch with the raw
	// response, before classification.
	DidReceiveResponse(resp *Response, raw *http.Request)
}

// Hooks is a group of per-event Hook chains which together form a
// Plugin. The zero value is an empty, valid Plugin.
type Hooks struct {
	hooks [][]Hook
}

// PushBack adds a hook to the back of the chain for a specific event.
func (g *Hooks) PushBack(evt Event, h Hook) {
	if h == nil {
		panic("rage: nil hook")
	}

	if g.hooks == nil {
		g.hooks = make([][]Hook, numEvents)
	}

	g.hooks[evt] = append(g.hooks[evt], h)
}

// WillSendRequest runs the WillSendRequest chain.
func (g *Hooks) WillSendRequest(r *Request) {
	g.run(WillSendRequest, &Exchange{Request: r})
}

// DidSendRequest runs the DidSendRequest chain.
func (g *Hooks) DidSendRequest(r *Request, raw *http.Request) {
	g.run(DidSendRequest, &Exchange{Request: r, Raw: raw})
}

// DidReceiveResponse runs the DidReceiveResponse chain.
func (g *Hooks) DidReceiveResponse(resp *Response, raw *http.Request) {
	g.run(DidReceiveResponse, &Exchange{Request: resp.Request, Raw: raw, Response: resp})
}

func (g *Hooks) run(evt Event, x *Exchange) {
	i := int(evt)
	if i < len(g.hooks) {
		for _, h := range g.hooks[i] {
			h.Handle(evt, x)
		}
	}
}

// A Hook handles the occurrence of an event during Send.
type Hook interface {
	Handle(Event, *Exchange)
}

// The HookFunc type is an adapter to allow the use of ordinary
// functions as hooks.
type HookFunc func(Event, *Exchange)

// Handle calls f(evt, x).
func (f HookFunc) Handle(evt Event, x *Exchange) {
	f(evt, x)
}
