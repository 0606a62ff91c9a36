// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHooks(t *testing.T) {
	var evts []string
	var exchanges []*Exchange
	h1 := &testHook{seq: 1, evts: &evts, exchanges: &exchanges}
	h2 := &testHook{seq: 2, evts: &evts, exchanges: &exchanges}
	g := &Hooks{}
	t.Run("PushBack", func(t *testing.T) {
		assert.Panics(t, func() { g.PushBack(WillSendRequest, nil) })
		assert.Panics(t, func() { g.PushBack(Event(123), h1) })
		g.PushBack(WillSendRequest, h1)
		g.PushBack(WillSendRequest, h2)
		g.PushBack(DidReceiveResponse, h1)
	})
	t.Run("run", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com")
		raw, _ := http.NewRequest("GET", "https://example.com", nil)
		resp := &Response{Request: r}
		assert.Empty(t, evts)
		g.DidSendRequest(r, raw)
		assert.Empty(t, evts)
		g.WillSendRequest(r)
		assert.Equal(t, []string{"1.WillSendRequest", "2.WillSendRequest"}, evts)
		assert.Len(t, exchanges, 2)
		assert.Same(t, r, exchanges[0].Request)
		assert.Nil(t, exchanges[0].Raw)
		assert.Nil(t, exchanges[0].Response)
		evts = evts[:0]
		exchanges = exchanges[:0]
		g.DidReceiveResponse(resp, raw)
		assert.Equal(t, []string{"1.DidReceiveResponse"}, evts)
		assert.Equal(t, &Exchange{Request: r, Raw: raw, Response: resp}, exchanges[0])
	})
	t.Run("zero value", func(t *testing.T) {
		var zero Hooks
		assert.NotPanics(t, func() {
			zero.WillSendRequest(nil)
			zero.DidReceiveResponse(&Response{}, nil)
		})
	})
}

type testHook struct {
	seq       int
	evts      *[]string
	exchanges *[]*Exchange
}

func (h *testHook) Handle(evt Event, x *Exchange) {
	*h.evts = append(*h.evts, fmt.Sprintf("%d.%s", h.seq, evt))
	*h.exchanges = append(*h.exchanges, x)
}

func TestHookFunc(t *testing.T) {
	var _evt Event
	var _x *Exchange
	var f = func(evt Event, x *Exchange) {
		_evt = evt
		_x = x
	}
	h := HookFunc(f)
	x := &Exchange{}
	h.Handle(DidSendRequest, x)

	assert.Equal(t, DidSendRequest, _evt)
	assert.Same(t, x, _x)
}
