// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import "net/http"

// An Event identifies one of the three plug-in points in the Send
// pipeline. Every Plugin method corresponds to an Event, and Hooks
// lets a Plugin be assembled from per-event Hook chains.
type Event int

const (
	// WillSendRequest identifies the event that occurs before the
	// request is materialized.
	//
	// When Send fires WillSendRequest, only the Request field of the
	// Exchange is set. The plug-in may still mutate the Request, for
	// example by adding a header.
	WillSendRequest Event = iota
	// DidSendRequest identifies the event that occurs after the raw
	// HTTP request has been built and before it is dispatched (or
	// replaced by stub data).
	//
	// When Send fires DidSendRequest, the Exchange has the Request and
	// Raw fields set. Materialization failures end Send before this
	// event fires.
	DidSendRequest
	// DidReceiveResponse identifies the event that occurs after the
	// dispatch has concluded, successfully or not, and before the
	// response is classified.
	//
	// When Send fires DidReceiveResponse, all three Exchange fields
	// are set.
	DidReceiveResponse
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"WillSendRequest",
	"DidSendRequest",
	"DidReceiveResponse",
}

// Events returns a slice containing all events which can occur during
// Send, in the order in which they occur.
func Events() []Event {
	return []Event{
		WillSendRequest,
		DidSendRequest,
		DidReceiveResponse,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}

// An Exchange carries the pipeline state visible at an Event. Fields
// not yet known at the event are nil.
type Exchange struct {
	Request  *Request
	Raw      *http.Request
	Response *Response
}
