// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gogama/rage/request"
)

const (
	buildFailedMsg   = "rage: couldn't build HTTP request"
	nilCompletionMsg = "rage: nil completion"
)

// Execute sends the request and, if it fails, gives each enabled error
// handler whose CanHandleError accepts the failure a chance to recover.
//
// The handlers run in order on the calling goroutine. CanHandleError is
// always asked about the error produced by Send, while each handler
// receives the Result returned by the handler before it. The final
// Result is returned.
func (r *Request) Execute() Result {
	res := r.Send()
	if res.Succeeded() {
		return res
	}

	classified := res.Err
	for _, h := range r.errorHandlers {
		if h.Enabled() && h.CanHandleError(classified) {
			res = h.HandleErrorForRequest(r, res)
		}
	}
	return res
}

// Send runs the request pipeline once, without error handlers:
//
//  1. WillSendRequest is fired on every plug-in.
//  2. The raw HTTP request is materialized. A failure ends Send with a
//     KindConfiguration error and no further plug-in events.
//  3. DidSendRequest is fired on every plug-in.
//  4. The stub data, if the request is stubbed, or else the transport
//     response, is obtained. Delayed stubs block the calling goroutine.
//  5. DidReceiveResponse is fired on every plug-in.
//  6. The response is classified with Classify.
//
// Error handlers call Send to retry a request.
func (r *Request) Send() Result {
	for _, p := range r.plugins {
		p.WillSendRequest(r)
	}

	ctx, cancel := r.context()
	defer cancel()
	raw, err := r.rawRequest(ctx)
	if err != nil {
		return Failure(configurationError(buildFailedMsg+": "+err.Error(), err))
	}

	for _, p := range r.plugins {
		p.DidSendRequest(r, raw)
	}

	resp := &Response{Request: r, Start: time.Now()}
	if data, ok := r.stub.payload(); ok {
		resp.Data = data
		resp.Stubbed = true
	} else {
		r.dispatch(raw, resp)
	}
	resp.End = time.Now()

	for _, p := range r.plugins {
		p.DidReceiveResponse(resp, raw)
	}

	if err := Classify(resp); err != nil {
		return Failure(err)
	}
	return Success(resp)
}

// Enqueue runs Execute on the background executor and then delivers
// the result to completion on the foreground executor. Completion is
// called exactly once.
func (r *Request) Enqueue(completion func(Result)) {
	if completion == nil {
		panic(nilCompletionMsg)
	}
	bg, fg := r.executors()
	bg.Submit(func() {
		res := r.Execute()
		fg.Submit(func() { completion(res) })
	})
}

// RawRequest materializes the request without sending it. The returned
// request has a background context.
func (r *Request) RawRequest() (*http.Request, error) {
	return r.rawRequest(context.Background())
}

func (r *Request) rawRequest(ctx context.Context) (*http.Request, error) {
	if r.bodyErr != nil {
		return nil, r.bodyErr
	}
	p, err := request.NewPlan(request.Parts{
		Method:     string(r.method),
		BaseURL:    r.baseURL,
		Path:       r.path,
		PathParams: r.pathParams,
		Query:      r.query,
		Header:     r.header,
		Body:       r.body,
	})
	if err != nil {
		return nil, err
	}
	return p.ToRequest(ctx), nil
}

func (r *Request) context() (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), r.timeout)
}

func (r *Request) dispatch(raw *http.Request, resp *Response) {
	sessions := r.sessions
	if sessions == nil {
		sessions = DefaultSessions
	}
	doer := sessions.Session(r.timeout)
	if ic, ok := doer.(IdleCloser); ok {
		defer ic.CloseIdleConnections()
	}

	httpResp, err := doer.Do(raw)
	if err != nil {
		// A non-nil response with an error only happens when a redirect
		// policy fails, and its body is already closed.
		resp.HTTP = httpResp
		resp.Err = urlErrorWrap(raw, err)
		return
	}
	resp.HTTP = httpResp
	defer func() {
		_ = httpResp.Body.Close()
	}()
	resp.Data, err = io.ReadAll(httpResp.Body)
	if err != nil {
		resp.Err = urlErrorWrap(raw, err)
	}
}

func (r *Request) executors() (bg, fg Executor) {
	bg, fg = r.background, r.foreground
	if bg == nil {
		bg = Goroutines
	}
	if fg == nil {
		fg = defaultForeground()
	}
	return
}

func urlErrorWrap(raw *http.Request, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(raw.Method),
		URL: raw.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
