// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "raw", KindRaw.String())
	assert.Equal(t, "empty network response", KindEmptyNetworkResponse.String())
	assert.Equal(t, "configuration", KindConfiguration.String())
	assert.Equal(t, "http", KindHTTP.String())
	assert.Equal(t, "network error", KindNetworkError.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestClassify(t *testing.T) {
	resp200 := &http.Response{StatusCode: 200}
	resp404 := &http.Response{StatusCode: 404}
	transportErr := &url.Error{Op: "Get", URL: "https://example.com", Err: syscall.ECONNRESET}
	testCases := []struct {
		name string
		resp *Response
		kind Kind
		ok   bool
	}{
		{"stub", &Response{Stubbed: true}, 0, true},
		{"stub without data", &Response{Stubbed: true, Data: nil}, 0, true},
		{"2XX", &Response{HTTP: resp200, Data: []byte("x")}, 0, true},
		{"2XX empty", &Response{HTTP: resp200}, 0, true},
		{"error with response", &Response{HTTP: resp200, Err: io.ErrUnexpectedEOF, Data: []byte("x")}, KindRaw, false},
		{"error without response", &Response{Err: transportErr}, KindNetworkError, false},
		{"error without response but data", &Response{Err: transportErr, Data: []byte("x")}, KindNetworkError, false},
		{"non-2XX empty", &Response{HTTP: resp404}, KindEmptyNetworkResponse, false},
		{"non-2XX body", &Response{HTTP: resp404, Data: []byte("nope")}, KindHTTP, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := Classify(testCase.resp)
			if testCase.ok {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, testCase.kind, err.Kind)
				assert.Same(t, testCase.resp, err.Response)
				assert.Equal(t, testCase.resp.Err, err.Err)
			}
		})
	}
	t.Run("nil", func(t *testing.T) {
		err := Classify(nil)
		assert.Equal(t, KindConfiguration, err.Kind)
	})
}

func TestError(t *testing.T) {
	t.Run("message wins", func(t *testing.T) {
		err := &Error{Kind: KindConfiguration, Message: "Couldn't parse object from JSON", Err: errors.New("x")}
		assert.Equal(t, "Couldn't parse object from JSON", err.Error())
	})
	t.Run("composed", func(t *testing.T) {
		err := &Error{
			Kind:     KindRaw,
			Response: &Response{HTTP: &http.Response{StatusCode: 502}},
			Err:      io.ErrUnexpectedEOF,
		}
		assert.Equal(t, "rage: raw (status 502): unexpected EOF", err.Error())
		assert.Equal(t, 502, err.StatusCode())
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.True(t, err.Transient())
		assert.False(t, err.Timeout())
	})
	t.Run("timeout", func(t *testing.T) {
		err := &Error{
			Kind: KindNetworkError,
			Err:  &url.Error{Op: "Get", URL: "https://example.com", Err: context.DeadlineExceeded},
		}
		assert.True(t, err.Timeout())
		assert.True(t, err.Transient())
		assert.Equal(t, 0, err.StatusCode())
	})
	t.Run("no cause", func(t *testing.T) {
		err := &Error{Kind: KindEmptyNetworkResponse}
		assert.Equal(t, "rage: empty network response", err.Error())
		assert.Nil(t, err.Unwrap())
		assert.False(t, err.Timeout())
		assert.False(t, err.Transient())
	})
}

func TestResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := &Response{Data: []byte("{}")}
		res := Success(resp)
		assert.True(t, res.Succeeded())
		r, err := res.Get()
		assert.Same(t, resp, r)
		assert.NoError(t, err)
		assert.True(t, err == nil, "must not leak a typed nil")
	})
	t.Run("failure", func(t *testing.T) {
		e := &Error{Kind: KindHTTP}
		res := Failure(e)
		assert.False(t, res.Succeeded())
		r, err := res.Get()
		assert.Nil(t, r)
		assert.Same(t, e, err)
	})
}
