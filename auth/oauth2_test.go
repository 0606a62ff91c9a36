// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gogama/rage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type countingSource struct {
	n   int32
	err error
}

func (s *countingSource) Token() (*oauth2.Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	n := atomic.AddInt32(&s.n, 1)
	return &oauth2.Token{AccessToken: fmt.Sprintf("t%d", n)}, nil
}

func TestNewOAuth2(t *testing.T) {
	assert.PanicsWithValue(t, "rage/auth: nil token source", func() { NewOAuth2(nil) })
}

func TestOAuth2_AuthorizeRequest(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		o := NewOAuth2(&countingSource{})
		r := rage.NewRequest(rage.MethodGet, "http://example.com").AuthorizedWith(o)

		_, ok := r.HeaderValue("Authorization")
		assert.False(t, ok)
		assert.Nil(t, o.Token())
	})
	t.Run("after refresh", func(t *testing.T) {
		o := NewOAuth2(&countingSource{})
		require.NoError(t, o.Refresh())
		r := rage.NewRequest(rage.MethodGet, "http://example.com").AuthorizedWith(o)

		v, ok := r.HeaderValue("Authorization")
		assert.True(t, ok)
		assert.Equal(t, "Bearer t1", v)
	})
	t.Run("refresh error", func(t *testing.T) {
		err := errors.New("boom")
		o := NewOAuth2(&countingSource{err: err})
		assert.Same(t, err, o.Refresh())
		assert.Nil(t, o.Token())
	})
}

func TestRefreshHandler(t *testing.T) {
	var calls int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Header.Get("Authorization") != "Bearer t2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("stale"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer api.Close()

	t.Run("CanHandleError", func(t *testing.T) {
		h := NewOAuth2(&countingSource{}).RefreshHandler()
		assert.True(t, h.Enabled())
		assert.True(t, h.CanHandleError(&rage.Error{Kind: rage.KindHTTP, Response: &rage.Response{HTTP: &http.Response{StatusCode: 401}}}))
		assert.False(t, h.CanHandleError(&rage.Error{Kind: rage.KindHTTP, Response: &rage.Response{HTTP: &http.Response{StatusCode: 403}}}))
		h.Statuses = []int{403}
		assert.True(t, h.CanHandleError(&rage.Error{Kind: rage.KindHTTP, Response: &rage.Response{HTTP: &http.Response{StatusCode: 403}}}))
		h.Disabled = true
		assert.False(t, h.Enabled())
	})
	t.Run("refreshes and resends", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		o := NewOAuth2(&countingSource{})
		require.NoError(t, o.Refresh())
		res := rage.NewRequest(rage.MethodGet, api.URL).
			AuthorizedWith(o).
			WithErrorHandlers(o.RefreshHandler()).
			Execute()

		require.True(t, res.Succeeded())
		assert.Equal(t, "ok", string(res.Response.Data))
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
		assert.Equal(t, "t2", o.Token().AccessToken)
	})
	t.Run("refresh fails", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		o := NewOAuth2(&countingSource{err: errors.New("down")})
		res := rage.NewRequest(rage.MethodGet, api.URL).
			WithErrorHandlers(o.RefreshHandler()).
			Execute()

		require.False(t, res.Succeeded())
		assert.Equal(t, 401, res.Err.StatusCode())
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}

func TestClientCredentials(t *testing.T) {
	var issued int32
	tokens := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&issued, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"access_token":"cc%d","token_type":"bearer","expires_in":3600}`, n)
	}))
	defer tokens.Close()

	o := ClientCredentials(&clientcredentials.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     tokens.URL + "/token",
	})
	require.NoError(t, o.Refresh())
	require.NoError(t, o.Refresh())

	assert.Equal(t, int32(2), atomic.LoadInt32(&issued))
	r := rage.NewRequest(rage.MethodGet, "http://example.com").AuthorizedWith(o)
	v, _ := r.HeaderValue("Authorization")
	assert.Equal(t, "Bearer cc2", v)
}
