// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogama/rage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--no-color"))
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("nope"))
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"method":%q,"path":%q,"q":%q,"h":%q,"body":%q}`,
			r.Method, r.URL.Path, r.URL.Query().Get("a"), r.Header.Get("X-Test"), body)
	}))
	defer server.Close()

	t.Run("get", func(t *testing.T) {
		stdout, stderr, err := run("do", "get", server.URL+"/things", "-q", "a=1", "-H", "X-Test: yes")

		require.NoError(t, err)
		assert.JSONEq(t, `{"method":"GET","path":"/things","q":"1","h":"yes","body":""}`, stdout)
		assert.Contains(t, stderr, "200 OK in ")
	})
	t.Run("post with json path", func(t *testing.T) {
		stdout, _, err := run("do", "POST", server.URL, "-d", "hello", "--json", "body")

		require.NoError(t, err)
		assert.Equal(t, "hello\n", stdout)
	})
	t.Run("config", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "c.yaml")
		require.NoError(t, os.WriteFile(name, []byte("base_url: "+server.URL+"\nheaders: {X-Test: cfg}\n"), 0o600))

		stdout, _, err := run("do", "GET", "/p", "--config", name, "--json", "h")

		require.NoError(t, err)
		assert.Equal(t, "cfg\n", stdout)
	})
	t.Run("http error", func(t *testing.T) {
		stdout, stderr, err := run("do", "GET", server.URL+"/missing")

		var rerr *rage.Error
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, rage.KindHTTP, rerr.Kind)
		assert.Equal(t, "nope", stdout)
		assert.Contains(t, stderr, "404 Not Found (http)")
	})
	t.Run("stub", func(t *testing.T) {
		stdout, stderr, err := run("do", "GET", "http://unreachable.invalid", "--stub", "canned", "-v")

		require.NoError(t, err)
		assert.Equal(t, "canned", stdout)
		assert.Contains(t, stderr, "stubbed (6 bytes)")
		assert.Contains(t, stderr, "GET http://unreachable.invalid")
	})
	errCases := []struct {
		name string
		args []string
	}{
		{"bad method", []string{"do", "GE(T", server.URL}},
		{"body on get", []string{"do", "GET", server.URL, "-d", "x"}},
		{"bad header", []string{"do", "GET", server.URL, "-H", "nocolon"}},
		{"bad query", []string{"do", "GET", server.URL, "-q", "noequals"}},
		{"missing config", []string{"do", "GET", "/", "--config", "/nonexistent/rage.yaml"}},
		{"arg count", []string{"do", "GET"}},
	}
	for _, errCase := range errCases {
		t.Run(errCase.name, func(t *testing.T) {
			_, _, err := run(errCase.args...)

			assert.Error(t, err)
		})
	}
}

func TestRequestFor_authorized(t *testing.T) {
	c := &rage.Client{
		Authenticator: rage.AuthenticatorFunc(func(r *rage.Request) *rage.Request {
			return rage.NewRequest(r.Method(), r.BaseURL()).Header("Authorization", "Bearer x")
		}),
	}

	r, err := requestFor(c, io.Discard, &doOptions{}, rage.MethodGet, "http://example.com")

	require.NoError(t, err)
	v, ok := r.HeaderValue("Authorization")
	assert.True(t, ok)
	assert.Equal(t, "Bearer x", v)
	assert.True(t, r.IsAuthorized())
}
