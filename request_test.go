// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Query(t *testing.T) {
	n := 5
	var nilPtr *int
	testCases := []struct {
		name  string
		value interface{}
		want  string
		ok    bool
	}{
		{"string", "bar", "bar", true},
		{"int", 42, "42", true},
		{"bool", true, "true", true},
		{"pointer", &n, "5", true},
		{"stringer", 90 * time.Second, "1m30s", true},
		{"nil", nil, "", false},
		{"typed nil pointer", nilPtr, "", false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			r := NewRequest(MethodGet, "https://example.com").
				Query("foo", "before").
				Query("foo", testCase.value)
			v, ok := r.QueryValue("foo")
			assert.Equal(t, testCase.ok, ok)
			assert.Equal(t, testCase.want, v)
		})
	}
}

func TestRequest_QueryDictionary(t *testing.T) {
	r := NewRequest(MethodGet, "https://example.com").
		Query("kept", "yes").
		QueryDictionary(map[string]interface{}{
			"kept":  nil,
			"added": 1,
			"other": "two",
		})

	v, ok := r.QueryValue("kept")
	assert.True(t, ok, "nil dictionary entry must not remove a query parameter")
	assert.Equal(t, "yes", v)
	v, _ = r.QueryValue("added")
	assert.Equal(t, "1", v)
	v, _ = r.QueryValue("other")
	assert.Equal(t, "two", v)
}

func TestRequest_Header(t *testing.T) {
	t.Run("single key removal", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").
			Header("X", "v").
			Header("X", nil)
		_, ok := r.HeaderValue("X")
		assert.False(t, ok)
	})
	t.Run("last write wins", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").
			Header("X", "v1").
			Header("X", "v2")
		v, _ := r.HeaderValue("X")
		assert.Equal(t, "v2", v)
	})
	t.Run("dictionary removes on nil", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").
			Header("Removed", "yes").
			HeaderDictionary(map[string]interface{}{
				"Removed": nil,
				"Added":   "a",
			})
		_, ok := r.HeaderValue("Removed")
		assert.False(t, ok, "nil dictionary entry must remove a header")
		v, _ := r.HeaderValue("Added")
		assert.Equal(t, "a", v)
	})
	t.Run("case sensitive keys", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").Header("x-lower", "1")
		_, ok := r.HeaderValue("X-Lower")
		assert.False(t, ok)
	})
}

func TestRequest_ContentType(t *testing.T) {
	testCases := []struct {
		ct   ContentType
		want string
	}{
		{JSON, "application/json"},
		{URLEncoded, "application/x-www-form-urlencoded"},
		{MultipartFormData, "multipart/form-data"},
		{CustomContentType("text/csv; charset=utf-8"), "text/csv; charset=utf-8"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.want, func(t *testing.T) {
			r := NewRequest(MethodGet, "https://example.com").ContentType(testCase.ct)
			v, ok := r.HeaderValue("Content-Type")
			assert.True(t, ok)
			assert.Equal(t, testCase.want, v)
		})
	}
}

func TestRequest_Path(t *testing.T) {
	r := NewRequest(MethodGet, "https://api.example.com/").
		Path("/users/{id}/repos/{repo}").
		Path("id", 42).
		Path("repo", "my repo").
		Path("unused", nil)

	assert.Equal(t, "/users/{id}/repos/{repo}", r.PathTemplate())
	v, ok := r.PathValue("unused")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	raw, err := r.RawRequest()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/users/42/repos/my%20repo", raw.URL.String())

	assert.Panics(t, func() { r.Path("a", 1, 2) })
}

func TestRequest_Authorized(t *testing.T) {
	t.Run("without authenticator", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com")
		assert.PanicsWithValue(t, noAuthenticatorMsg, func() { r.Authorized() })
	})
	t.Run("returns transform result", func(t *testing.T) {
		replacement := NewRequest(MethodGet, "https://other.example.com")
		var calls int
		a := AuthenticatorFunc(func(r *Request) *Request {
			calls++
			return replacement
		})
		r := NewRequest(MethodGet, "https://example.com").WithAuthenticator(a)
		assert.Equal(t, 0, calls)
		assert.False(t, r.IsAuthorized())

		ar := r.Authorized()

		assert.Same(t, replacement, ar)
		assert.True(t, ar.IsAuthorized())
		assert.Equal(t, 1, calls)
	})
	t.Run("authorized with applies immediately", func(t *testing.T) {
		a := AuthenticatorFunc(func(r *Request) *Request {
			return r.Header("Authorization", "Bearer t")
		})
		r := NewRequest(MethodGet, "https://example.com")

		ar := r.AuthorizedWith(a)

		assert.Same(t, r, ar)
		v, _ := ar.HeaderValue("Authorization")
		assert.Equal(t, "Bearer t", v)
		assert.NotNil(t, ar.Authenticator())
	})
	t.Run("nil transform", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").
			WithAuthenticator(AuthenticatorFunc(func(*Request) *Request { return nil }))
		assert.PanicsWithValue(t, nilAuthorizedMsg, func() { r.Authorized() })
	})
}

func TestRequest_Stub(t *testing.T) {
	t.Run("modes", func(t *testing.T) {
		testCases := []struct {
			mode    StubMode
			stubbed bool
		}{
			{StubNever, false},
			{StubImmediate, true},
			{StubDelayedMillis(10), true},
		}
		for _, testCase := range testCases {
			t.Run(testCase.mode.String(), func(t *testing.T) {
				r := NewRequest(MethodGet, "https://example.com").Stub([]byte("x"), testCase.mode)
				assert.Equal(t, testCase.stubbed, r.IsStubbed())
				assert.Equal(t, testCase.mode, r.StubData().Mode)
			})
		}
	})
	t.Run("default mode is immediate", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").Stub([]byte("x"))
		assert.Equal(t, StubImmediate, r.StubData().Mode)
	})
	t.Run("no stub", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com")
		assert.False(t, r.IsStubbed())
		assert.Nil(t, r.StubData())
	})
	t.Run("last stub wins", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").
			StubString("first").
			StubString("second", StubNever)
		assert.Equal(t, []byte("second"), r.StubData().Data)
		assert.False(t, r.IsStubbed())
	})
	t.Run("invalid UTF-8 is ignored", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").
			StubString("valid").
			StubString("\xff\xfe")
		assert.Equal(t, []byte("valid"), r.StubData().Data)
	})
	t.Run("JSON", func(t *testing.T) {
		r := NewRequest(MethodGet, "https://example.com").
			StubJSON(map[string]int{"a": 1})
		assert.JSONEq(t, `{"a":1}`, string(r.StubData().Data))
		r.StubJSON(make(chan int))
		assert.JSONEq(t, `{"a":1}`, string(r.StubData().Data))
	})
}

func TestRequest_With(t *testing.T) {
	h1 := &FuncErrorHandler{}
	h2 := &FuncErrorHandler{}
	p1 := &Hooks{}
	r := NewRequest(MethodGet, "https://example.com").
		WithErrorHandlers(h1).
		WithErrorHandlers(h2).
		WithPlugins(p1).
		WithTimeoutMillis(1500)

	assert.Equal(t, []ErrorHandler{h2}, r.ErrorHandlers())
	assert.Equal(t, []Plugin{p1}, r.Plugins())
	assert.Equal(t, 1500*time.Millisecond, r.Timeout())
	assert.Equal(t, DefaultTimeout, NewRequest(MethodGet, "").Timeout())
	assert.Panics(t, func() { r.WithTimeout(-1) })

	r.URL("https://other.example.com")
	assert.Equal(t, "https://other.example.com", r.BaseURL())
}

func TestNewRequestFrom(t *testing.T) {
	plugin := &Hooks{}
	handler := &FuncErrorHandler{}
	d := &Description{
		Method:        MethodPost,
		BaseURL:       "https://api.example.com",
		Path:          "/items",
		Header:        map[string]string{"Api-Version": "2", "Content-Type": "text/plain"},
		ContentType:   JSON,
		ErrorHandlers: []ErrorHandler{handler},
		Plugins:       []Plugin{plugin},
	}

	r := NewRequestFrom(d)
	r.Header("Api-Version", nil)
	r.WithErrorHandlers()

	assert.Equal(t, MethodPost, r.Method())
	assert.Equal(t, "https://api.example.com", r.BaseURL())
	assert.Equal(t, "/items", r.PathTemplate())
	ct, _ := r.HeaderValue("Content-Type")
	assert.Equal(t, "application/json", ct)
	assert.Equal(t, DefaultTimeout, r.Timeout())
	assert.Equal(t, "2", d.Header["Api-Version"], "request must not alias description headers")
	assert.Equal(t, []ErrorHandler{handler}, d.ErrorHandlers)
	assert.Same(t, plugin, r.Plugins()[0].(*Hooks))
	assert.False(t, r.IsAuthorized())

	raw, err := r.RawRequest()
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, raw.Method)
	assert.Equal(t, "https://api.example.com/items", raw.URL.String())
	assert.Empty(t, raw.Header.Get("Api-Version"))
}

func TestRequest_RawRequest(t *testing.T) {
	r := NewRequest(MethodGet, "https://example.com/search?lang=en").
		Query("q", "golang").
		Header("Accept", "application/json")

	raw, err := r.RawRequest()

	require.NoError(t, err)
	assert.Equal(t, "GET", raw.Method)
	assert.Equal(t, "lang=en&q=golang", raw.URL.RawQuery)
	assert.Equal(t, "application/json", raw.Header.Get("Accept"))
	assert.Nil(t, raw.Body)
	_, hasDeadline := raw.Context().Deadline()
	assert.False(t, hasDeadline)
}
