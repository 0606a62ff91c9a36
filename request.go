// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
	"unicode/utf8"
)

const (
	noAuthenticatorMsg = "rage: can't create authorized request without Authenticator provided"
	nilAuthorizedMsg   = "rage: Authenticator returned nil request"
)

// A Request is a mutable HTTP request under construction. The builder
// methods mutate the receiver and return it so calls can be chained:
//
//	res := rage.NewRequest(rage.MethodGet, "https://api.example.com").
//		Path("/users/{id}").
//		Path("id", 42).
//		Query("verbose", true).
//		Execute()
//
// A Request is not safe for concurrent mutation. Once handed to
// Enqueue it must not be changed by the caller.
type Request struct {
	method        Method
	baseURL       string
	path          string
	query         map[string]string
	pathParams    map[string]string
	header        map[string]string
	body          []byte
	bodyErr       error
	authenticator Authenticator
	authorized    bool
	errorHandlers []ErrorHandler
	plugins       []Plugin
	timeout       time.Duration
	stub          *StubData
	sessions      SessionProvider
	background    Executor
	foreground    Executor
}

// NewRequest returns a request for method and baseURL with an empty
// path, no plug-ins and the default timeout.
func NewRequest(method Method, baseURL string) *Request {
	return &Request{
		method:     method,
		baseURL:    baseURL,
		query:      map[string]string{},
		pathParams: map[string]string{},
		header:     map[string]string{},
		timeout:    DefaultTimeout,
	}
}

// NewRequestFrom returns a request built from d. The description's
// header map and error handler list are copied; its plug-ins are
// shared. If d.ContentType is set it overrides any Content-Type in
// d.Header.
func NewRequestFrom(d *Description) *Request {
	r := NewRequest(d.Method, d.BaseURL)
	r.path = d.Path
	for k, v := range d.Header {
		r.header[k] = v
	}
	if d.ContentType != "" {
		r.header[contentTypeHeader] = d.ContentType.String()
	}
	r.authenticator = d.Authenticator
	r.errorHandlers = append([]ErrorHandler(nil), d.ErrorHandlers...)
	r.plugins = d.Plugins
	if d.Timeout > 0 {
		r.timeout = d.Timeout
	}
	r.sessions = d.Sessions
	r.background = d.Background
	r.foreground = d.Foreground
	return r
}

const contentTypeHeader = "Content-Type"

// URL replaces the base URL.
func (r *Request) URL(baseURL string) *Request {
	r.baseURL = baseURL
	return r
}

// Query adds or replaces a query parameter. A nil value, including a
// nil pointer, removes the parameter. Other values are stringified with
// fmt.Sprint after dereferencing pointers.
func (r *Request) Query(key string, value interface{}) *Request {
	if s, ok := stringify(value); ok {
		r.query[key] = s
	} else {
		delete(r.query, key)
	}
	return r
}

// QueryDictionary adds every non-nil entry of params. Nil entries are
// skipped, so unlike Query they never remove an existing parameter.
func (r *Request) QueryDictionary(params map[string]interface{}) *Request {
	for k, v := range params {
		if s, ok := stringify(v); ok {
			r.query[k] = s
		}
	}
	return r
}

// Path sets the path. With one argument it sets the path template.
// With two it binds the value of a "{name}" placeholder; the value is
// always stored, a nil value as the empty string.
func (r *Request) Path(pathOrName string, value ...interface{}) *Request {
	switch len(value) {
	case 0:
		r.path = pathOrName
	case 1:
		s, _ := stringify(value[0])
		r.pathParams[pathOrName] = s
	default:
		panic("rage: Path takes a template or a single name and value")
	}
	return r
}

// Header adds or replaces a header. A nil value removes it.
func (r *Request) Header(name string, value interface{}) *Request {
	if s, ok := stringify(value); ok {
		r.header[name] = s
	} else {
		delete(r.header, name)
	}
	return r
}

// HeaderDictionary applies Header to every entry of headers, so nil
// entries remove the corresponding header.
func (r *Request) HeaderDictionary(headers map[string]interface{}) *Request {
	for k, v := range headers {
		r.Header(k, v)
	}
	return r
}

// ContentType sets the Content-Type header.
func (r *Request) ContentType(ct ContentType) *Request {
	r.header[contentTypeHeader] = ct.String()
	return r
}

// WithAuthenticator sets the authenticator applied by Authorized,
// without applying it.
func (r *Request) WithAuthenticator(a Authenticator) *Request {
	r.authenticator = a
	return r
}

// AuthorizedWith sets the authenticator and applies it at once. It is
// equivalent to WithAuthenticator(a).Authorized().
func (r *Request) AuthorizedWith(a Authenticator) *Request {
	return r.WithAuthenticator(a).Authorized()
}

// Authorized applies the authenticator and returns its result, marked
// as authorized. It panics if no authenticator is set.
func (r *Request) Authorized() *Request {
	if r.authenticator == nil {
		panic(noAuthenticatorMsg)
	}
	ar := r.authenticator.AuthorizeRequest(r)
	if ar == nil {
		panic(nilAuthorizedMsg)
	}
	ar.authorized = true
	return ar
}

// Stub sets stub data. If mode is omitted the stub is returned
// immediately.
func (r *Request) Stub(data []byte, mode ...StubMode) *Request {
	m := StubImmediate
	if len(mode) > 0 {
		m = mode[0]
	}
	r.stub = &StubData{Data: data, Mode: m}
	return r
}

// StubString sets stub data from s. It does nothing if s is not valid
// UTF-8.
func (r *Request) StubString(s string, mode ...StubMode) *Request {
	if !utf8.ValidString(s) {
		return r
	}
	return r.Stub([]byte(s), mode...)
}

// StubJSON sets stub data to the JSON encoding of v. It does nothing
// if v cannot be encoded.
func (r *Request) StubJSON(v interface{}, mode ...StubMode) *Request {
	data, err := json.Marshal(v)
	if err != nil {
		return r
	}
	return r.Stub(data, mode...)
}

// WithErrorHandlers replaces the error handler chain.
func (r *Request) WithErrorHandlers(handlers ...ErrorHandler) *Request {
	r.errorHandlers = handlers
	return r
}

// WithPlugins replaces the plug-in list.
func (r *Request) WithPlugins(plugins ...Plugin) *Request {
	r.plugins = plugins
	return r
}

// WithTimeout sets the request timeout. Zero means no deadline.
// Negative values panic.
func (r *Request) WithTimeout(d time.Duration) *Request {
	if d < 0 {
		panic("rage: negative timeout")
	}
	r.timeout = d
	return r
}

// WithTimeoutMillis is WithTimeout expressed in milliseconds.
func (r *Request) WithTimeoutMillis(ms int) *Request {
	return r.WithTimeout(time.Duration(ms) * time.Millisecond)
}

// WithSessions sets the session provider. Nil restores DefaultSessions.
func (r *Request) WithSessions(p SessionProvider) *Request {
	r.sessions = p
	return r
}

// WithExecutors sets the executors used by Enqueue. A nil executor
// restores the corresponding default.
func (r *Request) WithExecutors(background, foreground Executor) *Request {
	r.background = background
	r.foreground = foreground
	return r
}

// Method returns the HTTP method.
func (r *Request) Method() Method { return r.method }

// BaseURL returns the base URL.
func (r *Request) BaseURL() string { return r.baseURL }

// PathTemplate returns the unresolved path template.
func (r *Request) PathTemplate() string { return r.path }

// QueryValue returns a query parameter and whether it is set.
func (r *Request) QueryValue(key string) (string, bool) {
	v, ok := r.query[key]
	return v, ok
}

// PathValue returns a bound path parameter and whether it is set.
func (r *Request) PathValue(name string) (string, bool) {
	v, ok := r.pathParams[name]
	return v, ok
}

// HeaderValue returns a header and whether it is set. The lookup is
// case-sensitive, matching how headers are stored.
func (r *Request) HeaderValue(name string) (string, bool) {
	v, ok := r.header[name]
	return v, ok
}

// Body returns the body bytes, or nil for no body.
func (r *Request) Body() []byte { return r.body }

// Timeout returns the request timeout. Zero means no deadline.
func (r *Request) Timeout() time.Duration { return r.timeout }

// StubData returns the stub data, or nil if none is set.
func (r *Request) StubData() *StubData { return r.stub }

// IsStubbed reports whether the next Send will use stub data instead
// of the network.
func (r *Request) IsStubbed() bool {
	return r.stub != nil && r.stub.Mode != StubNever
}

// IsAuthorized reports whether the request came out of Authorized.
func (r *Request) IsAuthorized() bool { return r.authorized }

// Authenticator returns the authenticator, or nil.
func (r *Request) Authenticator() Authenticator { return r.authenticator }

// ErrorHandlers returns the error handler chain.
func (r *Request) ErrorHandlers() []ErrorHandler { return r.errorHandlers }

// Plugins returns the plug-in list.
func (r *Request) Plugins() []Plugin { return r.plugins }

// stringify renders a builder value, reporting false for nil. Pointers
// are dereferenced before formatting so *int(5) renders as "5".
func stringify(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}
