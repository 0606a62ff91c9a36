// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

// Parts holds the unresolved pieces of a logical HTTP request, as
// accumulated by a rage request builder.
type Parts struct {
	// Method is the HTTP method. An empty string means GET.
	Method string
	// BaseURL is the URL the path is appended to. It may carry its own
	// query string.
	BaseURL string
	// Path is an optional path template appended to BaseURL. It may
	// contain {name} placeholders.
	Path string
	// PathParams supplies values for the placeholders in Path.
	PathParams map[string]string
	// Query holds query parameters merged into the URL.
	Query map[string]string
	// Header holds request header fields.
	Header map[string]string
	// Body is the pre-buffered request body. Nil or empty means no
	// body.
	Body []byte
}

// A Plan is a fully resolved HTTP request, ready to be converted into
// an http.Request for the transport.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	Method string

	// URL is the resolved URL, including the query string.
	URL *urlpkg.URL

	// Header contains the request header fields in canonical form.
	Header http.Header

	// Body is the pre-buffered request body to be sent.
	Body []byte

	// Host is the host to send in the Host header.
	Host string
}

// NewPlan resolves parts into a Plan.
//
// The path template is resolved against the path parameters and joined
// to the base URL; the query parameters are merged into the URL; the
// method and header fields are validated against RFC 7230. An error is
// returned if the method is not a valid token, the resulting URL does
// not parse, a header field name or value is invalid, or two header
// names differ only in case.
func NewPlan(parts Parts) (*Plan, error) {
	method := parts.Method
	if method == "" {
		method = "GET"
	}
	if !ValidMethod(method) {
		return nil, fmt.Errorf("rage/request: invalid method %q", method)
	}

	raw := JoinURL(parts.BaseURL, ResolvePath(parts.Path, parts.PathParams))
	u, err := urlpkg.Parse(raw)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	if len(parts.Query) > 0 {
		q := u.Query()
		for k, v := range parts.Query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	h := make(http.Header, len(parts.Header))
	for k, v := range parts.Header {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("rage/request: invalid header field name %q", k)
		}
		if !httpguts.ValidHeaderFieldValue(v) {
			return nil, fmt.Errorf("rage/request: invalid header field value for %q", k)
		}
		ck := http.CanonicalHeaderKey(k)
		if _, dup := h[ck]; dup {
			return nil, fmt.Errorf("rage/request: header %q set more than once with different case", ck)
		}
		h[ck] = []string{v}
	}

	return &Plan{
		Method: method,
		URL:    u,
		Header: h,
		Body:   parts.Body,
		Host:   u.Host,
	}, nil
}

// ResolvePath replaces every {name} placeholder in template with the
// path-escaped value of params[name]. Placeholders with no entry in
// params, and unterminated braces, are left untouched.
func ResolvePath(template string, params map[string]string) string {
	if template == "" || len(params) == 0 {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			break
		}
		end += open
		b.WriteString(rest[:open])
		name := rest[open+1 : end]
		if v, ok := params[name]; ok {
			b.WriteString(urlpkg.PathEscape(v))
		} else {
			b.WriteString(rest[open : end+1])
		}
		rest = rest[end+1:]
	}
	b.WriteString(rest)
	return b.String()
}

// JoinURL appends path to base with exactly one slash between them.
// If either is empty the other is returned unchanged.
func JoinURL(base, path string) string {
	switch {
	case path == "":
		return base
	case base == "":
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// ToRequest creates an HTTP request corresponding to the plan. The
// context of the new request is set to ctx, which may not be nil.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header
	if len(p.Body) > 0 {
		r.Body = io.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	r.Host = p.Host
	return r
}

// BasicAuth returns the base64 credentials for HTTP Basic
// Authentication, without the "Basic " prefix.
//
// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func BasicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// ValidMethod reports whether method is a valid RFC 7230 token.
func ValidMethod(method string) bool {
	/*
	     Method         = "OPTIONS"                ; Section 9.2
	                    | "GET"                    ; Section 9.3
	                    | "HEAD"                   ; Section 9.4
	                    | "POST"                   ; Section 9.5
	                    | "PUT"                    ; Section 9.6
	                    | "DELETE"                 ; Section 9.7
	                    | "TRACE"                  ; Section 9.8
	                    | "CONNECT"                ; Section 9.9
	                    | extension-method
	   extension-method = token
	     token          = 1*<any CHAR except CTLs or separators>
	*/
	return len(method) > 0 && strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
