// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import "github.com/gogama/rage/request"

// A Method is an HTTP request method.
type Method string

// HTTP methods known to rage. Any other RFC 7230 token is accepted as
// an extension method.
const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

// HasBody reports whether requests using the method may carry a body.
// Only POST, PUT and PATCH do.
func (m Method) HasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	default:
		return false
	}
}

// Valid reports whether the method is a syntactically valid token.
func (m Method) Valid() bool {
	return request.ValidMethod(string(m))
}

// String returns the method name.
func (m Method) String() string {
	return string(m)
}

// A ContentType is the body encoding advertised in the Content-Type
// header. The value is the canonical header string.
type ContentType string

const (
	// JSON is application/json.
	JSON ContentType = "application/json"
	// URLEncoded is application/x-www-form-urlencoded.
	URLEncoded ContentType = "application/x-www-form-urlencoded"
	// MultipartFormData is multipart/form-data.
	MultipartFormData ContentType = "multipart/form-data"
)

// CustomContentType returns a content type rendered verbatim as s.
func CustomContentType(s string) ContentType {
	return ContentType(s)
}

// String returns the canonical Content-Type header value.
func (ct ContentType) String() string {
	return string(ct)
}
