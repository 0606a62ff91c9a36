// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/gogama/rage/request"
)

const wrongMethodForBodyMsg = "rage: can't add body to request with such HTTP method"

func (r *Request) requireBody() {
	if !r.method.HasBody() {
		panic(wrongMethodForBodyMsg)
	}
}

func (r *Request) setBody(data []byte) {
	r.body = data
	r.bodyErr = nil
}

// A BodyRequest is a Request with a raw body. It is obtained from
// Request.WithBody.
type BodyRequest struct {
	*Request
}

// WithBody returns a body-capable view of r. It panics unless the
// method is POST, PUT or PATCH.
func (r *Request) WithBody() *BodyRequest {
	r.requireBody()
	return &BodyRequest{r}
}

// BodyBytes sets the body.
func (b *BodyRequest) BodyBytes(data []byte) *BodyRequest {
	b.requireBody()
	b.setBody(data)
	return b
}

// BodyString sets the body to s.
func (b *BodyRequest) BodyString(s string) *BodyRequest {
	b.requireBody()
	b.setBody([]byte(s))
	return b
}

// BodyFrom sets the body from nil, a string, a []byte, an io.Reader or
// an io.ReadCloser. Readers are drained immediately. An unsupported
// type or a read failure is reported as a configuration error when the
// request is sent.
func (b *BodyRequest) BodyFrom(body interface{}) *BodyRequest {
	b.requireBody()
	data, err := request.BodyBytes(body)
	if err != nil {
		b.body = nil
		b.bodyErr = err
		return b
	}
	b.setBody(data)
	return b
}

// BodyJSON sets the body to the JSON encoding of v and the
// Content-Type to JSON. It does nothing if v cannot be encoded.
func (b *BodyRequest) BodyJSON(v interface{}) *BodyRequest {
	b.requireBody()
	data, err := json.Marshal(v)
	if err != nil {
		return b
	}
	b.ContentType(JSON)
	b.setBody(data)
	return b
}

// A MultipartRequest is a Request whose body is multipart/form-data.
// The body is re-encoded after every added part, with a boundary fixed
// when the MultipartRequest is created.
type MultipartRequest struct {
	*Request
	boundary string
	parts    []formPart
}

type formPart struct {
	header textproto.MIMEHeader
	data   []byte
}

// Multipart returns a multipart view of r with an empty form. It panics
// unless the method is POST, PUT or PATCH.
func (r *Request) Multipart() *MultipartRequest {
	r.requireBody()
	m := &MultipartRequest{
		Request:  r,
		boundary: multipart.NewWriter(io.Discard).Boundary(),
	}
	m.encode()
	return m
}

// Boundary returns the multipart boundary.
func (m *MultipartRequest) Boundary() string {
	return m.boundary
}

// Field adds a form field.
func (m *MultipartRequest) Field(name, value string) *MultipartRequest {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(name)))
	return m.Part(h, []byte(value))
}

// File adds a file part with content type application/octet-stream.
func (m *MultipartRequest) File(field, filename string, data []byte) *MultipartRequest {
	return m.FileWithType(field, filename, "application/octet-stream", data)
}

// FileWithType adds a file part with the given content type.
func (m *MultipartRequest) FileWithType(field, filename, contentType string, data []byte) *MultipartRequest {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(field), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return m.Part(h, data)
}

// Part adds a part with an arbitrary header.
func (m *MultipartRequest) Part(header textproto.MIMEHeader, data []byte) *MultipartRequest {
	m.parts = append(m.parts, formPart{header: header, data: data})
	m.encode()
	return m
}

func (m *MultipartRequest) encode() {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	// Boundary came from multipart.NewWriter, so it is always valid.
	_ = w.SetBoundary(m.boundary)
	for _, p := range m.parts {
		pw, err := w.CreatePart(p.header)
		if err != nil {
			m.bodyErr = err
			return
		}
		_, _ = pw.Write(p.data)
	}
	_ = w.Close()
	m.header[contentTypeHeader] = w.FormDataContentType()
	m.setBody(buf.Bytes())
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// A FormRequest is a Request whose body is an URL-encoded form. The
// body is re-encoded after every change.
type FormRequest struct {
	*Request
	values url.Values
}

// FormURLEncoded returns a form view of r with an empty form. It
// panics unless the method is POST, PUT or PATCH.
func (r *Request) FormURLEncoded() *FormRequest {
	r.requireBody()
	f := &FormRequest{Request: r, values: url.Values{}}
	f.encode()
	return f
}

// Field sets a form field, replacing any previous values.
func (f *FormRequest) Field(key, value string) *FormRequest {
	f.values.Set(key, value)
	f.encode()
	return f
}

// Fields adds every value in values.
func (f *FormRequest) Fields(values url.Values) *FormRequest {
	for k, vs := range values {
		for _, v := range vs {
			f.values.Add(k, v)
		}
	}
	f.encode()
	return f
}

// Values returns a copy of the form.
func (f *FormRequest) Values() url.Values {
	c := make(url.Values, len(f.values))
	for k, vs := range f.values {
		c[k] = append([]string(nil), vs...)
	}
	return c
}

func (f *FormRequest) encode() {
	f.header[contentTypeHeader] = URLEncoded.String()
	f.setBody([]byte(f.values.Encode()))
}
