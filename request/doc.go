// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request turns the loose, string-keyed state of a rage request
builder into a concrete net/http request. It is the materialization
step of the rage execution pipeline, kept separate so that it can be
tested without any transport.

The input is a Parts value: a method, a base URL, an optional path
template containing {name} placeholders, path parameters, query
parameters, headers and a pre-buffered body.

	p, err := request.NewPlan(request.Parts{
		Method:     "GET",
		BaseURL:    "https://api.example.com",
		Path:       "/users/{id}/repos",
		PathParams: map[string]string{"id": "42"},
		Query:      map[string]string{"page": "2"},
	})
	...
	r := p.ToRequest(ctx)

Placeholders without a matching path parameter are left in the path
as literal text. Query parameters are merged into any query string the
base URL already carries.

The result is a Plan, a stripped-down mirror of http.Request holding
only the client-side fields rage needs. Plan.ToRequest produces a fresh
http.Request bound to a context each time it is called.
*/
package request
