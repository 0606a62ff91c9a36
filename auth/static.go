// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"github.com/gogama/rage"
	"github.com/gogama/rage/request"
)

const authorizationHeader = "Authorization"

// Basic returns an authenticator which sets an HTTP Basic
// Authorization header.
func Basic(username, password string) rage.Authenticator {
	value := "Basic " + request.BasicAuth(username, password)
	return Header(authorizationHeader, value)
}

// Bearer returns an authenticator which sets a bearer token
// Authorization header.
func Bearer(token string) rage.Authenticator {
	return Header(authorizationHeader, "Bearer "+token)
}

// Header returns an authenticator which sets the header name to value,
// for example an API key header.
func Header(name, value string) rage.Authenticator {
	return rage.AuthenticatorFunc(func(r *rage.Request) *rage.Request {
		return r.Header(name, value)
	})
}

// Query returns an authenticator which sets the query parameter name
// to value.
func Query(name, value string) rage.Authenticator {
	return rage.AuthenticatorFunc(func(r *rage.Request) *rage.Request {
		return r.Query(name, value)
	})
}
