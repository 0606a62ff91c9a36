// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"time"

	"github.com/gogama/rage"
	"github.com/golang-jwt/jwt/v4"
)

// DefaultJWTLifetime is the lifetime of tokens minted by a JWT
// authenticator with no TTL.
const DefaultJWTLifetime = 5 * time.Minute

// JWT is an authenticator which mints a fresh signed bearer token for
// every request it authorizes, as used for service-to-service calls.
//
// If signing fails, for example because Key does not suit Method, the
// request is returned without an Authorization header.
type JWT struct {
	// Method is the signing method. Nil means HS256.
	Method jwt.SigningMethod
	// Key is the signing key, a []byte for the HMAC methods.
	Key      interface{}
	Issuer   string
	Subject  string
	Audience []string
	// TTL is the token lifetime. Zero means DefaultJWTLifetime.
	TTL time.Duration
	// Now returns the issue time. Nil means time.Now.
	Now func() time.Time
}

// Sign returns a newly signed token.
func (j *JWT) Sign() (string, error) {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	ttl := j.TTL
	if ttl == 0 {
		ttl = DefaultJWTLifetime
	}
	method := j.Method
	if method == nil {
		method = jwt.SigningMethodHS256
	}

	iat := now()
	claims := jwt.RegisteredClaims{
		Issuer:    j.Issuer,
		Subject:   j.Subject,
		Audience:  j.Audience,
		IssuedAt:  jwt.NewNumericDate(iat),
		NotBefore: jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(iat.Add(ttl)),
	}
	return jwt.NewWithClaims(method, claims).SignedString(j.Key)
}

// AuthorizeRequest sets a bearer Authorization header with a token
// from Sign.
func (j *JWT) AuthorizeRequest(r *rage.Request) *rage.Request {
	token, err := j.Sign()
	if err != nil {
		return r
	}
	return r.Header(authorizationHeader, "Bearer "+token)
}
