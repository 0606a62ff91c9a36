// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
	"net/http"
	"sync"

	"github.com/gogama/rage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuth2 is an authenticator which applies an OAuth2 access token. It
// is safe for concurrent use by multiple goroutines.
type OAuth2 struct {
	source oauth2.TokenSource
	mu     sync.Mutex
	token  *oauth2.Token
}

// NewOAuth2 returns an authenticator whose tokens come from src. Each
// Refresh calls src.Token once, so src should not cache tokens the
// server has already rejected.
func NewOAuth2(src oauth2.TokenSource) *OAuth2 {
	if src == nil {
		panic("rage/auth: nil token source")
	}
	return &OAuth2{source: src}
}

// ClientCredentials returns an authenticator using the OAuth2 client
// credentials grant. Every Refresh requests a new token from the token
// endpoint.
func ClientCredentials(cfg *clientcredentials.Config) *OAuth2 {
	return NewOAuth2(tokenFunc(func() (*oauth2.Token, error) {
		return cfg.Token(context.Background())
	}))
}

type tokenFunc func() (*oauth2.Token, error)

func (f tokenFunc) Token() (*oauth2.Token, error) {
	return f()
}

// AuthorizeRequest sets the Authorization header from the held token.
// If no valid token is held the request is returned unchanged.
func (o *OAuth2) AuthorizeRequest(r *rage.Request) *rage.Request {
	tok := o.Token()
	if !tok.Valid() {
		return r
	}
	return r.Header(authorizationHeader, tok.Type()+" "+tok.AccessToken)
}

// Token returns the held token, or nil.
func (o *OAuth2) Token() *oauth2.Token {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.token
}

// Refresh fetches a new token from the token source and holds it.
func (o *OAuth2) Refresh() error {
	tok, err := o.source.Token()
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.token = tok
	o.mu.Unlock()
	return nil
}

// RefreshHandler returns an error handler which, when a request fails
// with 401 Unauthorized, refreshes the token, re-authorizes the request
// and sends it once more.
func (o *OAuth2) RefreshHandler() *RefreshHandler {
	return &RefreshHandler{Auth: o}
}

// A RefreshHandler is a rage.ErrorHandler refreshing an OAuth2 token.
type RefreshHandler struct {
	Auth     *OAuth2
	Disabled bool
	// Statuses lists the HTTP status codes which trigger a refresh. If
	// empty, only 401 does.
	Statuses []int
}

// Enabled reports !h.Disabled.
func (h *RefreshHandler) Enabled() bool {
	return !h.Disabled
}

// CanHandleError reports whether err carries one of the refresh status
// codes.
func (h *RefreshHandler) CanHandleError(err *rage.Error) bool {
	statuses := h.Statuses
	if len(statuses) == 0 {
		statuses = []int{http.StatusUnauthorized}
	}
	return rage.OnStatus(statuses...)(err)
}

// HandleErrorForRequest refreshes the token and re-sends r. If the
// refresh fails the incoming result is returned unchanged.
func (h *RefreshHandler) HandleErrorForRequest(r *rage.Request, res rage.Result) rage.Result {
	if err := h.Auth.Refresh(); err != nil {
		return res
	}
	return h.Auth.AuthorizeRequest(r).Send()
}
