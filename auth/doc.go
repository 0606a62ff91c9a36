// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package auth provides ready-made rage.Authenticator implementations
// for HTTP Basic authentication, static bearer tokens, API keys and
// OAuth2 access tokens.
//
// Authenticators never do I/O. The OAuth2 authenticator therefore only
// applies a token it already holds; fetching a token happens in
// OAuth2.Refresh, which is called explicitly or by the error handler
// returned from OAuth2.RefreshHandler when the server answers 401:
//
//	o := auth.ClientCredentials(&clientcredentials.Config{...})
//	client := &rage.Client{
//		BaseURL:       "https://api.example.com",
//		Authenticator: o,
//		ErrorHandlers: []rage.ErrorHandler{o.RefreshHandler()},
//	}
//	res := client.Get("/me").Authorized().Execute()
package auth
