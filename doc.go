// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package rage provides a declarative HTTP request builder and a small
execution pipeline with plug-ins, authentication, error handlers and
stubbing.

Create a Client holding the defaults for an API, then build and run
requests from it:

	client := &rage.Client{
		BaseURL: "https://api.example.com",
		Header:  map[string]string{"Api-Version": "2"},
	}
	res := client.Get("/users/{id}").
		Path("id", 42).
		Query("expand", "repos").
		Execute()
	resp, err := res.Get()
	...

Requests with a body are built through a body-capable view, which
panics for methods other than POST, PUT and PATCH:

	res := client.Post("/users").
		WithBody().
		BodyJSON(&user).
		Execute()

To decode a JSON response into a value, use ExecuteObject:

	user, err := rage.ExecuteObject[User](client.Get("/users/42"))

Enqueue runs a request on the background executor and delivers the
result on the foreground executor. By default the background executor
starts a goroutine per request and the foreground executor is a single
package-level Loop, so completions never run concurrently with one
another:

	client.Get("/status").Enqueue(func(res rage.Result) {
		...
	})

An Authenticator is attached to every request the client creates but
only applied by Authorized:

	client.Authenticator = auth.Bearer(token)
	res := client.Get("/me").Authorized().Execute()

Plug-ins observe every request at three points: before the HTTP request
is built, before it is dispatched, and after the response arrives. Use
Hooks to assemble a plug-in from functions:

	log := log.New(os.Stdout, "", log.LstdFlags)
	hooks := &rage.Hooks{}
	hooks.PushBack(rage.DidSendRequest, rage.HookFunc(
		func(_ rage.Event, x *rage.Exchange) {
			log.Printf("Sending %s %s", x.Raw.Method, x.Raw.URL)
		}),
	)
	client.Plugins = []rage.Plugin{hooks}

Error handlers get a chance to recover from a failed request, for
example by retrying it. See package retry for a retrying handler and
package auth for a handler that refreshes an OAuth2 token.

Stub data replaces the network exchange, optionally after a delay:

	res := client.Get("/users").
		StubString(`[{"id":1}]`, rage.StubDelayedMillis(200)).
		Execute()
*/
package rage
