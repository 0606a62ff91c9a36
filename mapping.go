// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rage

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

const parseObjectMsg = "Couldn't parse object from JSON"

// ExecuteObject executes r and decodes the JSON response body into a
// T. A body which is not valid JSON, or which does not fit T, yields a
// KindConfiguration error. Any error returned is an *Error.
func ExecuteObject[T any](r *Request) (T, error) {
	return decodeResult[T](r.Execute())
}

// ExecuteObjects executes r and decodes a JSON array response body
// into a []T.
func ExecuteObjects[T any](r *Request) ([]T, error) {
	return decodeResult[[]T](r.Execute())
}

// EnqueueObject is the asynchronous form of ExecuteObject. The
// completion is called once, on the request's foreground executor.
func EnqueueObject[T any](r *Request, completion func(T, error)) {
	if completion == nil {
		panic(nilCompletionMsg)
	}
	r.Enqueue(func(res Result) {
		completion(decodeResult[T](res))
	})
}

// EnqueueObjects is the asynchronous form of ExecuteObjects.
func EnqueueObjects[T any](r *Request, completion func([]T, error)) {
	EnqueueObject[[]T](r, completion)
}

// Decode decodes the JSON body of resp into a T, reporting failures as
// KindConfiguration errors.
func Decode[T any](resp *Response) (T, error) {
	var v T
	if !gjson.ValidBytes(resp.Data) {
		return v, &Error{Kind: KindConfiguration, Response: resp, Message: parseObjectMsg}
	}
	if err := json.Unmarshal(resp.Data, &v); err != nil {
		return v, &Error{Kind: KindConfiguration, Response: resp, Message: parseObjectMsg, Err: err}
	}
	return v, nil
}

func decodeResult[T any](res Result) (T, error) {
	if res.Err != nil {
		var zero T
		return zero, res.Err
	}
	return Decode[T](res.Response)
}
