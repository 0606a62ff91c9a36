// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout provides policies for the timeout of each attempt a
// retrying error handler makes, such as retry.Handler:
//
//	h := &retry.Handler{
//		Timeout: timeout.Within(30*time.Second, timeout.Adaptive(time.Second, 5*time.Second)),
//	}
package timeout
