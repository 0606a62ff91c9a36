// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts transport failures seen while executing a
// rage request into transient and non-transient buckets. Retry error
// handlers use it to decide whether a failed call is worth repeating,
// and rage.Error uses it to answer Timeout and Transient queries.
//
// The package depends only on the standard library.
package transient
