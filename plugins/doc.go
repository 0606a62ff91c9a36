// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package plugins contains general purpose rage.Plugin implementations.
//
// Logger writes one line per pipeline event, tagging every line of a
// request with a correlation ID. Metrics records response latency in an
// HDR histogram and counts responses by status code.
package plugins
