// Copyright 2021 The rage Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"io"
)

const badBodyTypeMsg = "rage/request: body must be nil, string, []byte or io.Reader"

// BodyBytes converts a loosely typed body to bytes. A nil body yields a
// nil slice. A []byte is returned without copying. An io.Reader is
// drained, and closed if it is also an io.Closer, even when reading
// fails; the read error wins over the close error.
func BodyBytes(body interface{}) ([]byte, error) {
	switch x := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	case io.Reader:
		return drain(x)
	}
	return nil, fmt.Errorf("%s, not %T", badBodyTypeMsg, body)
}

func drain(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if c, ok := r.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
