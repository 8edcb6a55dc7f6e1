package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibDecompress inflates a zlib-wrapped block body into an unbounded
// buffer.
func zlibDecompress(body []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
