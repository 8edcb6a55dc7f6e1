package compress

import "github.com/belugareader/mdict/internal/lzo"

// lzoDecompress inverts a block body compressed with LZO1X, pre-sizing the
// output to sizeHint.
func lzoDecompress(body []byte, sizeHint int) ([]byte, error) {
	return lzo.Decompress(body, sizeHint)
}
