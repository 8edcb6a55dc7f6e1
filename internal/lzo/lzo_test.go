package lzo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// eofMarker is the standard LZO1X end-of-stream token: an M4 opcode with a
// zero-valued distance field.
var eofMarker = []byte{0x11, 0x00, 0x00}

func TestDecompressEmpty(t *testing.T) {
	out, err := Decompress(nil, 0)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestDecompressAllLiteral(t *testing.T) {
	// first byte = 17 + len("ABCDE") = 22, a literal run with no match.
	stream := append([]byte{22}, []byte("ABCDE")...)
	stream = append(stream, eofMarker...)

	out, err := Decompress(stream, 5)
	require.NoError(t, err)
	require.Equal(t, "ABCDE", string(out))
}

func TestDecompressShortBackReference(t *testing.T) {
	// Literal run "AB" (t=2, below the t<4 compact-run special case), then
	// an M1-style short match copying "AB" again: distance=2, length=2
	// (fixed), tail=0. distance = 1 + (t>>2) + (lo<<2); t=4, lo=0 gives
	// distance=2 with tail = t&3 = 0.
	stream := []byte{19, 'A', 'B', 0x04, 0x00}
	stream = append(stream, eofMarker...)

	out, err := Decompress(stream, 4)
	require.NoError(t, err)
	require.Equal(t, "ABAB", string(out))
}

func TestDecompressTruncated(t *testing.T) {
	_, err := Decompress([]byte{22, 'A'}, 0)
	require.Error(t, err)
}
