package ripemd128

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test vectors from the original RIPEMD-128 specification
// (Dobbertin, Bosselaers, Preneel, 1996).
func TestVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "cdf26213a150dc3ecb610f18f6b38b46"},
		{"a", "86be7afa339d0fc7cfc785e72f578d33"},
		{"abc", "c14a12199c66e4ba84636b0f69144c77"},
		{"message digest", "9e327b3d6e523062afc1132d7df9d1b8"},
		{"abcdefghijklmnopqrstuvwxyz", "fd2aa607f71dc8f510714922b371834e"},
	}

	for _, tt := range tests {
		got := Sum128([]byte(tt.in))
		require.Equal(t, tt.want, hex.EncodeToString(got[:]), "input %q", tt.in)
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated for a multi-block message")

	d := New()
	d.Write(data[:10])
	d.Write(data[10:])
	streamed := d.Sum(nil)

	oneShot := Sum128(data)

	require.Equal(t, oneShot[:], streamed)
}
