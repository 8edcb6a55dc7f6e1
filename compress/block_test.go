package compress

import (
	"testing"

	"github.com/belugareader/mdict/format"
	"github.com/stretchr/testify/require"
)

func TestDecodeBlockRaw(t *testing.T) {
	body := []byte("unpacked bytes")
	raw := append([]byte{byte(format.CompressionRaw), 0, 0, 0, 0, 0, 0, 0}, body...)

	out, err := DecodeBlock(raw, len(body), format.EncryptionNone)
	require.NoError(t, err)
	require.Equal(t, body, out)
}

func TestDecodeBlockZlib(t *testing.T) {
	// Fixture generated via: zlib.compress(b"hello mdx block") in Python,
	// with the Adler-32 of the plaintext embedded as bytes 4..8.
	zlibBody := []byte{
		0x78, 0x9c, 0xcb, 0x48, 0xcd, 0xc9, 0xc9, 0x57, 0xc8, 0x4d, 0xa9,
		0x50, 0x48, 0xca, 0xc9, 0x4f, 0xce, 0x06, 0x00, 0x2d, 0x53, 0x05, 0xa9,
	}
	header := []byte{byte(format.CompressionZlib), 0, 0, 0, 0x2d, 0x53, 0x05, 0xa9}
	raw := append(header, zlibBody...)

	out, err := DecodeBlock(raw, 15, format.EncryptionNone)
	require.NoError(t, err)
	require.Equal(t, "hello mdx block", string(out))
}

func TestDecodeBlockUnknownCompression(t *testing.T) {
	raw := []byte{0x09, 0, 0, 0, 0, 0, 0, 0, 'x'}

	_, err := DecodeBlock(raw, 0, format.EncryptionNone)
	require.Error(t, err)
}

func TestDecodeBlockTooShort(t *testing.T) {
	_, err := DecodeBlock([]byte{1, 2, 3}, 0, format.EncryptionNone)
	require.Error(t, err)
}

func TestParseHeader(t *testing.T) {
	raw := []byte{2, 0, 0, 0, 0xaa, 0xbb, 0xcc, 0xdd, 'x', 'y'}
	h, err := ParseHeader(raw)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZlib, h.Kind)
	require.Equal(t, [4]byte{0xaa, 0xbb, 0xcc, 0xdd}, h.Adler)
}
