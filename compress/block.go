// Package compress implements the MDX/MDD block codec: every compressed
// unit in the format is an 8-byte header plus a body, optionally encrypted,
// compressed with one of three algorithms.
package compress

import (
	"fmt"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/internal/keycrypt"
)

// headerSize is the fixed size, in bytes, of the block header that
// precedes every compressed unit.
const headerSize = 8

// Header is the 8-byte block header: a compression-kind byte, 3 reserved
// bytes, and a big-endian Adler-32 checksum of the decompressed body (also
// the encryption key seed).
type Header struct {
	Kind  format.CompressionKind
	Adler [4]byte
}

// ParseHeader reads the 8-byte header from the front of raw.
func ParseHeader(raw []byte) (Header, error) {
	if len(raw) < headerSize {
		return Header{}, fmt.Errorf("%w: block header needs %d bytes, got %d", errs.ErrCorruptBlock, headerSize, len(raw))
	}

	var h Header
	h.Kind = format.CompressionKind(raw[0])
	copy(h.Adler[:], raw[4:8])

	return h, nil
}

// DecodeBlock strips the header, optionally decrypts the body
// (keyword-index blocks only, keyed by the header's Adler-32 seed), then
// decompresses per the header's compression kind. decompLenHint presizes
// the LZO output buffer; it is advisory only for zlib and raw blocks.
func DecodeBlock(raw []byte, decompLenHint int, encMode format.EncryptionMode) ([]byte, error) {
	h, err := ParseHeader(raw)
	if err != nil {
		return nil, err
	}

	if h.Kind == format.CompressionRaw {
		return raw[headerSize:], nil
	}

	body := make([]byte, len(raw)-headerSize)
	copy(body, raw[headerSize:])

	if encMode.Encrypted() {
		key := keycrypt.DeriveKey(h.Adler)
		keycrypt.Decrypt(body, key)
	}

	switch h.Kind {
	case format.CompressionZlib:
		out, err := zlibDecompress(body)
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %v", errs.ErrCorruptBlock, err)
		}
		return out, nil

	case format.CompressionLZO:
		out, err := lzoDecompress(body, decompLenHint)
		if err != nil {
			return nil, fmt.Errorf("%w: lzo: %v", errs.ErrCorruptBlock, err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: compress_kind=%d", errs.ErrUnknownCompression, h.Kind)
	}
}
