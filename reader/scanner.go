package reader

import (
	"fmt"
	"unicode/utf16"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/width"
)

// Scanner mirrors Reader's contract over an already-decoded in-memory
// buffer: a decompressed keyword-index block, keyword block, or record
// block. It additionally knows the file's text encoding and width, since
// every region it's used on needs text and width-polymorphic decoding.
type Scanner struct {
	buf      []byte
	pos      int
	w        width.Width
	enc      format.TextEncoding
	textTail int // bytes to skip after a fixed-size text field; see width.TextTailSize
}

// NewScanner wraps buf for sequential decoding using width w and text
// encoding enc.
func NewScanner(buf []byte, w width.Width, enc format.TextEncoding) *Scanner {
	return &Scanner{
		buf:      buf,
		w:        w,
		enc:      enc,
		textTail: w.TextTailSize(enc == format.TextEncodingUTF16LE),
	}
}

// Seek moves the cursor to an absolute offset within the buffer.
func (s *Scanner) Seek(pos int) { s.pos = pos }

// Forward advances the cursor by n bytes.
func (s *Scanner) Forward(n int) { s.pos += n }

// Pos returns the current offset within the buffer.
func (s *Scanner) Pos() int { return s.pos }

// Len returns the total buffer length.
func (s *Scanner) Len() int { return len(s.buf) }

// Remaining returns the number of unread bytes.
func (s *Scanner) Remaining() int { return len(s.buf) - s.pos }

// Read reads exactly n bytes and advances the cursor.
func (s *Scanner) Read(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.buf) {
		return nil, fmt.Errorf("%w: pos=%d want=%d len=%d", errs.ErrTruncatedInput, s.pos, n, len(s.buf))
	}

	b := s.buf[s.pos : s.pos+n]
	s.pos += n

	return b, nil
}

// ReadUint16BE reads a 2-byte big-endian unsigned integer.
func (s *Scanner) ReadUint16BE() (uint16, error) {
	b, err := s.Read(2)
	if err != nil {
		return 0, err
	}

	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadWidth reads a width-wide big-endian unsigned integer (4 or 8 bytes,
// per the scanner's width).
func (s *Scanner) ReadWidth() (uint64, error) {
	b, err := s.Read(s.w.Size())
	if err != nil {
		return 0, err
	}

	return s.w.Uint(b), nil
}

// ReadShortWidth reads the "short number" used for the first_word/last_word
// length prefixes in a keyword-index block: a u16 in v2, a single byte in
// v1.
func (s *Scanner) ReadShortWidth() (uint16, error) {
	if s.w.V2() {
		return s.ReadUint16BE()
	}

	b, err := s.Read(1)
	if err != nil {
		return 0, err
	}

	return uint16(b[0]), nil
}

// ReadText reads a fixed-size text field of nChars code units (UTF-16LE
// code units if the encoding is utf16, bytes if utf8), then skips the
// trailing NUL pad that exists only in v2 (width.TextTailSize).
func (s *Scanner) ReadText(nChars int) (string, error) {
	n := nChars
	if s.enc == format.TextEncodingUTF16LE {
		n = nChars * 2
	}

	b, err := s.Read(n)
	if err != nil {
		return "", err
	}

	text, err := s.decode(b)
	if err != nil {
		return "", err
	}

	s.Forward(s.textTail)

	return text, nil
}

// ReadTextUnsized reads a NUL-terminated text field (2 bytes of 0x0000 in
// utf16, one 0x00 byte in utf8) and consumes the terminator.
func (s *Scanner) ReadTextUnsized() (string, error) {
	start := s.pos
	unit := 1
	if s.enc == format.TextEncodingUTF16LE {
		unit = 2
	}

	i := start
	for {
		if i+unit > len(s.buf) {
			return "", fmt.Errorf("%w: unterminated text at %d", errs.ErrTruncatedInput, start)
		}

		terminated := true
		for j := range unit {
			if s.buf[i+j] != 0 {
				terminated = false
				break
			}
		}
		if terminated {
			break
		}
		i += unit
	}

	text, err := s.decode(s.buf[start:i])
	if err != nil {
		return "", err
	}

	s.pos = i + unit

	return text, nil
}

// decode interprets b as this scanner's text encoding.
func (s *Scanner) decode(b []byte) (string, error) {
	if s.enc != format.TextEncodingUTF16LE {
		return string(b), nil
	}

	if len(b)%2 != 0 {
		return "", fmt.Errorf("%w: odd-length utf16 text (%d bytes)", errs.ErrDecodeError, len(b))
	}

	// MDX text is little-endian UTF-16 regardless of the file's overall
	// big-endian numeric encoding.
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}

	return string(utf16.Decode(units)), nil
}
