package reader

import (
	"testing"

	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/width"
	"github.com/stretchr/testify/require"
)

func TestScannerReadWidth(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x2A, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2B}
	s := NewScanner(buf, width.Width32, format.TextEncodingUTF8)

	v, err := s.ReadWidth()
	require.NoError(t, err)
	require.Equal(t, uint64(0x2A), v)
	require.Equal(t, 4, s.Pos())

	s64 := NewScanner(buf[4:], width.Width64, format.TextEncodingUTF8)
	v, err = s64.ReadWidth()
	require.NoError(t, err)
	require.Equal(t, uint64(0x2B), v)
}

func TestScannerReadShortWidth(t *testing.T) {
	v1 := NewScanner([]byte{0x05}, width.Width32, format.TextEncodingUTF8)
	n, err := v1.ReadShortWidth()
	require.NoError(t, err)
	require.Equal(t, uint16(5), n)

	v2 := NewScanner([]byte{0x01, 0x02}, width.Width64, format.TextEncodingUTF8)
	n, err = v2.ReadShortWidth()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0102), n)
}

func TestScannerReadTextUTF8NoTail(t *testing.T) {
	// v1: no trailing NUL pad after a fixed-size text field.
	buf := append([]byte("hello"), 0xFF)
	s := NewScanner(buf, width.Width32, format.TextEncodingUTF8)
	text, err := s.ReadText(5)
	require.NoError(t, err)
	require.Equal(t, "hello", text)
	require.Equal(t, 5, s.Pos())
}

func TestScannerReadTextUTF8WithV2Tail(t *testing.T) {
	buf := append([]byte("hi"), 0x00, 0xAA)
	s := NewScanner(buf, width.Width64, format.TextEncodingUTF8)
	text, err := s.ReadText(2)
	require.NoError(t, err)
	require.Equal(t, "hi", text)
	require.Equal(t, 3, s.Pos()) // 2 chars + 1-byte NUL pad
}

func TestScannerReadTextUTF16(t *testing.T) {
	// "hi" little-endian UTF-16, with a v2 2-byte NUL pad following.
	buf := []byte{'h', 0x00, 'i', 0x00, 0x00, 0x00}
	s := NewScanner(buf, width.Width64, format.TextEncodingUTF16LE)
	text, err := s.ReadText(2)
	require.NoError(t, err)
	require.Equal(t, "hi", text)
	require.Equal(t, 6, s.Pos())
}

func TestScannerReadTextUnsizedUTF8(t *testing.T) {
	buf := []byte("hello\x00world")
	s := NewScanner(buf, width.Width32, format.TextEncodingUTF8)
	text, err := s.ReadTextUnsized()
	require.NoError(t, err)
	require.Equal(t, "hello", text)
	require.Equal(t, 6, s.Pos())
}

func TestScannerReadTextUnsizedUTF16(t *testing.T) {
	buf := []byte{'h', 0x00, 'i', 0x00, 0x00, 0x00, 'x', 0x00}
	s := NewScanner(buf, width.Width64, format.TextEncodingUTF16LE)
	text, err := s.ReadTextUnsized()
	require.NoError(t, err)
	require.Equal(t, "hi", text)
	require.Equal(t, 6, s.Pos())
}

func TestScannerReadTruncated(t *testing.T) {
	s := NewScanner([]byte{0x01, 0x02}, width.Width32, format.TextEncodingUTF8)
	_, err := s.Read(5)
	require.Error(t, err)
}

func TestScannerSeekForward(t *testing.T) {
	s := NewScanner([]byte{1, 2, 3, 4, 5}, width.Width32, format.TextEncodingUTF8)
	s.Seek(2)
	require.Equal(t, 2, s.Pos())
	s.Forward(1)
	require.Equal(t, 3, s.Pos())
	require.Equal(t, 2, s.Remaining())
	require.Equal(t, 5, s.Len())
}
