package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/belugareader/mdict/width"
	"github.com/stretchr/testify/require"
)

func openTempFile(t *testing.T, data []byte) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f
}

func TestReaderReadAndSeek(t *testing.T) {
	f := openTempFile(t, []byte{0x00, 0x00, 0x00, 0x2A, 'h', 'i'})
	r := New(f)

	v, err := r.ReadUint32BE()
	require.NoError(t, err)
	require.Equal(t, uint32(0x2A), v)

	b, err := r.Read(2)
	require.NoError(t, err)
	require.Equal(t, "hi", string(b))

	require.NoError(t, r.Seek(0))
	pos, err := r.Tell()
	require.NoError(t, err)
	require.Equal(t, int64(0), pos)
}

func TestReaderSkip(t *testing.T) {
	f := openTempFile(t, []byte{1, 2, 3, 4, 5})
	r := New(f)

	require.NoError(t, r.Skip(3))
	pos, err := r.Tell()
	require.NoError(t, err)
	require.Equal(t, int64(3), pos)

	b, err := r.Read(2)
	require.NoError(t, err)
	require.Equal(t, []byte{4, 5}, b)
}

func TestReaderTruncated(t *testing.T) {
	f := openTempFile(t, []byte{1, 2})
	r := New(f)

	_, err := r.Read(5)
	require.Error(t, err)
}

func TestReaderReadWidth(t *testing.T) {
	f := openTempFile(t, []byte{0, 0, 0, 0, 0, 0, 0, 0x07})
	r := New(f)

	v, err := r.ReadWidth(width.Width64)
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)
}
