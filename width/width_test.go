package width

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEngineVersion(t *testing.T) {
	tests := []struct {
		name    string
		version float64
		want    Width
	}{
		{"v1 low", 1.0, Width32},
		{"v1 high", 1.9999, Width32},
		{"v2 exact", 2.0, Width64},
		{"v2 high", 3.0, Width64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FromEngineVersion(tt.version))
		})
	}
}

func TestWidthUint(t *testing.T) {
	buf32 := []byte{0x00, 0x00, 0x01, 0x02}
	require.Equal(t, uint64(0x0102), Width32.Uint(buf32))

	buf64 := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02}
	require.Equal(t, uint64(0x0102), Width64.Uint(buf64))
}

func TestWidthSize(t *testing.T) {
	require.Equal(t, 4, Width32.Size())
	require.Equal(t, 8, Width64.Size())
}

func TestTextTailSize(t *testing.T) {
	require.Equal(t, 0, Width32.TextTailSize(true))
	require.Equal(t, 0, Width32.TextTailSize(false))
	require.Equal(t, 2, Width64.TextTailSize(true))
	require.Equal(t, 1, Width64.TextTailSize(false))
}

func TestWidthString(t *testing.T) {
	require.Equal(t, "width32(v1)", Width32.String())
	require.Equal(t, "width64(v2)", Width64.String())
}
