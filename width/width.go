// Package width carries the one piece of version polymorphism in the
// MDX/MDD format: every length, count, and offset field ("width" number)
// is 4 bytes wide in a v1 file and 8 bytes wide in v2.
//
// Rather than branching on a version flag at every read site, callers carry
// a single Width value (chosen once, from the header's
// GeneratedByEngineVersion) and decode through it uniformly.
package width

import "encoding/binary"

// Width is the byte width of a length/count/offset field.
type Width uint8

const (
	// Width32 is used by MDX/MDD files with GeneratedByEngineVersion < 2.0.
	Width32 Width = 4
	// Width64 is used by files with GeneratedByEngineVersion >= 2.0.
	Width64 Width = 8
)

// FromEngineVersion picks the field width for a file: v2 is
// engineVersion >= 2.0.
func FromEngineVersion(engineVersion float64) Width {
	if engineVersion >= 2.0 {
		return Width64
	}

	return Width32
}

// Size returns the field width in bytes (4 or 8).
func (w Width) Size() int {
	return int(w)
}

// V2 reports whether this is the 8-byte (version 2) width.
func (w Width) V2() bool {
	return w == Width64
}

// Uint decodes a width-wide big-endian unsigned integer from buf, which must
// be at least w.Size() bytes long.
func (w Width) Uint(buf []byte) uint64 {
	if w == Width64 {
		return binary.BigEndian.Uint64(buf)
	}

	return uint64(binary.BigEndian.Uint32(buf))
}

// TextTailSize returns the length of the NUL pad that follows a fixed-size
// text field (the first/last word of a keyword-index block record): absent
// in v1, present only in v2.
func (w Width) TextTailSize(utf16 bool) int {
	if w != Width64 {
		return 0
	}
	if utf16 {
		return 2
	}

	return 1
}

func (w Width) String() string {
	if w == Width64 {
		return "width64(v2)"
	}

	return "width32(v1)"
}
