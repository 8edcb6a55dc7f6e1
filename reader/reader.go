// Package reader provides the two byte-level cursors the MDX/MDD decoder is
// built on: Reader, a sequential/positioned cursor over the input file, and
// Scanner, the same contract over an in-memory buffer plus the text and
// width-polymorphic numeric decoding the format needs.
//
// All multi-byte integers in MDX/MDD are big-endian.
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/width"
)

// Reader is a sequential/positioned cursor over an MDX/MDD file.
//
// Reader owns no buffering beyond what os.File provides; callers that need
// repeated small reads over a region should read the region once and
// continue with a Scanner instead.
type Reader struct {
	f *os.File
}

// New wraps an already-open file in a Reader.
func New(f *os.File) *Reader {
	return &Reader{f: f}
}

// Seek moves the cursor to an absolute file offset.
func (r *Reader) Seek(abs int64) error {
	if _, err := r.f.Seek(abs, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek to %d: %v", errs.ErrIoError, abs, err)
	}

	return nil
}

// Tell returns the current absolute file offset.
func (r *Reader) Tell() (int64, error) {
	pos, err := r.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w: tell: %v", errs.ErrIoError, err)
	}

	return pos, nil
}

// Skip advances the cursor by n bytes without returning the skipped data,
// e.g. past the checksum words the header and summary parsers ignore.
func (r *Reader) Skip(n int64) error {
	if _, err := r.f.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: skip %d: %v", errs.ErrIoError, n, err)
	}

	return nil
}

// Read reads exactly n bytes, returning ErrTruncatedInput on a short read.
func (r *Reader) Read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.f, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: wanted %d bytes: %v", errs.ErrTruncatedInput, n, err)
		}

		return nil, fmt.Errorf("%w: read %d bytes: %v", errs.ErrIoError, n, err)
	}

	return buf, nil
}

// ReadUint32BE reads a 4-byte big-endian unsigned integer.
func (r *Reader) ReadUint32BE() (uint32, error) {
	buf, err := r.Read(4)
	if err != nil {
		return 0, err
	}

	return width.Width32.Uint(buf), nil
}

// ReadUint64BE reads an 8-byte big-endian unsigned integer.
func (r *Reader) ReadUint64BE() (uint64, error) {
	buf, err := r.Read(8)
	if err != nil {
		return 0, err
	}

	return width.Width64.Uint(buf), nil
}

// ReadWidth reads a width-wide big-endian unsigned integer: 4 bytes for
// width.Width32, 8 bytes for width.Width64.
func (r *Reader) ReadWidth(w width.Width) (uint64, error) {
	buf, err := r.Read(w.Size())
	if err != nil {
		return 0, err
	}

	return w.Uint(buf), nil
}
