package mdx

import (
	"fmt"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/reader"
	"github.com/belugareader/mdict/width"
)

// RecordSummary is the fixed four-field record that precedes the record
// index.
type RecordSummary struct {
	NumBlocks  uint64
	NumEntries uint64
	IndexLen   uint64
	BlocksLen  uint64
	// BlocksPos is the absolute file offset where the record blocks
	// region starts: tell() + IndexLen, captured right after the
	// summary's own fields are read.
	BlocksPos int64
}

// ParseRecordSummary reads the four width-numbers and records BlocksPos.
func ParseRecordSummary(r *reader.Reader, w width.Width) (RecordSummary, error) {
	var s RecordSummary

	var err error
	if s.NumBlocks, err = r.ReadWidth(w); err != nil {
		return s, err
	}
	if s.NumEntries, err = r.ReadWidth(w); err != nil {
		return s, err
	}
	if s.IndexLen, err = r.ReadWidth(w); err != nil {
		return s, err
	}
	if s.BlocksLen, err = r.ReadWidth(w); err != nil {
		return s, err
	}

	pos, err := r.Tell()
	if err != nil {
		return s, err
	}
	s.BlocksPos = pos + int64(s.IndexLen)

	return s, nil
}

// RecordCursor locates the start of a record block in both the compressed
// file and the decompressed logical stream.
type RecordCursor struct {
	CompCursor   int64
	DecompCursor uint64
}

// ParseRecordIndex reads summary.IndexLen raw bytes directly: unlike the
// keyword-index blocks region, the record index is not block-compressed,
// so there is no decode_block call here. It contains summary.NumBlocks
// pairs of width numbers (comp_delta, decomp_delta); ParseRecordIndex
// folds them into a cumulative sequence starting at (summary.BlocksPos,
// 0). The loop naturally produces summary.NumBlocks+1 entries, the last
// one being the (blocks_pos + total_comp, total_decomp) sentinel, so
// binary search never needs to special-case the upper bound.
func ParseRecordIndex(r *reader.Reader, summary RecordSummary, w width.Width) ([]RecordCursor, error) {
	raw, err := r.Read(int(summary.IndexLen))
	if err != nil {
		return nil, err
	}

	sc := reader.NewScanner(raw, w, format.TextEncodingUTF8)

	cursors := make([]RecordCursor, 0, summary.NumBlocks+1)
	compCursor := summary.BlocksPos
	var decompCursor uint64

	for i := uint64(0); i < summary.NumBlocks; i++ {
		cursors = append(cursors, RecordCursor{CompCursor: compCursor, DecompCursor: decompCursor})

		compDelta, err := sc.ReadWidth()
		if err != nil {
			return nil, fmt.Errorf("%w: record index entry %d comp_delta: %v", errs.ErrCorruptIndex, i, err)
		}
		decompDelta, err := sc.ReadWidth()
		if err != nil {
			return nil, fmt.Errorf("%w: record index entry %d decomp_delta: %v", errs.ErrCorruptIndex, i, err)
		}

		compCursor += int64(compDelta)
		decompCursor += decompDelta
	}

	cursors = append(cursors, RecordCursor{CompCursor: compCursor, DecompCursor: decompCursor})

	return cursors, nil
}
