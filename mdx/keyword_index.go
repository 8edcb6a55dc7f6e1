// Package mdx implements the MDX/MDD index parsers, definition resolver,
// and driver: everything downstream of the header.
package mdx

import (
	"fmt"

	"github.com/belugareader/mdict/compress"
	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/reader"
	"github.com/belugareader/mdict/width"
)

// KeywordIndexSummary is the fixed-field record that precedes the
// keyword-index blocks region.
type KeywordIndexSummary struct {
	NumBlocks      uint64
	NumEntries     uint64
	IndexDecompLen uint64 // v2 only; zero in v1 files.
	IndexCompLen   uint64
	BlocksLen      uint64
}

// ParseKeywordIndexSummary reads the summary: num_blocks, num_entries, then
// (v2 only) index_decomp_len, index_comp_len, blocks_len, each a width
// number.
func ParseKeywordIndexSummary(r *reader.Reader, w width.Width) (KeywordIndexSummary, error) {
	var s KeywordIndexSummary

	var err error
	if s.NumBlocks, err = r.ReadWidth(w); err != nil {
		return s, err
	}
	if s.NumEntries, err = r.ReadWidth(w); err != nil {
		return s, err
	}
	if w.V2() {
		if s.IndexDecompLen, err = r.ReadWidth(w); err != nil {
			return s, err
		}
	}
	if s.IndexCompLen, err = r.ReadWidth(w); err != nil {
		return s, err
	}
	if s.BlocksLen, err = r.ReadWidth(w); err != nil {
		return s, err
	}

	return s, nil
}

// KeywordBlockIndex describes one keyword block: the span of first/last
// words it covers and where to find its compressed bytes within the
// keyword-blocks region. Keywords is populated later, by
// ParseKeywordBlocks.
type KeywordBlockIndex struct {
	NumEntriesInBlock uint64
	FirstWord         string
	LastWord          string
	CompSize          uint64
	DecompSize        uint64
	BlockOffset       uint64 // relative to the start of the keyword blocks region.

	Keywords []Keyword
}

// Keyword is one headword/filename entry resolved from a keyword block:
// its text, the record offset it points at, and the byte span of its
// payload.
type Keyword struct {
	Key          string
	RecordOffset uint64
	// Size is next.RecordOffset - this.RecordOffset within the same
	// block; zero for the last entry in a block, meaning "read to the
	// end of the enclosing record block".
	Size uint64
}

// ParseKeywordIndexBlocks reads summary.IndexCompLen bytes, decodes them
// using encMode from the header, and unpacks the per-block records:
// num_entries_in_block, first/last word, comp_size, decomp_size. It
// advances r past the region. Keyword blocks themselves are parsed
// separately, by ParseKeywordBlocks.
func ParseKeywordIndexBlocks(r *reader.Reader, summary KeywordIndexSummary, w width.Width, enc format.TextEncoding, encMode format.EncryptionMode) ([]KeywordBlockIndex, error) {
	raw, err := r.Read(int(summary.IndexCompLen))
	if err != nil {
		return nil, err
	}

	buf, err := compress.DecodeBlock(raw, int(summary.IndexDecompLen), encMode)
	if err != nil {
		return nil, fmt.Errorf("%w: keyword index blocks: %v", errs.ErrCorruptIndex, err)
	}

	sc := reader.NewScanner(buf, w, enc)

	blocks := make([]KeywordBlockIndex, summary.NumBlocks)
	var blockOffset uint64

	for i := range blocks {
		b := KeywordBlockIndex{BlockOffset: blockOffset}

		if b.NumEntriesInBlock, err = sc.ReadWidth(); err != nil {
			return nil, fmt.Errorf("%w: block %d num_entries: %v", errs.ErrCorruptIndex, i, err)
		}

		firstLen, err := sc.ReadShortWidth()
		if err != nil {
			return nil, fmt.Errorf("%w: block %d first_word_len: %v", errs.ErrCorruptIndex, i, err)
		}
		if b.FirstWord, err = sc.ReadText(int(firstLen)); err != nil {
			return nil, fmt.Errorf("%w: block %d first_word: %v", errs.ErrCorruptIndex, i, err)
		}

		lastLen, err := sc.ReadShortWidth()
		if err != nil {
			return nil, fmt.Errorf("%w: block %d last_word_len: %v", errs.ErrCorruptIndex, i, err)
		}
		if b.LastWord, err = sc.ReadText(int(lastLen)); err != nil {
			return nil, fmt.Errorf("%w: block %d last_word: %v", errs.ErrCorruptIndex, i, err)
		}

		if b.CompSize, err = sc.ReadWidth(); err != nil {
			return nil, fmt.Errorf("%w: block %d comp_size: %v", errs.ErrCorruptIndex, i, err)
		}
		if b.DecompSize, err = sc.ReadWidth(); err != nil {
			return nil, fmt.Errorf("%w: block %d decomp_size: %v", errs.ErrCorruptIndex, i, err)
		}

		blocks[i] = b
		blockOffset += b.CompSize
	}

	if blockOffset != summary.BlocksLen {
		return nil, fmt.Errorf("%w: keyword blocks length mismatch: summary=%d sum(comp_size)=%d", errs.ErrCorruptIndex, summary.BlocksLen, blockOffset)
	}

	return blocks, nil
}
