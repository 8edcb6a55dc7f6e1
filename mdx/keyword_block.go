package mdx

import (
	"fmt"

	"github.com/belugareader/mdict/compress"
	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/reader"
	"github.com/belugareader/mdict/width"
)

// ParseKeywordBlocks reads the keyword blocks region (blocks.BlockOffset is
// relative to r's current position) and populates each block's Keywords in
// stored order. Keyword blocks are never encryption-mode encrypted, even
// when the header declares KeywordIndex encryption for the index region
// above them.
func ParseKeywordBlocks(r *reader.Reader, blocks []KeywordBlockIndex, w width.Width, enc format.TextEncoding) error {
	for bi := range blocks {
		b := &blocks[bi]

		raw, err := r.Read(int(b.CompSize))
		if err != nil {
			return fmt.Errorf("%w: keyword block %d: %v", errs.ErrCorruptIndex, bi, err)
		}

		buf, err := compress.DecodeBlock(raw, int(b.DecompSize), format.EncryptionNone)
		if err != nil {
			return fmt.Errorf("%w: keyword block %d: %v", errs.ErrCorruptBlock, bi, err)
		}

		sc := reader.NewScanner(buf, w, enc)

		keywords := make([]Keyword, b.NumEntriesInBlock)
		for i := range keywords {
			offset, err := sc.ReadWidth()
			if err != nil {
				return fmt.Errorf("%w: keyword block %d entry %d offset: %v", errs.ErrCorruptIndex, bi, i, err)
			}
			key, err := sc.ReadTextUnsized()
			if err != nil {
				return fmt.Errorf("%w: keyword block %d entry %d key: %v", errs.ErrCorruptIndex, bi, i, err)
			}

			keywords[i] = Keyword{Key: key, RecordOffset: offset}
		}

		for i := range keywords {
			if i+1 < len(keywords) {
				keywords[i].Size = keywords[i+1].RecordOffset - keywords[i].RecordOffset
			} else {
				keywords[i].Size = 0
			}
		}

		b.Keywords = keywords
	}

	return nil
}
