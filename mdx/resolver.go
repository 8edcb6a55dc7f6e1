package mdx

import (
	"fmt"

	"github.com/belugareader/mdict/compress"
	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/reader"
	"github.com/belugareader/mdict/width"
)

// Resolver turns a Keyword into its (key, payload) definition by locating
// the record block it lives in, decoding that block (through a single-slot
// cache), and slicing out the payload.
type Resolver struct {
	r           *reader.Reader
	recordIndex []RecordCursor
	w           width.Width
	enc         format.TextEncoding
	kind        format.Kind
	cache       BlockCache
}

// NewResolver builds a resolver over recordIndex, reading record blocks
// from r as needed. kind selects Entry (NUL-terminated text payloads) vs
// Resource (fixed-size binary payloads) extraction.
func NewResolver(r *reader.Reader, recordIndex []RecordCursor, w width.Width, enc format.TextEncoding, kind format.Kind) *Resolver {
	return &Resolver{r: r, recordIndex: recordIndex, w: w, enc: enc, kind: kind}
}

// Close releases the resolver's cached record-block buffer back to the
// pool. Callers that finished resolving definitions should call this
// before discarding the resolver.
func (res *Resolver) Close() {
	res.cache.Release()
}

// Resolve returns kw's definition: kw.Key and its decoded payload.
func (res *Resolver) Resolve(kw Keyword) (string, []byte, error) {
	j, err := locateBlock(res.recordIndex, kw.RecordOffset)
	if err != nil {
		return "", nil, err
	}

	cur := res.recordIndex[j]
	next := res.recordIndex[j+1]
	compOffset := cur.CompCursor
	compSize := next.CompCursor - cur.CompCursor
	decompOffset := cur.DecompCursor
	decompSize := next.DecompCursor - decompOffset

	buf, ok := res.cache.Get(compOffset)
	if !ok {
		if err := res.r.Seek(compOffset); err != nil {
			return "", nil, err
		}
		raw, err := res.r.Read(int(compSize))
		if err != nil {
			return "", nil, err
		}

		buf, err = compress.DecodeBlock(raw, int(decompSize), format.EncryptionNone)
		if err != nil {
			return "", nil, fmt.Errorf("%w: record block at %d: %v", errs.ErrCorruptBlock, compOffset, err)
		}

		res.cache.Put(compOffset, buf)
	}

	sc := reader.NewScanner(buf, res.w, res.enc)
	sc.Forward(int(kw.RecordOffset - decompOffset))

	if res.kind == format.KindEntry {
		text, err := sc.ReadTextUnsized()
		if err != nil {
			return "", nil, fmt.Errorf("%w: entry %q: %v", errs.ErrCorruptBlock, kw.Key, err)
		}

		return kw.Key, []byte(text), nil
	}

	size := int(kw.Size)
	if size == 0 {
		size = sc.Remaining()
	}

	data, err := sc.Read(size)
	if err != nil {
		return "", nil, fmt.Errorf("%w: resource %q: %v", errs.ErrCorruptBlock, kw.Key, err)
	}

	return kw.Key, data, nil
}

// locateBlock finds the record-index entry j such that
// idx[j].DecompCursor <= offset < idx[j+1].DecompCursor, via binary search
// on the decompressed-cursor column. Ties belong to the lower block: the
// loop's convergence condition (offset >= o2 moves the low bound up)
// picks the block that starts at offset, not the one that ends there.
func locateBlock(idx []RecordCursor, offset uint64) (int, error) {
	if len(idx) < 2 {
		return 0, fmt.Errorf("%w: empty record index", errs.ErrOutOfRange)
	}

	lo, hi := 0, len(idx)-1
	if offset < idx[0].DecompCursor || offset >= idx[hi].DecompCursor {
		return 0, fmt.Errorf("%w: offset %d", errs.ErrOutOfRange, offset)
	}

	for hi-lo > 1 {
		mi := (hi + lo) / 2
		if offset >= idx[mi].DecompCursor {
			lo = mi
		} else {
			hi = mi
		}
	}

	return lo, nil
}
