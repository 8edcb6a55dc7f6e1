package mdx

import (
	"os"
	"path/filepath"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/mdxheader"
	"github.com/belugareader/mdict/reader"
	"github.com/belugareader/mdict/width"
)

// Decoder owns the open input file and every index materialized from it:
// the header, keyword blocks, and record index. It is the assembled form
// of the pipeline stages in this package.
type Decoder struct {
	f *os.File
	r *reader.Reader

	Header      mdxheader.Header
	Blocks      []KeywordBlockIndex
	RecordIndex []RecordCursor

	kind format.Kind
	res  *Resolver
}

// Open parses path's header and every index region, leaving the decoder
// positioned to resolve definitions. kind selects Entry (MDX) vs Resource
// (MDD) payload extraction.
func Open(path string, kind format.Kind) (*Decoder, error) {
	if e := filepath.Ext(path); e != ".mdx" && e != ".mdd" {
		return nil, errs.ErrInvalidPath
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errs.ErrInvalidPath
	}

	r := reader.New(f)

	hdr, err := mdxheader.Parse(r)
	if err != nil {
		f.Close()
		return nil, err
	}

	d := &Decoder{f: f, r: r, Header: hdr, kind: kind}
	if err := d.parseIndices(hdr.Width); err != nil {
		f.Close()
		return nil, err
	}

	return d, nil
}

func (d *Decoder) parseIndices(w width.Width) error {
	summary, err := ParseKeywordIndexSummary(d.r, w)
	if err != nil {
		return err
	}

	if err := d.r.Skip(4); err != nil { // adler checksum, skipped
		return err
	}

	blocks, err := ParseKeywordIndexBlocks(d.r, summary, w, d.Header.Encoding, d.Header.Encrypted)
	if err != nil {
		return err
	}

	if err := ParseKeywordBlocks(d.r, blocks, w, d.Header.Encoding); err != nil {
		return err
	}
	d.Blocks = blocks

	recSummary, err := ParseRecordSummary(d.r, w)
	if err != nil {
		return err
	}

	recIndex, err := ParseRecordIndex(d.r, recSummary, w)
	if err != nil {
		return err
	}
	d.RecordIndex = recIndex

	return nil
}

// Resolver returns the resolver bound to this decoder's file handle and
// record index, creating it on first use so repeated calls (and Drive)
// share one cache.
func (d *Decoder) Resolver() *Resolver {
	if d.res == nil {
		d.res = NewResolver(d.r, d.RecordIndex, d.Header.Width, d.Header.Encoding, d.kind)
	}

	return d.res
}

// Drive emits every (key, payload) pair to sink, in keyword-block order.
func (d *Decoder) Drive(sink Sink) error {
	return Drive(d.Blocks, d.Resolver(), sink)
}

// Close releases the resolver's cached buffer back to the pool and closes
// the underlying file handle.
func (d *Decoder) Close() error {
	if d.res != nil {
		d.res.Close()
	}

	return d.f.Close()
}
