// Package beluga implements the BelugaBuilder collaborator: an
// accumulator for (key, payload) entries and (name, headwords) token
// records that can persist itself to a single file and be read back. The
// archive's on-disk layout is intentionally unspecified elsewhere, so
// this package's container format is a minimal, self-describing record
// stream sufficient to round-trip, not a claim about any real downstream
// reader's byte layout.
package beluga

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
)

const magic = "BELG"

// Metadata carries archive-level bookkeeping. EntryNum tracks how many
// entries have been added, mirroring the original's Metadata/entry_num
// pair used by the reverse (raw -> Beluga) flow to size its progress bar.
type Metadata struct {
	EntryNum int
}

type entryRecord struct {
	name  string
	value []byte
}

type tokenRecord struct {
	name    string
	entries []string
}

// Builder accumulates entries and tokens in memory, in input order, until
// Save persists them.
type Builder struct {
	meta    Metadata
	kind    format.Kind
	entries []entryRecord
	tokens  []tokenRecord
}

// NewBuilder creates an empty builder for the given kind (Entry for MDX,
// Resource for MDD).
func NewBuilder(meta Metadata, kind format.Kind) *Builder {
	return &Builder{meta: meta, kind: kind}
}

// InputEntry appends one (key, payload) pair.
func (b *Builder) InputEntry(name string, value []byte) {
	b.entries = append(b.entries, entryRecord{name: name, value: value})
	b.meta.EntryNum++
}

// InputToken appends one (name, headwords) token record.
func (b *Builder) InputToken(name string, entries []string) {
	b.tokens = append(b.tokens, tokenRecord{name: name, entries: entries})
}

// Metadata returns the builder's current metadata.
func (b *Builder) Metadata() Metadata {
	return b.meta
}

// Kind returns the builder's archive kind.
func (b *Builder) Kind() format.Kind {
	return b.kind
}

// Save persists the builder's entries and tokens to path, in input order.
// ctx may cancel it between records.
func (b *Builder) Save(ctx context.Context, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", errs.ErrIoError, path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString(magic); err != nil {
		return wrapIO(path, err)
	}
	if err := writeByte(w, byte(b.kind)); err != nil {
		return wrapIO(path, err)
	}
	if err := writeUint32(w, uint32(len(b.entries))); err != nil {
		return wrapIO(path, err)
	}
	if err := writeUint32(w, uint32(len(b.tokens))); err != nil {
		return wrapIO(path, err)
	}

	for _, e := range b.entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeRecord(w, e.name, e.value); err != nil {
			return wrapIO(path, err)
		}
	}

	for _, t := range b.tokens {
		if err := ctx.Err(); err != nil {
			return err
		}
		encoded, err := json.Marshal(t.entries)
		if err != nil {
			return fmt.Errorf("%w: encode token %q: %v", errs.ErrIoError, t.name, err)
		}
		if err := writeRecord(w, t.name, encoded); err != nil {
			return wrapIO(path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return wrapIO(path, err)
	}

	return nil
}

// OpenBuilder reads an archive written by Save back into memory, the
// reverse of Save.
func OpenBuilder(ctx context.Context, path string) (*Builder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrIoError, path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	got := make([]byte, len(magic))
	if _, err := io.ReadFull(r, got); err != nil || string(got) != magic {
		return nil, fmt.Errorf("%w: %s: not a beluga archive", errs.ErrMalformedHeader, path)
	}

	kindByte, err := r.ReadByte()
	if err != nil {
		return nil, wrapIO(path, err)
	}

	entryCount, err := readUint32(r)
	if err != nil {
		return nil, wrapIO(path, err)
	}
	tokenCount, err := readUint32(r)
	if err != nil {
		return nil, wrapIO(path, err)
	}

	b := &Builder{kind: format.Kind(kindByte)}

	for i := uint32(0); i < entryCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, value, err := readRecord(r)
		if err != nil {
			return nil, wrapIO(path, err)
		}
		b.entries = append(b.entries, entryRecord{name: name, value: value})
		b.meta.EntryNum++
	}

	for i := uint32(0); i < tokenCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, raw, err := readRecord(r)
		if err != nil {
			return nil, wrapIO(path, err)
		}
		entries, err := ParseTokenEntries(raw)
		if err != nil {
			return nil, err
		}
		b.tokens = append(b.tokens, tokenRecord{name: name, entries: entries})
	}

	return b, nil
}

// TraverseEntry calls cb for every entry, in stored order.
func (b *Builder) TraverseEntry(cb func(name string, value []byte) error) error {
	for _, e := range b.entries {
		if err := cb(e.name, e.value); err != nil {
			return err
		}
	}

	return nil
}

// TraverseToken calls cb for every token record, in stored order.
func (b *Builder) TraverseToken(cb func(name string, entries []string) error) error {
	for _, t := range b.tokens {
		if err := cb(t.name, t.entries); err != nil {
			return err
		}
	}

	return nil
}

// ParseTokenEntries decodes a token's raw payload (a JSON array of
// headword strings) into a slice of strings.
func ParseTokenEntries(raw []byte) ([]string, error) {
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: token entries: %v", errs.ErrDecodeError, err)
	}

	return entries, nil
}

func writeRecord(w *bufio.Writer, name string, value []byte) error {
	if err := writeUint32(w, uint32(len(name))); err != nil {
		return err
	}
	if _, err := w.WriteString(name); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(value))); err != nil {
		return err
	}
	_, err := w.Write(value)
	return err
}

func readRecord(r *bufio.Reader) (string, []byte, error) {
	nameLen, err := readUint32(r)
	if err != nil {
		return "", nil, err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return "", nil, err
	}

	valueLen, err := readUint32(r)
	if err != nil {
		return "", nil, err
	}
	value := make([]byte, valueLen)
	if _, err := io.ReadFull(r, value); err != nil {
		return "", nil, err
	}

	return string(name), value, nil
}

func writeUint32(w *bufio.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r *bufio.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b[:]), nil
}

func writeByte(w *bufio.Writer, b byte) error {
	return w.WriteByte(b)
}

func wrapIO(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", errs.ErrIoError, path, err)
}
