// Package mdict provides convenient top-level wrappers around the mdx,
// rawstore, and beluga packages, covering the eight input/output
// extension pairs the driver understands.
//
// For fine-grained control, use the mdx, rawstore, and beluga packages
// directly; this package exists to give cmd/mdxconv (and other callers) a
// single Convert entry point.
package mdict

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/belugareader/mdict/beluga"
	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
	"github.com/belugareader/mdict/mdx"
	"github.com/belugareader/mdict/rawstore"
)

// Archive and raw-store extensions: an MDX dictionary converts to a .bel
// entry archive or a .bel-db raw store; an MDD resource file converts to
// a .beld resource archive or a .beld-db raw store; archive and raw
// store convert to each other within the same kind.
const (
	extEntryArchive    = "bel"
	extResourceArchive = "beld"
	extRawEntry        = "bel-db"
	extRawResource     = "beld-db"
)

// ext returns path's extension without the leading dot.
func ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// Convert dispatches on the (source, dest) extension pair, running
// exactly one of the eight transforms. Any other pairing returns
// errs.ErrInvalidTransform.
func Convert(ctx context.Context, source, dest string) error {
	se, de := ext(source), ext(dest)

	switch {
	case se == "mdx" && de == extEntryArchive:
		return mdxToBeluga(ctx, source, dest, format.KindEntry)
	case se == "mdd" && de == extResourceArchive:
		return mdxToBeluga(ctx, source, dest, format.KindResource)
	case se == "mdx" && de == extRawEntry:
		return mdxToRaw(ctx, source, dest, format.KindEntry)
	case se == "mdd" && de == extRawResource:
		return mdxToRaw(ctx, source, dest, format.KindResource)
	case se == extEntryArchive && de == extRawEntry:
		return belugaToRaw(ctx, source, dest, format.KindEntry)
	case se == extResourceArchive && de == extRawResource:
		return belugaToRaw(ctx, source, dest, format.KindResource)
	case se == extRawEntry && de == extEntryArchive:
		return rawToBeluga(ctx, source, dest, format.KindEntry)
	case se == extRawResource && de == extResourceArchive:
		return rawToBeluga(ctx, source, dest, format.KindResource)
	default:
		return fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransform, source, dest)
	}
}

func mdxToBeluga(ctx context.Context, source, dest string, kind format.Kind) error {
	dec, err := mdx.Open(source, kind)
	if err != nil {
		return err
	}
	defer dec.Close()

	b := beluga.NewBuilder(beluga.Metadata{}, kind)
	sink := belugaSink{b}
	if err := dec.Drive(sink); err != nil {
		return err
	}

	return b.Save(ctx, dest)
}

func mdxToRaw(ctx context.Context, source, dest string, kind format.Kind) error {
	dec, err := mdx.Open(source, kind)
	if err != nil {
		return err
	}
	defer dec.Close()

	store, err := rawstore.Create(ctx, dest, kind)
	if err != nil {
		return err
	}
	defer store.Close()

	sink := rawSink{ctx: ctx, store: store}
	if err := dec.Drive(sink); err != nil {
		return err
	}

	return store.FlushEntryCache(ctx)
}

func belugaToRaw(ctx context.Context, source, dest string, kind format.Kind) error {
	b, err := beluga.OpenBuilder(ctx, source)
	if err != nil {
		return err
	}

	store, err := rawstore.Create(ctx, dest, kind)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := b.TraverseEntry(func(name string, value []byte) error {
		return store.InsertEntry(ctx, name, value)
	}); err != nil {
		return err
	}
	if err := store.FlushEntryCache(ctx); err != nil {
		return err
	}

	if err := b.TraverseToken(func(name string, entries []string) error {
		return store.InsertToken(ctx, name, entries)
	}); err != nil {
		return err
	}

	return store.FlushTokenCache(ctx)
}

func rawToBeluga(ctx context.Context, source, dest string, kind format.Kind) error {
	store, err := rawstore.Open(source, kind)
	if err != nil {
		return err
	}
	defer store.Close()

	b := beluga.NewBuilder(beluga.Metadata{}, kind)

	if _, err := store.PageEntries(ctx, 0, func(r rawstore.EntryRecord) error {
		b.InputEntry(r.Name, r.Value)
		return nil
	}); err != nil {
		return err
	}

	total, err := store.TotalTokens(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		if _, err := store.PageTokens(ctx, 0, func(r rawstore.TokenRecord) error {
			b.InputToken(r.Name, r.Entries)
			return nil
		}); err != nil {
			return err
		}
	}

	return b.Save(ctx, dest)
}

// belugaSink adapts *beluga.Builder to mdx.Sink.
type belugaSink struct {
	b *beluga.Builder
}

func (s belugaSink) Put(key string, payload []byte) error {
	s.b.InputEntry(key, payload)
	return nil
}

// rawSink adapts *rawstore.Store to mdx.Sink.
type rawSink struct {
	ctx   context.Context
	store *rawstore.Store
}

func (s rawSink) Put(key string, payload []byte) error {
	return s.store.InsertEntry(s.ctx, key, payload)
}
