package mdict

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/belugareader/mdict/beluga"
	"github.com/belugareader/mdict/format"
	"github.com/stretchr/testify/require"
)

// TestConvertRoundTrip exercises the beluga <-> raw-store half of the
// pipeline: a .bel archive converted to a .bel-db raw store and back
// produces the same entries and tokens, in the same order, as the source
// archive.
func TestConvertRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src := filepath.Join(dir, "dict.bel")
	b := beluga.NewBuilder(beluga.Metadata{}, format.KindEntry)
	b.InputEntry("apple", []byte("APPLE-DEF"))
	b.InputEntry("banana", []byte("BANANA-DEF"))
	b.InputEntry("cherry", []byte("CHERRY-DEF"))
	b.InputToken("fruit", []string{"apple", "banana", "cherry"})
	require.NoError(t, b.Save(ctx, src))

	raw := filepath.Join(dir, "dict.bel-db")
	require.NoError(t, Convert(ctx, src, raw))

	rebuilt := filepath.Join(dir, "dict2.bel")
	require.NoError(t, Convert(ctx, raw, rebuilt))

	loaded, err := beluga.OpenBuilder(ctx, rebuilt)
	require.NoError(t, err)

	var names []string
	var values []string
	require.NoError(t, loaded.TraverseEntry(func(name string, value []byte) error {
		names = append(names, name)
		values = append(values, string(value))
		return nil
	}))
	require.Equal(t, []string{"apple", "banana", "cherry"}, names)
	require.Equal(t, []string{"APPLE-DEF", "BANANA-DEF", "CHERRY-DEF"}, values)

	var tokenNames []string
	var tokenEntries [][]string
	require.NoError(t, loaded.TraverseToken(func(name string, entries []string) error {
		tokenNames = append(tokenNames, name)
		tokenEntries = append(tokenEntries, entries)
		return nil
	}))
	require.Equal(t, []string{"fruit"}, tokenNames)
	require.Equal(t, []string{"apple", "banana", "cherry"}, tokenEntries[0])
}

func TestConvertRejectsUnknownExtensionPair(t *testing.T) {
	err := Convert(context.Background(), "dict.txt", "dict.out")
	require.Error(t, err)
}

func TestExtStripsLeadingDot(t *testing.T) {
	require.Equal(t, "mdx", ext("/path/to/dict.mdx"))
	require.Equal(t, "bel-db", ext("dict.bel-db"))
}
