package rawstore

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/belugareader/mdict/format"
	"github.com/stretchr/testify/require"
)

func TestInsertEntryAndPage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := Create(ctx, path, format.KindEntry)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.InsertEntry(ctx, "apple", []byte("APPLE-DEF")))
	require.NoError(t, s.InsertEntry(ctx, "banana", []byte("BANANA-DEF")))
	require.NoError(t, s.FlushEntryCache(ctx))

	total, err := s.TotalEntries(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	var got []EntryRecord
	_, err = s.PageEntries(ctx, 0, func(r EntryRecord) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "apple", got[0].Name)
	require.Equal(t, "APPLE-DEF", string(got[0].Value))
	require.Equal(t, "banana", got[1].Name)
	require.Equal(t, "BANANA-DEF", string(got[1].Value))
}

func TestInsertEntryAutoFlushesAtPageSize(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := Create(ctx, path, format.KindResource)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	for i := 0; i < cachePageSize; i++ {
		require.NoError(t, s.InsertEntry(ctx, "r"+strconv.Itoa(i), []byte{byte(i)}))
	}
	require.Empty(t, s.entryCache)

	total, err := s.TotalEntries(ctx)
	require.NoError(t, err)
	require.EqualValues(t, cachePageSize, total)
}

func TestInsertTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := Create(ctx, path, format.KindEntry)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.InsertToken(ctx, "fruit", []string{"apple", "banana"}))
	require.NoError(t, s.FlushTokenCache(ctx))

	total, err := s.TotalTokens(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	var got []TokenRecord
	_, err = s.PageTokens(ctx, 0, func(r TokenRecord) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "fruit", got[0].Name)
	require.Equal(t, []string{"apple", "banana"}, got[0].Entries)
}

func TestPageEntriesEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := Create(ctx, path, format.KindEntry)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	var got []EntryRecord
	_, err = s.PageEntries(ctx, 0, func(r EntryRecord) error {
		got = append(got, r)
		return nil
	})
	require.NoError(t, err)
	require.Empty(t, got)
}
