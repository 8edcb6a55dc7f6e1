// Package rawstore implements the tabular staging store collaborator: a
// single-file embedded SQL database holding entry and token records
// between an MDX/MDD decode and a Beluga archive build, or vice versa.
package rawstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/belugareader/mdict/errs"
	"github.com/belugareader/mdict/format"
)

const (
	entryTable = "entry"
	tokenTable = "token"

	// cachePageSize is the fixed write-batch size: InsertEntry/InsertToken
	// auto-flush once their pending cache reaches this many records.
	cachePageSize = 200
	// readPageSize is the fixed page size for PageEntries/PageTokens'
	// paged iteration.
	readPageSize = 100
)

const schema = `
DROP TABLE IF EXISTS entry;
CREATE TABLE entry (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	name   TEXT UNIQUE,
	text   TEXT,
	binary BLOB
);
CREATE INDEX entry_name ON entry (name);

DROP TABLE IF EXISTS token;
CREATE TABLE token (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	name    TEXT UNIQUE NOT NULL,
	entries TEXT
);
CREATE INDEX token_name ON token (name);
`

type entryRow struct {
	name   string
	text   sql.NullString
	binary []byte
}

type tokenRow struct {
	name    string
	entries []string
}

// Store is a RawStore over an embedded sqlite database file. Kind
// determines whether InsertEntry populates entry.text (Entry) or
// entry.binary (Resource).
type Store struct {
	db         *sql.DB
	kind       format.Kind
	entryCache []entryRow
	tokenCache []tokenRow
}

// Create opens path, dropping and recreating the entry/token tables.
func Create(ctx context.Context, path string, kind format.Kind) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrIoError, path, err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", errs.ErrIoError, err)
	}

	return &Store{db: db, kind: kind}, nil
}

// Open opens an existing raw store at path for reading (the source
// contract: TotalEntries/TotalTokens/PageEntries/PageTokens).
func Open(path string, kind format.Kind) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrIoError, path, err)
	}

	return &Store{db: db, kind: kind}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertEntry stages (name, value) for the next FlushEntryCache, choosing
// the text or binary column by the store's kind. It auto-flushes once the
// pending cache reaches cachePageSize.
func (s *Store) InsertEntry(ctx context.Context, name string, value []byte) error {
	row := entryRow{name: name}
	if s.kind == format.KindEntry {
		row.text = sql.NullString{String: string(value), Valid: true}
	} else {
		row.binary = value
	}

	s.entryCache = append(s.entryCache, row)
	if len(s.entryCache) >= cachePageSize {
		return s.FlushEntryCache(ctx)
	}

	return nil
}

// InsertToken stages (name, entries) for the next FlushTokenCache.
func (s *Store) InsertToken(ctx context.Context, name string, entries []string) error {
	s.tokenCache = append(s.tokenCache, tokenRow{name: name, entries: entries})
	if len(s.tokenCache) >= cachePageSize {
		return s.FlushTokenCache(ctx)
	}

	return nil
}

// FlushEntryCache commits the pending entry cache in a single transaction.
func (s *Store) FlushEntryCache(ctx context.Context) error {
	if len(s.entryCache) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin entry flush: %v", errs.ErrIoError, err)
	}

	column := "text"
	if s.kind != format.KindEntry {
		column = "binary"
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (name, %s) VALUES (?, ?)", entryTable, column))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: prepare entry insert: %v", errs.ErrIoError, err)
	}
	defer stmt.Close()

	for _, row := range s.entryCache {
		var value any
		if s.kind == format.KindEntry {
			value = row.text
		} else {
			value = row.binary
		}

		if _, err := stmt.ExecContext(ctx, row.name, value); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: insert entry %q: %v", errs.ErrIoError, row.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit entry flush: %v", errs.ErrIoError, err)
	}

	s.entryCache = s.entryCache[:0]

	return nil
}

// FlushTokenCache commits the pending token cache in a single transaction.
// entries is JSON-encoded into the entries column.
func (s *Store) FlushTokenCache(ctx context.Context) error {
	if len(s.tokenCache) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin token flush: %v", errs.ErrIoError, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (name, entries) VALUES (?, ?)", tokenTable))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("%w: prepare token insert: %v", errs.ErrIoError, err)
	}
	defer stmt.Close()

	for _, row := range s.tokenCache {
		encoded, err := json.Marshal(row.entries)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: encode token %q entries: %v", errs.ErrIoError, row.name, err)
		}

		if _, err := stmt.ExecContext(ctx, row.name, string(encoded)); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: insert token %q: %v", errs.ErrIoError, row.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit token flush: %v", errs.ErrIoError, err)
	}

	s.tokenCache = s.tokenCache[:0]

	return nil
}

// TotalEntries returns the row count of the entry table.
func (s *Store) TotalEntries(ctx context.Context) (uint64, error) {
	return s.count(ctx, entryTable)
}

// TotalTokens returns the row count of the token table.
func (s *Store) TotalTokens(ctx context.Context) (uint64, error) {
	return s.count(ctx, tokenTable)
}

func (s *Store) count(ctx context.Context, table string) (uint64, error) {
	var n uint64
	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table))
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", errs.ErrIoError, table, err)
	}

	return n, nil
}

// EntryRecord is one page row from the entry table.
type EntryRecord struct {
	Name  string
	Value []byte
}

// PageEntries calls visit for every entry row with id > afterID, in
// strictly ascending id order, readPageSize rows at a time, until
// exhausted. It returns the last id seen, for the next page's afterID.
func (s *Store) PageEntries(ctx context.Context, afterID uint64, visit func(EntryRecord) error) (uint64, error) {
	for {
		rows, err := s.db.QueryContext(ctx,
			fmt.Sprintf("SELECT id, name, text, binary FROM %s WHERE id > ? ORDER BY id ASC LIMIT ?", entryTable),
			afterID, readPageSize)
		if err != nil {
			return afterID, fmt.Errorf("%w: page entries: %v", errs.ErrIoError, err)
		}

		count := 0
		err = func() error {
			defer rows.Close()

			for rows.Next() {
				var (
					id   uint64
					name string
					text sql.NullString
					bin  []byte
				)
				if err := rows.Scan(&id, &name, &text, &bin); err != nil {
					return err
				}

				afterID = id
				count++

				rec := EntryRecord{Name: name}
				if s.kind == format.KindEntry {
					rec.Value = []byte(text.String)
				} else {
					rec.Value = bin
				}

				if err := visit(rec); err != nil {
					return err
				}
			}

			return rows.Err()
		}()
		if err != nil {
			return afterID, fmt.Errorf("%w: page entries: %v", errs.ErrIoError, err)
		}

		if count < readPageSize {
			return afterID, nil
		}
	}
}

// TokenRecord is one page row from the token table, with entries already
// decoded from their JSON encoding.
type TokenRecord struct {
	Name    string
	Entries []string
}

// PageTokens calls visit for every token row with id > afterID, in
// strictly ascending id order, readPageSize rows at a time.
func (s *Store) PageTokens(ctx context.Context, afterID uint64, visit func(TokenRecord) error) (uint64, error) {
	for {
		rows, err := s.db.QueryContext(ctx,
			fmt.Sprintf("SELECT id, name, entries FROM %s WHERE id > ? ORDER BY id ASC LIMIT ?", tokenTable),
			afterID, readPageSize)
		if err != nil {
			return afterID, fmt.Errorf("%w: page tokens: %v", errs.ErrIoError, err)
		}

		count := 0
		err = func() error {
			defer rows.Close()

			for rows.Next() {
				var (
					id      uint64
					name    string
					encoded string
				)
				if err := rows.Scan(&id, &name, &encoded); err != nil {
					return err
				}

				afterID = id
				count++

				var entries []string
				if err := json.Unmarshal([]byte(encoded), &entries); err != nil {
					return fmt.Errorf("decode token %q entries: %w", name, err)
				}

				if err := visit(TokenRecord{Name: name, Entries: entries}); err != nil {
					return err
				}
			}

			return rows.Err()
		}()
		if err != nil {
			return afterID, fmt.Errorf("%w: page tokens: %v", errs.ErrIoError, err)
		}

		if count < readPageSize {
			return afterID, nil
		}
	}
}
