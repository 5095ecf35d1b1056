// Package store persists the ledger in a sqlite database.
//
// Dates are stored as sortable "YYYY-MM-DD HH:MM:SS" text and decimal
// values as exact strings, so no precision is lost across round trips.
// Every mutating method runs inside a single database transaction.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

const dateTimeFormat = "2006-01-02 15:04:05"

var (
	// ErrAssetExists signals an insert with an already taken (scope, code) pair.
	ErrAssetExists = errors.New("asset already exists")

	// ErrAccountInUse rejects deleting an account that subtransactions or
	// child accounts still reference.
	ErrAccountInUse = errors.New("account is referenced")

	// ErrAssetInUse rejects deleting an asset that accounts still reference.
	ErrAssetInUse = errors.New("asset is referenced")

	// ErrUnknownCurrency signals a security insert whose denominating
	// currency is not stored.
	ErrUnknownCurrency = errors.New("unknown denominating currency")
)

const schema = `
CREATE TABLE IF NOT EXISTS asset (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	kind          TEXT    NOT NULL,
	scope         TEXT    NOT NULL DEFAULT '',
	code          TEXT    NOT NULL,
	name          TEXT    NOT NULL,
	precision     INTEGER NOT NULL DEFAULT 0,
	symbol        TEXT    NOT NULL DEFAULT '',
	is_fiat       INTEGER NOT NULL DEFAULT 0,
	security_type TEXT    NOT NULL DEFAULT '',
	isin          TEXT    NOT NULL DEFAULT '',
	currency_id   INTEGER REFERENCES asset(id),
	UNIQUE (scope, code)
);

CREATE TABLE IF NOT EXISTS account (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	type        TEXT    NOT NULL,
	name        TEXT    NOT NULL,
	description TEXT    NOT NULL DEFAULT '',
	asset_id    INTEGER NOT NULL REFERENCES asset(id),
	parent_id   INTEGER REFERENCES account(id),
	precision   INTEGER NOT NULL DEFAULT -1,
	UNIQUE (parent_id, name)
);

CREATE TABLE IF NOT EXISTS "transaction" (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS subtransaction (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	transaction_id INTEGER NOT NULL REFERENCES "transaction"(id) ON DELETE CASCADE,
	comment        TEXT    NOT NULL DEFAULT '',
	origin_id      INTEGER NOT NULL REFERENCES account(id),
	target_id      INTEGER NOT NULL REFERENCES account(id),
	quantity       TEXT    NOT NULL,
	quote_price    TEXT    NOT NULL DEFAULT '1'
);

CREATE INDEX IF NOT EXISTS idx_subtransaction_origin ON subtransaction(origin_id);
CREATE INDEX IF NOT EXISTS idx_subtransaction_target ON subtransaction(target_id);
CREATE INDEX IF NOT EXISTS idx_subtransaction_transaction ON subtransaction(transaction_id);
`

// Store wraps the sqlite database holding assets, accounts and
// transactions.
type Store struct {
	db *sql.DB
}

// Open opens the sqlite database at path, creating the file and schema
// when missing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a database transaction, rolling back on error.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateTimeFormat)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing decimal %q: %w", s, err)
	}
	return d, nil
}

// nullID maps the model's "0 means none" ids onto SQL NULL.
func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
