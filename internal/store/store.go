// Package store maps projects, tickets and assets to rows in a relational
// database. One Store is opened at startup and shared by every request; each
// operation runs in its own transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// ErrNotFound is returned by update and delete when no row has the given id.
var ErrNotFound = errors.New("not found")

// PersistenceError wraps a driver or transaction failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Store struct {
	db     *sql.DB
	driver string
	clock  func() time.Time
}

// Open connects to the database and verifies it answers within five seconds.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, errors.Errorf("store: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "store: open")
	}
	if driver == DriverSQLite {
		// SQLite allows a single writer; one connection keeps transactions
		// from failing with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "store: ping")
	}

	return New(db, driver), nil
}

// New wraps an already opened database handle.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver, clock: time.Now}
}

// SetClock replaces the time source used for created_at and updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.clock = now
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping runs a no-op read.
func (s *Store) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return &PersistenceError{Op: "ping", Err: err}
	}
	return nil
}

// now is truncated to microseconds so the value read back matches what was
// written on both Postgres and SQLite.
func (s *Store) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

// withTx runs fn in a transaction. The transaction is committed only when fn
// returns nil and rolled back on every other path, panics included.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return &PersistenceError{Op: op, Err: err}
	}
	if err = tx.Commit(); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// timestamp scans a time column from either driver. pgx hands back a
// time.Time; SQLite may return the stored text instead.
type timestamp struct{ t *time.Time }

var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func (ts timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	}
	return errors.Errorf("store: cannot scan %T into timestamp", src)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return errors.Errorf("store: unrecognised timestamp %q", s)
}
