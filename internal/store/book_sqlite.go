package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookmanager/internal/book"

	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

// sqliteFold lower-cases Unicode text. SQLite's own LOWER only folds ASCII.
const sqliteFold = "casefold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(sqliteFold, 1, casefold)
}

func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// SQLStore keeps books in SQLite through database/sql.
type SQLStore struct {
	db      *sql.DB
	timeout time.Duration
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sql.DB, timeout time.Duration) *SQLStore {
	return &SQLStore{db: db, timeout: timeout}
}

// OpenSQLite opens the SQLite database at path. A single connection is
// used so ":memory:" databases survive and writers never contend.
func OpenSQLite(path string, timeout time.Duration) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return NewSQLStore(db, timeout), nil
}

// WithSession runs fn inside one transaction.
func (s *SQLStore) WithSession(ctx context.Context, fn func(book.Session) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// No-op once committed.
		_ = tx.Rollback()
	}()

	if err := fn(&bookSQL{db: tx, timeout: s.timeout}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// WithMigrator hands fn a goose provider bound to this database.
func (s *SQLStore) WithMigrator(fn func(*goose.Provider) error) error {
	provider, err := newProvider(goose.DialectSQLite3, s.db, "migrations/sqlite")
	if err != nil {
		return err
	}
	return fn(provider)
}

// Ping checks that the database answers.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type bookSQL struct {
	db      sqlQuerier
	timeout time.Duration
}

func (r *bookSQL) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *bookSQL) List(ctx context.Context, q book.Query) ([]book.Book, error) {
	query, args := listBooksSQL(q, sqliteFold)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, rebindQuestion(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *bookSQL) Get(ctx context.Context, id int64) (book.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRowContext(timeoutCtx, rebindQuestion(getBookSQL), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *bookSQL) Insert(ctx context.Context, in book.CreateInput) (book.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRowContext(timeoutCtx, rebindQuestion(insertBookSQL),
		in.Title, in.Author, in.Year, in.Genre, in.Description,
	))
	if err != nil {
		return book.Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *bookSQL) Update(ctx context.Context, b book.Book) (book.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	updated, err := scanBook(r.db.QueryRowContext(timeoutCtx, rebindQuestion(updateBookSQL),
		b.Title, b.Author, b.Year, b.Genre, b.Description, b.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, fmt.Errorf("update book %d: %w", b.ID, err)
	}
	return updated, nil
}

func (r *bookSQL) Delete(ctx context.Context, id int64) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.db.ExecContext(timeoutCtx, rebindQuestion(deleteBookSQL), id)
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	return n > 0, nil
}
