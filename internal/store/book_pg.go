package store

//Repository implementation (Postgres)

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookmanager/internal/book"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PGStore keeps books in PostgreSQL.
type PGStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPGStore wraps an open pool.
func NewPGStore(pool *pgxpool.Pool, timeout time.Duration) *PGStore {
	return &PGStore{pool: pool, timeout: timeout}
}

// WithSession runs fn inside one transaction.
func (s *PGStore) WithSession(ctx context.Context, fn func(book.Session) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&bookPG{db: tx, timeout: s.timeout})
	})
}

// WithMigrator hands fn a goose provider bound to this database.
func (s *PGStore) WithMigrator(fn func(*goose.Provider) error) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	provider, err := newProvider(goose.DialectPostgres, db, "migrations/postgres")
	if err != nil {
		return err
	}
	return fn(provider)
}

// Ping checks that the database answers.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type bookPG struct {
	db      pgQuerier
	timeout time.Duration
}

func (r *bookPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *bookPG) List(ctx context.Context, q book.Query) ([]book.Book, error) {
	query, args := listBooksSQL(q, "LOWER")

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
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

func (r *bookPG) Get(ctx context.Context, id int64) (book.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(timeoutCtx, getBookSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

func (r *bookPG) Insert(ctx context.Context, in book.CreateInput) (book.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(timeoutCtx, insertBookSQL,
		in.Title, in.Author, in.Year, in.Genre, in.Description,
	))
	if err != nil {
		return book.Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *bookPG) Update(ctx context.Context, b book.Book) (book.Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	updated, err := scanBook(r.db.QueryRow(timeoutCtx, updateBookSQL,
		b.Title, b.Author, b.Year, b.Genre, b.Description, b.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, fmt.Errorf("update book %d: %w", b.ID, err)
	}
	return updated, nil
}

func (r *bookPG) Delete(ctx context.Context, id int64) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, deleteBookSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete book %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
