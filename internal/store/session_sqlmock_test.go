package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookmanager/internal/book"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLStore_WithSession_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM books WHERE id = \\?").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewSQLStore(db, time.Second)
	var deleted bool
	err = s.WithSession(context.Background(), func(sess book.Session) error {
		var err error
		deleted, err = sess.Delete(context.Background(), 7)
		return err
	})

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_WithSession_RollsBackOnStorageError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM books WHERE id = \\?").
		WithArgs(int64(3)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	s := NewSQLStore(db, time.Second)
	err = s.WithSession(context.Background(), func(sess book.Session) error {
		_, err := sess.Get(context.Background(), 3)
		return err
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "get book 3: connection reset")
	assert.NotErrorIs(t, err, book.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_WithSession_BeginFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	s := NewSQLStore(db, time.Second)
	called := false
	err = s.WithSession(context.Background(), func(sess book.Session) error {
		called = true
		return nil
	})

	assert.ErrorContains(t, err, "begin transaction")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_List_PassesFiltersInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "author", "year", "genre", "description"}).
		AddRow(int64(1), "Dune", "Frank Herbert", 1965, "Sci-Fi", "Spice.")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM books WHERE (.+) OR (.+) ORDER BY id LIMIT \\? OFFSET \\?").
		WithArgs("%dune%", "%sci%", 5, 10).
		WillReturnRows(rows)
	mock.ExpectCommit()

	s := NewSQLStore(db, time.Second)
	var books []book.Book
	err = s.WithSession(context.Background(), func(sess book.Session) error {
		var err error
		books, err = sess.List(context.Background(), book.Query{Title: "dune", Genre: "sci", Limit: 5, Offset: 10})
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, []book.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Sci-Fi", Description: "Spice."}}, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}
