package store

import (
	"database/sql/driver"
	"testing"

	"bookmanager/internal/book"

	"github.com/stretchr/testify/assert"
)

func TestListBooksSQL(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		query, args := listBooksSQL(book.Query{Limit: 100}, "LOWER")
		assert.Equal(t, "SELECT id, title, author, year, genre, description FROM books ORDER BY id LIMIT $1 OFFSET $2", query)
		assert.Equal(t, []any{100, 0}, args)
	})

	t.Run("all filters", func(t *testing.T) {
		query, args := listBooksSQL(book.Query{Title: "a", Author: "b", Genre: "c", Limit: 10, Offset: 20}, "LOWER")
		assert.Contains(t, query, `WHERE (LOWER(title) LIKE LOWER($1) ESCAPE '\' OR LOWER(author) LIKE LOWER($2) ESCAPE '\' OR LOWER(genre) LIKE LOWER($3) ESCAPE '\')`)
		assert.Contains(t, query, "LIMIT $4 OFFSET $5")
		assert.Equal(t, []any{"%a%", "%b%", "%c%", 10, 20}, args)
	})

	t.Run("fold function", func(t *testing.T) {
		query, _ := listBooksSQL(book.Query{Title: "a", Limit: 1}, sqliteFold)
		assert.Contains(t, query, `casefold(title) LIKE casefold($1) ESCAPE '\'`)
	})
}

func TestCasefold(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{"Über Alles", "über alles"},
		{[]byte("ÉMILE"), "émile"},
		{nil, nil},
		{int64(7), int64(7)},
	}
	for _, tt := range tests {
		got, err := casefold(nil, []driver.Value{tt.in})
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now\\`, escapeLike(`50% off_now\`))
}

func TestRebindQuestion(t *testing.T) {
	assert.Equal(t, "UPDATE books SET title = ? WHERE id = ?", rebindQuestion("UPDATE books SET title = $1 WHERE id = $2"))
}
