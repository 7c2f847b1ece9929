package main

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"bookmanager/internal/book"
	"bookmanager/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuratedBooksAreValid(t *testing.T) {
	v := book.NewValidator()
	for _, in := range curated {
		assert.NoError(t, v.Create(in), in.Title)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(rand.New(rand.NewSource(7)), 25)
	b := generate(rand.New(rand.NewSource(7)), 25)

	assert.Equal(t, a, b)
	v := book.NewValidatorWithClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) })
	for _, in := range a {
		assert.NoError(t, v.Create(in))
	}
}

func TestSeed_RollsBackOnInvalidBook(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, "sqlite://:memory:", time.Second)
	require.NoError(t, err)
	defer st.Close()
	_, err = store.Migrate(ctx, st)
	require.NoError(t, err)

	books := []book.CreateInput{curated[0], {Title: "", Author: "Nobody", Year: 2000, Genre: "None", Description: "x"}}
	_, err = seed(ctx, st, book.NewValidator(), books)

	var verr *book.ValidationError
	require.True(t, errors.As(err, &verr))

	err = st.WithSession(ctx, func(sess book.Session) error {
		got, err := sess.List(ctx, book.Query{Limit: 100})
		assert.Empty(t, got)
		return err
	})
	require.NoError(t, err)
}

func TestRun_SeedsDatabase(t *testing.T) {
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "books.db")
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"--dsn", dsn, "--generated", "5"}, &out))

	st, err := store.Open(ctx, dsn, time.Second)
	require.NoError(t, err)
	defer st.Close()

	err = st.WithSession(ctx, func(sess book.Session) error {
		got, err := sess.List(ctx, book.Query{Limit: 100})
		assert.Len(t, got, len(curated)+5)
		return err
	})
	require.NoError(t, err)

	dune, err := listTitle(ctx, st, "dune")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, dune)
}

func listTitle(ctx context.Context, st store.Store, title string) ([]string, error) {
	var titles []string
	err := st.WithSession(ctx, func(sess book.Session) error {
		books, err := sess.List(ctx, book.Query{Title: title, Limit: 100})
		for _, b := range books {
			titles = append(titles, b.Title)
		}
		return err
	})
	return titles, err
}
