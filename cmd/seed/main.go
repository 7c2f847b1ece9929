package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"bookmanager/internal/book"
	"bookmanager/internal/config"
	"bookmanager/internal/platform/logging"
	"bookmanager/internal/store"

	"github.com/alecthomas/kong"
)

// CLI is the seed command line.
type CLI struct {
	DSN       string        `help:"Database DSN (postgres://..., sqlite://path)" env:"DB_DSN" default:"sqlite://books.db"`
	Timeout   time.Duration `help:"Timeout for connecting and for each query" env:"DB_TIMEOUT" default:"5s"`
	LogLevel  string        `help:"Log level (debug, info, warn, error)" env:"LOG_LEVEL" default:"info"`
	Generated int           `help:"Number of synthetic books to add after the curated ones" default:"0"`
	Seed      int64         `help:"Random seed for synthetic books" default:"1"`
}

var curated = []book.CreateInput{
	{Title: "Dune", Author: "Frank Herbert", Year: 1965, Genre: "Science Fiction", Description: "A noble family fights for control of the desert planet Arrakis."},
	{Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813, Genre: "Romance", Description: "Elizabeth Bennet and Mr. Darcy overcome their first impressions."},
	{Title: "Nineteen Eighty-Four", Author: "George Orwell", Year: 1949, Genre: "Dystopian", Description: "Winston Smith struggles under the surveillance of Big Brother."},
	{Title: "The Hobbit", Author: "J. R. R. Tolkien", Year: 1937, Genre: "Fantasy", Description: "Bilbo Baggins joins a company of dwarves on a quest for treasure."},
	{Title: "Moby-Dick", Author: "Herman Melville", Year: 1851, Genre: "Adventure", Description: "Captain Ahab hunts the white whale that took his leg."},
	{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", Year: 1969, Genre: "Science Fiction", Description: "An envoy visits a world whose people have no fixed sex."},
	{Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Year: 1866, Genre: "Classic", Description: "A poor student commits a murder and wrestles with his conscience."},
	{Title: "The Name of the Rose", Author: "Umberto Eco", Year: 1980, Genre: "Mystery", Description: "A friar investigates deaths at an Italian abbey."},
}

var words = []string{"River", "Shadow", "Glass", "Harbor", "Ember", "Atlas", "Orchard", "Signal", "Winter", "Lantern"}
var genres = []string{"Fiction", "Science Fiction", "History", "Science", "Romance", "Mystery", "Biography", "Philosophy"}

func main() {
	config.LoadEnvFiles()
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("seed"),
		kong.Description("Load sample books into the database."),
		kong.UsageOnError(),
		kong.Writers(out, out),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if cli.Generated < 0 {
		return fmt.Errorf("--generated must not be negative")
	}

	logger := logging.New(out, cli.LogLevel)

	st, err := store.Open(ctx, cli.DSN, cli.Timeout)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := store.Migrate(ctx, st); err != nil {
		return err
	}

	books := append([]book.CreateInput{}, curated...)
	books = append(books, generate(rand.New(rand.NewSource(cli.Seed)), cli.Generated)...)

	inserted, err := seed(ctx, st, book.NewValidator(), books)
	if err != nil {
		return err
	}
	logger.Info("Successfully inserted books", "count", inserted)
	return nil
}

// seed validates and inserts books in one transaction. Nothing is kept
// if any book fails.
func seed(ctx context.Context, st book.Store, validator *book.Validator, books []book.CreateInput) (int, error) {
	service := book.NewService()
	inserted := 0
	err := st.WithSession(ctx, func(sess book.Session) error {
		for i, in := range books {
			if err := validator.Create(in); err != nil {
				return fmt.Errorf("book %d (%q): %w", i, in.Title, err)
			}
			b, err := service.Create(ctx, sess, in)
			if err != nil {
				return fmt.Errorf("insert %q: %w", in.Title, err)
			}
			if err := validator.Book(b); err != nil {
				return fmt.Errorf("stored %q: %w", in.Title, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func generate(rng *rand.Rand, count int) []book.CreateInput {
	books := make([]book.CreateInput, 0, count)
	for i := 0; i < count; i++ {
		word := words[rng.Intn(len(words))]
		books = append(books, book.CreateInput{
			Title:       fmt.Sprintf("Book Title %d - %s", i+1, word),
			Author:      fmt.Sprintf("Author %s", words[rng.Intn(len(words))]),
			Year:        1950 + rng.Intn(75),
			Genre:       genres[rng.Intn(len(genres))],
			Description: fmt.Sprintf("This is a book about %s.", word),
		})
	}
	return books
}
