package store

import (
	"regexp"
	"strconv"
	"strings"

	"bookmanager/internal/book"
)

const bookColumns = "id, title, author, year, genre, description"

const (
	getBookSQL = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE id = $1`

	insertBookSQL = `
	INSERT INTO books (title, author, year, genre, description)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + bookColumns

	updateBookSQL = `
	UPDATE books
	SET title = $1, author = $2, year = $3, genre = $4, description = $5
	WHERE id = $6
	RETURNING ` + bookColumns

	deleteBookSQL = `DELETE FROM books WHERE id = $1`
)

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (book.Book, error) {
	var b book.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre, &b.Description)
	return b, err
}

// listBooksSQL builds the list query. Filters are OR-ed, each a
// case-insensitive substring match with LIKE wildcards escaped. fold names
// the SQL function that lower-cases text on the target engine.
func listBooksSQL(q book.Query, fold string) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+escapeLike(value)+"%")
		clauses = append(clauses, fold+"("+column+") LIKE "+fold+"($"+strconv.Itoa(len(args))+") ESCAPE '\\'")
	}
	add("title", q.Title)
	add("author", q.Author)
	add("genre", q.Genre)

	var sb strings.Builder
	sb.WriteString("SELECT " + bookColumns + " FROM books")
	if len(clauses) > 0 {
		sb.WriteString(" WHERE (" + strings.Join(clauses, " OR ") + ")")
	}
	sb.WriteString(" ORDER BY id")
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)+1))
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)+2))
	args = append(args, q.Limit, q.Offset)

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var dollarParam = regexp.MustCompile(`\$\d+`)

// rebindQuestion rewrites $N placeholders to ?. Every query here uses
// each placeholder once and in order.
func rebindQuestion(query string) string {
	return dollarParam.ReplaceAllString(query, "?")
}
