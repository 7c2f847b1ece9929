package book

import (
	"errors"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book represents a book entity.
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Year        int    `json:"year"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

// CreateInput is the body of a create request.
type CreateInput struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Year        int    `json:"year"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

// UpdateInput is the body of an update request. A nil field was not
// supplied and leaves the stored value untouched.
type UpdateInput struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Year        *int    `json:"year"`
	Genre       *string `json:"genre"`
	Description *string `json:"description"`
}

// Empty reports whether no field was supplied.
func (in UpdateInput) Empty() bool {
	return in.Title == nil && in.Author == nil && in.Year == nil &&
		in.Genre == nil && in.Description == nil
}

// Apply overwrites the fields of b that are set in the input.
func (in UpdateInput) Apply(b *Book) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Author != nil {
		b.Author = *in.Author
	}
	if in.Year != nil {
		b.Year = *in.Year
	}
	if in.Genre != nil {
		b.Genre = *in.Genre
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
}

// Query defines filters and pagination for listing books.
// Non-empty Title, Author and Genre are OR-ed together.
type Query struct {
	Title  string
	Author string
	Genre  string
	Limit  int
	Offset int
}

// HasFilters reports whether any text filter is set.
func (q Query) HasFilters() bool {
	return q.Title != "" || q.Author != "" || q.Genre != ""
}
