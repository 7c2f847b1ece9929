package book

import (
	"context"
)

// Service provides book-related business logic. It holds no state; every
// call works through the Session it is given.
type Service struct{}

// NewService creates a new book service.
func NewService() *Service {
	return &Service{}
}

// List returns the books matching q.
func (s *Service) List(ctx context.Context, sess Session, q Query) ([]Book, error) {
	return sess.List(ctx, q)
}

// Get returns a book by its id.
func (s *Service) Get(ctx context.Context, sess Session, id int64) (Book, error) {
	return sess.Get(ctx, id)
}

// Create stores a new book from validated input.
func (s *Service) Create(ctx context.Context, sess Session, in CreateInput) (Book, error) {
	return sess.Insert(ctx, in)
}

// Update overwrites the supplied fields of the book with the given id.
func (s *Service) Update(ctx context.Context, sess Session, id int64, in UpdateInput) (Book, error) {
	b, err := sess.Get(ctx, id)
	if err != nil {
		return Book{}, err
	}
	in.Apply(&b)
	return sess.Update(ctx, b)
}

// Delete removes the book with the given id. It reports false when no
// such book exists.
func (s *Service) Delete(ctx context.Context, sess Session, id int64) (bool, error) {
	return sess.Delete(ctx, id)
}
