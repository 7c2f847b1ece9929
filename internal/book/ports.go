package book

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks bookmanager/internal/book Session,Store

// Session is a request-scoped handle on book storage. All calls made
// through one Session belong to the same transaction.
type Session interface {
	List(ctx context.Context, q Query) ([]Book, error)
	Get(ctx context.Context, id int64) (Book, error)
	Insert(ctx context.Context, in CreateInput) (Book, error)
	Update(ctx context.Context, b Book) (Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Store hands out sessions. WithSession commits when fn returns nil and
// rolls back otherwise; the session must not be used after fn returns.
type Store interface {
	WithSession(ctx context.Context, fn func(Session) error) error
}
