package repository

import "context"

// TxManager runs a function inside a single database transaction. Every
// repository call made with the context passed to fn participates in that
// transaction; returning an error rolls the whole transaction back.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
