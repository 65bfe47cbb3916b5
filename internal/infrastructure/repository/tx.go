package repository

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
)

// ErrNoTransaction is returned by Commit/Rollback when no transaction is open
var ErrNoTransaction = errors.New("no transaction in progress")

type txContextKey struct{}

// WithTx binds an open transaction to the context. Repositories resolve their
// handle through dbFromContext, so every call made with this context joins the
// transaction.
func WithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// dbFromContext returns the transaction bound to ctx when one is active and
// falls back to db otherwise. Calls without a transaction use a short-lived
// connection from the pool.
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return db
}

// TxManager runs a function inside one database transaction. The transaction
// commits when fn returns nil and rolls back when fn returns an error or
// panics.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction executes fn with a transaction bound to its context
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(WithTx(ctx, tx))
	})
}

// UnitOfWork is the explicit Begin/Commit/Rollback form of the transaction
// boundary. It owns at most one open transaction: Begin while a transaction is
// already open reuses it rather than nesting, and Commit/Rollback release the
// connection and return the unit to idle. A UnitOfWork must not be shared
// across concurrent goroutines.
type UnitOfWork struct {
	db *gorm.DB

	mu sync.Mutex
	tx *gorm.DB
}

// NewUnitOfWork creates a new unit of work
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Begin opens a transaction, or reuses the one already open
func (u *UnitOfWork) Begin(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx != nil {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

// InTransaction reports whether a transaction is currently open
func (u *UnitOfWork) InTransaction() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.tx != nil
}

// Context binds the open transaction to ctx; with no transaction open it
// returns ctx unchanged.
func (u *UnitOfWork) Context(ctx context.Context) context.Context {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return ctx
	}
	return WithTx(ctx, u.tx)
}

// Commit commits the open transaction and returns the unit to idle
func (u *UnitOfWork) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback rolls back the open transaction and returns the unit to idle
func (u *UnitOfWork) Rollback() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}
