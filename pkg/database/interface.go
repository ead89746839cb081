package database

import (
	"context"

	"gorm.io/gorm"
)

type (
	txKey    struct{}
	hooksKey struct{}
)

// commitHooks run once the outermost transaction has committed.
type commitHooks struct {
	fns []func()
}

// IDatabase is what repositories depend on. DB resolves to the transaction
// carried by ctx when there is one.
type IDatabase interface {
	// Database returns the root *gorm.DB
	Database() *gorm.DB
	// DB returns the handle bound to ctx
	DB(ctx context.Context) *gorm.DB
	// Transaction runs fn in a transaction, nested calls join the outer one
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GormDB GORM database implementation
type GormDB struct {
	db *gorm.DB
}

// NewGormDB create GORM database instance
func NewGormDB(db *gorm.DB) IDatabase {
	return &GormDB{db: db}
}

func (g *GormDB) Database() *gorm.DB {
	return g.db
}

func (g *GormDB) DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return g.db.WithContext(ctx)
}

func (g *GormDB) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	hooks := &commitHooks{}
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(context.WithValue(txCtx, hooksKey{}, hooks))
	})
	if err != nil {
		return err
	}
	for _, h := range hooks.fns {
		h()
	}
	return nil
}

// AfterCommit defers fn until the transaction carried by ctx commits. It is
// dropped on rollback, and runs at once when ctx carries no transaction.
func AfterCommit(ctx context.Context, fn func()) {
	if hooks, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		hooks.fns = append(hooks.fns, fn)
		return
	}
	fn()
}

// InTransaction reports whether ctx carries a transaction.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}
