package xcontext

import (
	"context"

	"gorm.io/gorm"
)

type dbTx struct {
	db     *gorm.DB
	nested bool
	closed bool
}

// WithDBTransaction begins a transaction and binds it to the returned context,
// so every repository call made with that context joins it. When ctx already
// carries an open transaction the outer one is reused and the matching
// commit/rollback calls become no-ops.
func WithDBTransaction(ctx context.Context) context.Context {
	if outer, ok := ctx.Value(dbTxKey{}).(*dbTx); ok && !outer.closed {
		return context.WithValue(ctx, dbTxKey{}, &dbTx{db: outer.db, nested: true})
	}

	return context.WithValue(ctx, dbTxKey{}, &dbTx{db: DB(ctx).Begin()})
}

// CommitDBTransaction commits the transaction bound to ctx. It is safe to call
// RollbackDBTransaction afterwards, which makes the usual
// begin/defer-rollback/commit sequence possible.
func CommitDBTransaction(ctx context.Context) error {
	tx, ok := ctx.Value(dbTxKey{}).(*dbTx)
	if !ok || tx.closed {
		return nil
	}

	tx.closed = true
	if tx.nested {
		return nil
	}

	return tx.db.Commit().Error
}

func RollbackDBTransaction(ctx context.Context) {
	tx, ok := ctx.Value(dbTxKey{}).(*dbTx)
	if !ok || tx.closed {
		return
	}

	tx.closed = true
	if !tx.nested {
		tx.db.Rollback()
	}
}
