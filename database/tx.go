package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// Transaction executes fn within a single database transaction. Every query
// issued through the bun.Tx commits or rolls back together, which is what
// gives product updates their all-or-nothing dependent-table semantics.
func Transaction(db *DB, ctx context.Context, fn func(tx bun.Tx) error) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(tx)
	})
}
