package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

type whereClause struct {
	column   string
	operator string // "=" or "IN"
	value    any
	values   []any
}

type orderClause struct {
	column    string
	direction OrderDirection
}

// QueryBuilder provides a small fluent API over bun for the query shapes this
// service needs: equality/membership filters, multi-column ordering, limits,
// and the usual select/insert/update/delete executors. It accepts any
// bun.IDB, so the same builder runs inside or outside a transaction.
type QueryBuilder[T any] struct {
	idb     bun.IDB
	wheres  []whereClause
	orders  []orderClause
	limit   *int
	timeout time.Duration
}

// Query creates a new QueryBuilder for model T against idb (a *DB or a bun.Tx).
func Query[T any](idb bun.IDB) *QueryBuilder[T] {
	return &QueryBuilder[T]{idb: idb}
}

// Where adds an equality condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{column: column, operator: "=", value: value})
	return q
}

// WhereIn adds a membership condition (column IN (values...))
func (q *QueryBuilder[T]) WhereIn(column string, values []any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{column: column, operator: "IN", values: values})
	return q
}

// WhereNull adds a column IS NULL condition
func (q *QueryBuilder[T]) WhereNull(column string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, whereClause{column: column, operator: "IS NULL"})
	return q
}

// OrderBy adds an ORDER BY clause; repeat for multi-column ordering
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, orderClause{column: column, direction: direction})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limit = &limit
	return q
}

// Timeout sets a per-query timeout
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

func (q *QueryBuilder[T]) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

func (q *QueryBuilder[T]) applyToSelect(query *bun.SelectQuery) *bun.SelectQuery {
	for _, w := range q.wheres {
		switch w.operator {
		case "IN":
			query = query.Where("? IN (?)", bun.Ident(w.column), bun.In(w.values))
		case "IS NULL":
			query = query.Where("? IS NULL", bun.Ident(w.column))
		default:
			query = query.Where("? = ?", bun.Ident(w.column), w.value)
		}
	}
	for _, o := range q.orders {
		query = query.OrderExpr("? ?", bun.Ident(o.column), bun.Safe(o.direction))
	}
	if q.limit != nil {
		query = query.Limit(*q.limit)
	}
	return query
}

func (q *QueryBuilder[T]) applyToUpdate(query *bun.UpdateQuery) *bun.UpdateQuery {
	for _, w := range q.wheres {
		switch w.operator {
		case "IN":
			query = query.Where("? IN (?)", bun.Ident(w.column), bun.In(w.values))
		case "IS NULL":
			query = query.Where("? IS NULL", bun.Ident(w.column))
		default:
			query = query.Where("? = ?", bun.Ident(w.column), w.value)
		}
	}
	return query
}

func (q *QueryBuilder[T]) applyToDelete(query *bun.DeleteQuery) *bun.DeleteQuery {
	for _, w := range q.wheres {
		switch w.operator {
		case "IN":
			query = query.Where("? IN (?)", bun.Ident(w.column), bun.In(w.values))
		case "IS NULL":
			query = query.Where("? IS NULL", bun.Ident(w.column))
		default:
			query = query.Where("? = ?", bun.Ident(w.column), w.value)
		}
	}
	return query
}

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	var data []T

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		data = nil // reset on retry
		var model T
		query := q.applyToSelect(q.idb.NewSelect().Model(&model))
		return query.Scan(ctx, &data)
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// First executes the query and returns the first matching record with
// automatic retry. Returns nil, nil when no row matches.
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	var data T

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		query := q.applyToSelect(q.idb.NewSelect().Model(&data)).Limit(1)
		return query.Scan(ctx)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return &data, nil
}

// Count executes the query and returns the count of matching records
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	var count int

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.applyToSelect(q.idb.NewSelect().Model(&model))
		var err error
		count, err = query.Count(ctx)
		return err
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Insert inserts a new record and returns it with automatic retry
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.idb.NewInsert().Model(data).Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// InsertMany inserts multiple records in one statement with automatic retry
func (q *QueryBuilder[T]) InsertMany(ctx context.Context, data []T) ([]T, error) {
	start := time.Now()

	if len(data) == 0 {
		return data, nil
	}

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		_, err := q.idb.NewInsert().Model(&data).Exec(ctx)
		return err
	})

	if err != nil {
		return nil, fmt.Errorf("failed to execute bulk insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update updates records matching the query from a column→value map and
// returns the number of affected rows
func (q *QueryBuilder[T]) Update(ctx context.Context, data map[string]any) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.applyToUpdate(q.idb.NewUpdate().Model(&model))

		for key, value := range data {
			query = query.Set("? = ?", bun.Ident(key), value)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query and returns the number of
// affected rows
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	start := time.Now()
	var rowsAffected int64

	ctx, cancel := q.queryContext(ctx)
	defer cancel()

	err := WithRetry(ctx, func() error {
		var model T
		query := q.applyToDelete(q.idb.NewDelete().Model(&model))

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}
