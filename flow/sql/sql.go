// Package sql loads database/sql query results into collections,
// letting dataflow graphs start from relational data. It is ingestion
// only: query results are materialized once at load time, and the
// engine's own state is never written back.
package sql

import (
	"context"
	"database/sql"

	"github.com/zhy0216/dd-flow/flow/core"
)

// Scanner converts the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query executes the query and materializes its rows into a base
// collection, in result order. Every subscriber gets the full row set
// replayed as Insert changes.
func Query[T comparable](ctx context.Context, db *sql.DB, query string, scanner Scanner[T], args ...any) (core.Collection[T], error) {
	items, err := collect(ctx, db, query, scanner, args...)
	if err != nil {
		return nil, err
	}
	return core.From(items), nil
}

// LoadInput executes the query and seeds a new mutable Input with its
// rows, in result order. Use it when query results are the starting
// membership of a ground-truth collection that keeps changing.
func LoadInput[T comparable](ctx context.Context, db *sql.DB, query string, scanner Scanner[T], args ...any) (*core.Input[T], error) {
	items, err := collect(ctx, db, query, scanner, args...)
	if err != nil {
		return nil, err
	}
	return core.NewInputOf(items), nil
}

func collect[T comparable](ctx context.Context, db *sql.DB, query string, scanner Scanner[T], args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		value, err := scanner(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, value)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
