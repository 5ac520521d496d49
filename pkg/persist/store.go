// Package persist defines the row-level persistence contract the form engine
// submits through. The shape mirrors a hosted-table client: equality-filtered
// select/insert/update/delete over named tables, with results and failures
// returned as values.
package persist

import (
	"context"
	"errors"
)

// Row is one table record as a column/value map.
type Row = map[string]any

var (
	// ErrNoRows is returned when a query that expects a row matches nothing.
	ErrNoRows = errors.New("persist: no rows")
	// ErrUnscoped rejects updates and deletes that carry no equality filter,
	// so a missing .Eq can never touch a whole table.
	ErrUnscoped = errors.New("persist: update and delete require at least one filter")
)

// Store hands out query builders scoped to a table.
type Store interface {
	From(table string) Query
}

// Query is a chainable builder. Select, Eq, and Order configure the query;
// Rows, One, Insert, Update, and Delete execute it. Builders are single-use.
type Query interface {
	Select(columns ...string) Query
	Eq(column string, value any) Query
	Order(column string, ascending bool) Query

	Rows(ctx context.Context) ([]Row, error)
	One(ctx context.Context) (Row, error)
	Insert(ctx context.Context, row Row) (Row, error)
	Update(ctx context.Context, patch Row) (Row, error)
	Delete(ctx context.Context) error
}
