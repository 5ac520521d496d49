// Package gormstore backs the persistence contract with GORM over SQLite.
// Rows travel as plain column/value maps so schema-driven forms can write to
// any table without generated model structs.
package gormstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	sqlitedialector "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/notedhq/go-formkit/pkg/persist"
)

// Store implements persist.Store on a *gorm.DB.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps an existing GORM handle.
func New(db *gorm.DB, options ...Option) *Store {
	s := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open opens (creating if needed) a SQLite database at path and wraps it.
// The connection is tuned for single-writer embedded use: WAL journaling, a
// busy timeout, and one pooled connection.
func Open(path string, options ...Option) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("gormstore: open %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlitedialector.Dialector{Conn: sqlDB}, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gormstore: init gorm: %w", err)
	}
	if err := db.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
		return nil, fmt.Errorf("gormstore: enable wal: %w", err)
	}
	return New(db, options...), nil
}

// DB exposes the underlying handle for migrations and raw statements.
func (s *Store) DB() *gorm.DB { return s.db }

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("gormstore: close: %w", err)
	}
	return sqlDB.Close()
}

// From starts a query builder scoped to table.
func (s *Store) From(table string) persist.Query {
	return &query{store: s, table: table}
}

type filter struct {
	column string
	value  any
}

type order struct {
	column    string
	ascending bool
}

type query struct {
	store   *Store
	table   string
	columns []string
	filters []filter
	orders  []order
}

func (q *query) Select(columns ...string) persist.Query {
	q.columns = append(q.columns, columns...)
	return q
}

func (q *query) Eq(column string, value any) persist.Query {
	q.filters = append(q.filters, filter{column: column, value: value})
	return q
}

func (q *query) Order(column string, ascending bool) persist.Query {
	q.orders = append(q.orders, order{column: column, ascending: ascending})
	return q
}

func (q *query) Rows(ctx context.Context) ([]persist.Row, error) {
	var rows []map[string]any
	if err := q.build(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormstore: select %s: %w", q.table, err)
	}
	out := make([]persist.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, persist.Row(row))
	}
	return out, nil
}

func (q *query) One(ctx context.Context) (persist.Row, error) {
	var rows []map[string]any
	if err := q.build(ctx).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormstore: select %s: %w", q.table, err)
	}
	if len(rows) == 0 {
		return nil, persist.ErrNoRows
	}
	return persist.Row(rows[0]), nil
}

// Insert writes a new row, assigning id and timestamps when the caller did
// not, and returns the stored row.
func (q *query) Insert(ctx context.Context, row persist.Row) (persist.Row, error) {
	record := make(map[string]any, len(row)+3)
	for key, value := range row {
		record[key] = value
	}
	if _, ok := record["id"]; !ok {
		record["id"] = uuid.NewString()
	}
	now := q.store.now()
	if _, ok := record["created_at"]; !ok {
		record["created_at"] = now
	}
	if _, ok := record["updated_at"]; !ok {
		record["updated_at"] = now
	}

	if err := q.store.db.WithContext(ctx).Table(q.table).Create(record).Error; err != nil {
		return nil, fmt.Errorf("gormstore: insert into %s: %w", q.table, err)
	}
	return q.store.From(q.table).Eq("id", record["id"]).One(ctx)
}

// Update applies patch to every matching row and returns the first one. It
// refuses to run without a filter.
func (q *query) Update(ctx context.Context, patch persist.Row) (persist.Row, error) {
	if len(q.filters) == 0 {
		return nil, persist.ErrUnscoped
	}
	record := make(map[string]any, len(patch)+1)
	for key, value := range patch {
		record[key] = value
	}
	if _, ok := record["updated_at"]; !ok {
		record["updated_at"] = q.store.now()
	}

	tx := q.scope(q.store.db.WithContext(ctx).Table(q.table)).Updates(record)
	if tx.Error != nil {
		return nil, fmt.Errorf("gormstore: update %s: %w", q.table, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, persist.ErrNoRows
	}

	fetch := q.store.From(q.table)
	for _, f := range q.filters {
		fetch = fetch.Eq(f.column, f.value)
	}
	return fetch.One(ctx)
}

// Delete removes every matching row. It refuses to run without a filter.
func (q *query) Delete(ctx context.Context) error {
	if len(q.filters) == 0 {
		return persist.ErrUnscoped
	}
	tx := q.scope(q.store.db.WithContext(ctx).Table(q.table)).Delete(&struct{}{})
	if tx.Error != nil {
		return fmt.Errorf("gormstore: delete from %s: %w", q.table, tx.Error)
	}
	return nil
}

func (q *query) build(ctx context.Context) *gorm.DB {
	tx := q.store.db.WithContext(ctx).Table(q.table)
	if len(q.columns) > 0 {
		tx = tx.Select(q.columns)
	}
	tx = q.scope(tx)
	for _, o := range q.orders {
		direction := "ASC"
		if !o.ascending {
			direction = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", o.column, direction))
	}
	return tx
}

func (q *query) scope(tx *gorm.DB) *gorm.DB {
	for _, f := range q.filters {
		tx = tx.Where(map[string]any{f.column: f.value})
	}
	return tx
}
