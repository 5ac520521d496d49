package testsupport

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notedhq/go-formkit/pkg/persist"
)

// MemoryStore is an in-memory persist.Store for tests. It honours equality
// filters, ordering, and column selection, assigns ids and timestamps on
// insert, and can be forced to fail to exercise error paths.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]persist.Row
	err    error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: map[string][]persist.Row{}}
}

// FailWith makes every subsequent operation return err. Pass nil to recover.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Seed inserts a row verbatim, without id or timestamp assignment.
func (m *MemoryStore) Seed(table string, row persist.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[table] = append(m.tables[table], cloneRow(row))
}

// All returns a copy of a table's rows in insertion order.
func (m *MemoryStore) All(table string) []persist.Row {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]persist.Row, 0, len(m.tables[table]))
	for _, row := range m.tables[table] {
		out = append(out, cloneRow(row))
	}
	return out
}

// From starts a query builder scoped to table.
func (m *MemoryStore) From(table string) persist.Query {
	return &memQuery{store: m, table: table}
}

type memQuery struct {
	store    *MemoryStore
	table    string
	columns  []string
	filters  []persist.Row
	orderBy  string
	orderAsc bool
}

func (q *memQuery) Select(columns ...string) persist.Query {
	q.columns = append(q.columns, columns...)
	return q
}

func (q *memQuery) Eq(column string, value any) persist.Query {
	q.filters = append(q.filters, persist.Row{column: value})
	return q
}

func (q *memQuery) Order(column string, ascending bool) persist.Query {
	q.orderBy = column
	q.orderAsc = ascending
	return q
}

func (q *memQuery) Rows(context.Context) ([]persist.Row, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	if q.store.err != nil {
		return nil, q.store.err
	}

	var out []persist.Row
	for _, row := range q.store.tables[q.table] {
		if q.matches(row) {
			out = append(out, q.project(row))
		}
	}
	if q.orderBy != "" {
		column, asc := q.orderBy, q.orderAsc
		sort.SliceStable(out, func(i, j int) bool {
			a := fmt.Sprint(out[i][column])
			b := fmt.Sprint(out[j][column])
			if asc {
				return a < b
			}
			return a > b
		})
	}
	return out, nil
}

func (q *memQuery) One(ctx context.Context) (persist.Row, error) {
	rows, err := q.Rows(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, persist.ErrNoRows
	}
	return rows[0], nil
}

func (q *memQuery) Insert(_ context.Context, row persist.Row) (persist.Row, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	if q.store.err != nil {
		return nil, q.store.err
	}

	record := cloneRow(row)
	if _, ok := record["id"]; !ok {
		record["id"] = uuid.NewString()
	}
	now := time.Now().UTC()
	if _, ok := record["created_at"]; !ok {
		record["created_at"] = now
	}
	if _, ok := record["updated_at"]; !ok {
		record["updated_at"] = now
	}
	q.store.tables[q.table] = append(q.store.tables[q.table], record)
	return cloneRow(record), nil
}

func (q *memQuery) Update(_ context.Context, patch persist.Row) (persist.Row, error) {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	if q.store.err != nil {
		return nil, q.store.err
	}
	if len(q.filters) == 0 {
		return nil, persist.ErrUnscoped
	}

	var updated persist.Row
	for _, row := range q.store.tables[q.table] {
		if !q.matches(row) {
			continue
		}
		for key, value := range patch {
			row[key] = value
		}
		row["updated_at"] = time.Now().UTC()
		if updated == nil {
			updated = cloneRow(row)
		}
	}
	if updated == nil {
		return nil, persist.ErrNoRows
	}
	return updated, nil
}

func (q *memQuery) Delete(context.Context) error {
	q.store.mu.Lock()
	defer q.store.mu.Unlock()
	if q.store.err != nil {
		return q.store.err
	}
	if len(q.filters) == 0 {
		return persist.ErrUnscoped
	}

	kept := q.store.tables[q.table][:0]
	for _, row := range q.store.tables[q.table] {
		if !q.matches(row) {
			kept = append(kept, row)
		}
	}
	q.store.tables[q.table] = kept
	return nil
}

func (q *memQuery) matches(row persist.Row) bool {
	for _, f := range q.filters {
		for column, want := range f {
			if fmt.Sprint(row[column]) != fmt.Sprint(want) {
				return false
			}
		}
	}
	return true
}

func (q *memQuery) project(row persist.Row) persist.Row {
	if len(q.columns) == 0 {
		return cloneRow(row)
	}
	out := make(persist.Row, len(q.columns))
	for _, column := range q.columns {
		if value, ok := row[column]; ok {
			out[column] = value
		}
	}
	return out
}

func cloneRow(row persist.Row) persist.Row {
	out := make(persist.Row, len(row))
	for key, value := range row {
		out[key] = value
	}
	return out
}
