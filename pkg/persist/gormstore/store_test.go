package gormstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/notedhq/go-formkit/pkg/persist"
	"github.com/notedhq/go-formkit/pkg/persist/gormstore"
)

func openStore(t *testing.T) *gormstore.Store {
	t.Helper()
	store, err := gormstore.Open(filepath.Join(t.TempDir(), "test.db"),
		gormstore.WithClock(func() time.Time {
			return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		}))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ddl := `CREATE TABLE notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT,
		created_at DATETIME,
		updated_at DATETIME
	)`
	if err := store.DB().Exec(ddl).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return store
}

func TestInsertAssignsIdentityAndTimestamps(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	saved, err := store.From("notes").Insert(ctx, persist.Row{
		"user_id": "u1",
		"title":   "first",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if saved["id"] == nil || saved["id"] == "" {
		t.Fatalf("expected generated id, got %#v", saved["id"])
	}
	if saved["created_at"] == nil || saved["updated_at"] == nil {
		t.Fatalf("expected timestamps, got %#v", saved)
	}
	if saved["title"] != "first" {
		t.Fatalf("title mismatch: %#v", saved["title"])
	}
}

func TestRowsFilterAndOrder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, title := range []string{"b", "a", "c"} {
		if _, err := store.From("notes").Insert(ctx, persist.Row{"user_id": "u1", "title": title}); err != nil {
			t.Fatalf("insert %q: %v", title, err)
		}
	}
	if _, err := store.From("notes").Insert(ctx, persist.Row{"user_id": "other", "title": "z"}); err != nil {
		t.Fatalf("insert other user: %v", err)
	}

	rows, err := store.From("notes").Eq("user_id", "u1").Order("title", true).Rows(ctx)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows for u1, got %d", len(rows))
	}
	for i, want := range []string{"a", "b", "c"} {
		if rows[i]["title"] != want {
			t.Fatalf("row %d title mismatch: got %#v want %q", i, rows[i]["title"], want)
		}
	}
}

func TestUpdateScopedByFilters(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	saved, err := store.From("notes").Insert(ctx, persist.Row{"user_id": "u1", "title": "draft"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	updated, err := store.From("notes").
		Eq("id", saved["id"]).
		Eq("user_id", "u1").
		Update(ctx, persist.Row{"title": "final"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated["title"] != "final" {
		t.Fatalf("title mismatch after update: %#v", updated["title"])
	}

	_, err = store.From("notes").
		Eq("id", saved["id"]).
		Eq("user_id", "someone-else").
		Update(ctx, persist.Row{"title": "stolen"})
	if !errors.Is(err, persist.ErrNoRows) {
		t.Fatalf("cross-user update should match nothing, got %v", err)
	}
}

func TestUpdateAndDeleteRequireFilters(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.From("notes").Update(ctx, persist.Row{"title": "x"}); !errors.Is(err, persist.ErrUnscoped) {
		t.Fatalf("unscoped update should be refused, got %v", err)
	}
	if err := store.From("notes").Delete(ctx); !errors.Is(err, persist.ErrUnscoped) {
		t.Fatalf("unscoped delete should be refused, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	saved, err := store.From("notes").Insert(ctx, persist.Row{"user_id": "u1", "title": "gone"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := store.From("notes").Eq("id", saved["id"]).Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.From("notes").Eq("id", saved["id"]).One(ctx); !errors.Is(err, persist.ErrNoRows) {
		t.Fatalf("expected ErrNoRows after delete, got %v", err)
	}
}

func TestSelectColumns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.From("notes").Insert(ctx, persist.Row{"user_id": "u1", "title": "t", "content": "c"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	row, err := store.From("notes").Select("title").Eq("user_id", "u1").One(ctx)
	if err != nil {
		t.Fatalf("one: %v", err)
	}
	if _, ok := row["content"]; ok {
		t.Fatalf("content should not be selected: %#v", row)
	}
	if row["title"] != "t" {
		t.Fatalf("title mismatch: %#v", row["title"])
	}
}
