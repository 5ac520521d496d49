package noted_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/notedhq/go-formkit/pkg/auth"
	"github.com/notedhq/go-formkit/pkg/noted"
	"github.com/notedhq/go-formkit/pkg/persist"
	"github.com/notedhq/go-formkit/pkg/testsupport"
	"github.com/notedhq/go-formkit/pkg/widgets"
)

func newService(t *testing.T) (*noted.Service, *testsupport.MemoryStore) {
	t.Helper()
	store := testsupport.NewMemoryStore()
	svc, err := noted.NewService(store, &auth.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestSchema_Validates(t *testing.T) {
	f := noted.Schema()
	if err := f.Validate(); err != nil {
		t.Fatalf("schema should validate: %v", err)
	}
	if f.Table != "notes" {
		t.Fatalf("table mismatch: %q", f.Table)
	}
	if !f.Auto.UserID || !f.Auto.CreatedAt || !f.Auto.UpdatedAt {
		t.Fatalf("all auto fields should be managed: %#v", f.Auto)
	}
}

func TestNewService_RequiresStoreAndUser(t *testing.T) {
	if _, err := noted.NewService(nil, &auth.User{ID: "u"}); !errors.Is(err, noted.ErrNotConfigured) {
		t.Fatalf("nil store: got %v", err)
	}
	if _, err := noted.NewService(testsupport.NewMemoryStore(), nil); !errors.Is(err, noted.ErrNotConfigured) {
		t.Fatalf("nil user: got %v", err)
	}
	if _, err := noted.NewService(testsupport.NewMemoryStore(), &auth.User{}); !errors.Is(err, noted.ErrNotConfigured) {
		t.Fatalf("blank user id: got %v", err)
	}
}

func TestCreateSession_SavesScopedNote(t *testing.T) {
	svc, store := newService(t)

	session, err := svc.NewCreateSession()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := session.Set("title", "Grocery run"); err != nil {
		t.Fatalf("set title: %v", err)
	}

	saved, err := session.Submit(testsupport.Context())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if saved["user_id"] != "user-1" {
		t.Fatalf("note should belong to the service user: %#v", saved)
	}
	if len(store.All("notes")) != 1 {
		t.Fatalf("expected one stored note")
	}
}

func TestEditSession_SeedsFromStoredNote(t *testing.T) {
	svc, store := newService(t)
	store.Seed("notes", persist.Row{
		"id": "note-1", "user_id": "user-1",
		"title": "Draft", "content": "wip",
	})

	session, err := svc.NewEditSession(testsupport.Context(), "note-1")
	if err != nil {
		t.Fatalf("edit session: %v", err)
	}
	if got, _ := session.Value("title"); got != "Draft" {
		t.Fatalf("title should seed from the record: %v", got)
	}

	if err := session.Set("title", "Final"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if _, err := session.Submit(testsupport.Context()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := store.All("notes")[0]["title"]; got != "Final" {
		t.Fatalf("stored note should be patched: %v", got)
	}
}

func TestEditSession_OtherUsersNoteNotFound(t *testing.T) {
	svc, store := newService(t)
	store.Seed("notes", persist.Row{"id": "note-1", "user_id": "user-2", "title": "Theirs"})

	if _, err := svc.NewEditSession(testsupport.Context(), "note-1"); !errors.Is(err, persist.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestList_ScopedAndOrdered(t *testing.T) {
	svc, store := newService(t)
	store.Seed("notes", persist.Row{"id": "a", "user_id": "user-1", "title": "Old", "updated_at": "2026-01-01"})
	store.Seed("notes", persist.Row{"id": "b", "user_id": "user-1", "title": "New", "updated_at": "2026-02-01"})
	store.Seed("notes", persist.Row{"id": "c", "user_id": "user-2", "title": "Theirs", "updated_at": "2026-03-01"})

	rows, err := svc.List(testsupport.Context())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var titles []string
	for _, row := range rows {
		titles = append(titles, row["title"].(string))
	}
	if diff := cmp.Diff([]string{"New", "Old"}, titles); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestDelete_ScopedToUser(t *testing.T) {
	svc, store := newService(t)
	store.Seed("notes", persist.Row{"id": "a", "user_id": "user-1"})
	store.Seed("notes", persist.Row{"id": "b", "user_id": "user-2"})

	if err := svc.Delete(testsupport.Context(), "a"); err != nil {
		t.Fatalf("delete own note: %v", err)
	}
	if err := svc.Delete(testsupport.Context(), "b"); err != nil {
		t.Fatalf("deleting an unmatched id is a no-op: %v", err)
	}
	remaining := store.All("notes")
	if len(remaining) != 1 || remaining[0]["id"] != "b" {
		t.Fatalf("only the other user's note should remain: %#v", remaining)
	}
}

func TestProjects_SourcesWidgetOptions(t *testing.T) {
	svc, store := newService(t)
	store.Seed("projects", persist.Row{"id": "p1", "user_id": "user-1", "name": "home"})
	store.Seed("projects", persist.Row{"id": "p2", "user_id": "user-1", "name": "work"})
	store.Seed("projects", persist.Row{"id": "p3", "user_id": "user-2", "name": "secret"})

	var source widgets.ProjectSource = svc
	names, err := source.Projects(testsupport.Context())
	if err != nil {
		t.Fatalf("projects: %v", err)
	}
	if diff := cmp.Diff([]string{"home", "work"}, names); diff != "" {
		t.Fatalf("projects mismatch (-want +got):\n%s", diff)
	}
}
