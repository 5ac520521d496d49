package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/notedhq/go-formkit/pkg/form"
	"github.com/notedhq/go-formkit/pkg/schema"
)

func TestPrepare_StripsAutoFieldsAndBlanks(t *testing.T) {
	f := schema.Form{
		Table: "notes",
		Auto:  schema.AutoFields{UserID: true, CreatedAt: true, UpdatedAt: true},
		Fields: []schema.FieldConfig{
			{Key: "title", Type: schema.TypeText},
			{Key: "content", Type: schema.TypeTextarea},
		},
	}

	got := form.Prepare(map[string]any{
		"title":      "hello",
		"content":    "",
		"user_id":    "spoofed",
		"created_at": "2020-01-01",
		"updated_at": "2020-01-01",
	}, f)

	want := map[string]any{
		"title":   "hello",
		"content": nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("prepared payload mismatch (-want +got):\n%s", diff)
	}
}

func TestPrepare_KeepsUnflaggedColumns(t *testing.T) {
	f := schema.Form{
		Table:  "notes",
		Auto:   schema.AutoFields{UserID: true},
		Fields: []schema.FieldConfig{{Key: "title", Type: schema.TypeText}},
	}

	got := form.Prepare(map[string]any{
		"title":      "hello",
		"created_at": "caller-managed",
	}, f)

	if got["created_at"] != "caller-managed" {
		t.Fatalf("created_at should survive when not flagged: %#v", got)
	}
	if _, ok := got["user_id"]; ok {
		t.Fatalf("flagged user_id should be stripped: %#v", got)
	}
}

func TestPrepare_Idempotent(t *testing.T) {
	f := schema.Form{
		Table: "notes",
		Auto:  schema.AutoFields{UserID: true, CreatedAt: true, UpdatedAt: true},
		Fields: []schema.FieldConfig{
			{Key: "title", Type: schema.TypeText},
			{Key: "content", Type: schema.TypeTextarea},
		},
	}
	input := map[string]any{"title": "hello", "content": "", "user_id": "u"}

	once := form.Prepare(input, f)
	twice := form.Prepare(once, f)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("prepare is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestPrepare_DoesNotMutateInput(t *testing.T) {
	f := schema.Form{
		Table:  "notes",
		Auto:   schema.AutoFields{UserID: true},
		Fields: []schema.FieldConfig{{Key: "title", Type: schema.TypeText}},
	}
	input := map[string]any{"title": "", "user_id": "u"}
	form.Prepare(input, f)

	if input["title"] != "" || input["user_id"] != "u" {
		t.Fatalf("input mutated: %#v", input)
	}
}

func TestPrepare_AddsNoKeys(t *testing.T) {
	f := schema.Form{
		Table:  "notes",
		Fields: []schema.FieldConfig{{Key: "title", Type: schema.TypeText}},
	}
	got := form.Prepare(map[string]any{"title": "x"}, f)
	if len(got) != 1 {
		t.Fatalf("prepare must not invent keys: %#v", got)
	}
}
