package widgets_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/notedhq/go-formkit/pkg/schema"
	"github.com/notedhq/go-formkit/pkg/widgets"
)

func TestLinks_StagedAddFlow(t *testing.T) {
	var emitted any
	w := widgets.NewLinks(schema.FieldConfig{Key: "links", Type: schema.TypeLinks},
		widgets.Context{OnChange: func(v any) { emitted = v }})

	w.SetStaged("  https://example.com  ")
	if !w.Add() {
		t.Fatalf("expected add to succeed")
	}
	if w.Staged() != "" {
		t.Fatalf("staged input should clear after add, got %q", w.Staged())
	}
	want := []schema.Link{{URL: "https://example.com"}}
	if diff := cmp.Diff(want, w.Links()); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, emitted); diff != "" {
		t.Fatalf("emitted mismatch (-want +got):\n%s", diff)
	}
}

func TestLinks_BlankStagedRejected(t *testing.T) {
	w := widgets.NewLinks(schema.FieldConfig{Key: "links", Type: schema.TypeLinks}, widgets.Context{})
	w.SetStaged("   ")
	if w.Add() {
		t.Fatalf("blank staged URL must not add a link")
	}
}

func TestLinks_MaxLinksMakesAddNoOp(t *testing.T) {
	limit := 1
	calls := 0
	w := widgets.NewLinks(schema.FieldConfig{Key: "links", Type: schema.TypeLinks, MaxLinks: &limit},
		widgets.Context{
			Value:    []schema.Link{{URL: "https://a.test"}},
			OnChange: func(any) { calls++ },
		})

	if w.CanAdd() {
		t.Fatalf("CanAdd should report false at the cap")
	}
	w.SetStaged("https://b.test")
	if w.Add() {
		t.Fatalf("add at the cap must be a no-op")
	}
	if calls != 0 {
		t.Fatalf("rejected add must not emit, got %d calls", calls)
	}
	if got := w.Links(); len(got) != 1 {
		t.Fatalf("links mutated by rejected add: %v", got)
	}
}

func TestLinks_MetadataEditGates(t *testing.T) {
	base := []schema.Link{{URL: "https://a.test"}}

	locked := widgets.NewLinks(schema.FieldConfig{Key: "links", Type: schema.TypeLinks},
		widgets.Context{Value: base})
	locked.SetTitle(0, "nope")
	if got := locked.Links()[0].Title; got != "" {
		t.Fatalf("title edit should be gated off, got %q", got)
	}

	open := widgets.NewLinks(schema.FieldConfig{
		Key: "links", Type: schema.TypeLinks,
		AllowTitleEdit: true, AllowDescriptionEdit: true,
	}, widgets.Context{Value: base})
	open.SetTitle(0, "Example")
	open.SetDescription(0, "A site")
	got := open.Links()[0]
	if got.Title != "Example" || got.Description != "A site" {
		t.Fatalf("metadata edits lost: %#v", got)
	}
}

func TestLinks_Remove(t *testing.T) {
	w := widgets.NewLinks(schema.FieldConfig{Key: "links", Type: schema.TypeLinks},
		widgets.Context{Value: []schema.Link{{URL: "https://a.test"}, {URL: "https://b.test"}}})

	w.Remove(0)
	if diff := cmp.Diff([]schema.Link{{URL: "https://b.test"}}, w.Links()); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
	w.Remove(5)
	if got := len(w.Links()); got != 1 {
		t.Fatalf("out of range remove must be a no-op, got %d links", got)
	}
}
