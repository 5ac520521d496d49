package widgets_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/notedhq/go-formkit/pkg/schema"
	"github.com/notedhq/go-formkit/pkg/widgets"
)

func tagsField(opts ...func(*schema.FieldConfig)) schema.FieldConfig {
	cfg := schema.FieldConfig{Key: "tags", Type: schema.TypeTags, AllowCustomTags: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func TestTags_CommitAndRemoveRoundTrip(t *testing.T) {
	var emitted any
	w := widgets.NewTags(tagsField(), widgets.Context{OnChange: func(v any) { emitted = v }})

	w.SetBuffer("  go  ")
	if !w.Enter() {
		t.Fatalf("expected commit to succeed")
	}
	if w.Buffer() != "" {
		t.Fatalf("buffer should clear after commit, got %q", w.Buffer())
	}
	if diff := cmp.Diff([]string{"go"}, w.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"go"}, emitted); diff != "" {
		t.Fatalf("emitted mismatch (-want +got):\n%s", diff)
	}

	w.Remove("go")
	if got := w.Tags(); len(got) != 0 {
		t.Fatalf("expected no tags after removal, got %v", got)
	}
}

func TestTags_DuplicateCommitIsNoOp(t *testing.T) {
	calls := 0
	w := widgets.NewTags(tagsField(), widgets.Context{
		Value:    []string{"go"},
		OnChange: func(any) { calls++ },
	})

	w.SetBuffer("go")
	if w.Enter() {
		t.Fatalf("duplicate commit should be rejected")
	}
	if calls != 0 {
		t.Fatalf("duplicate commit must not emit, got %d calls", calls)
	}
	if diff := cmp.Diff([]string{"go"}, w.Tags()); diff != "" {
		t.Fatalf("tags mutated by rejected commit (-want +got):\n%s", diff)
	}
}

func TestTags_MaxTagsCap(t *testing.T) {
	limit := 2
	w := widgets.NewTags(tagsField(func(c *schema.FieldConfig) { c.MaxTags = &limit }), widgets.Context{
		Value: []string{"a", "b"},
	})

	w.SetBuffer("c")
	if w.Enter() {
		t.Fatalf("commit at the cap should be rejected")
	}
	if diff := cmp.Diff([]string{"a", "b"}, w.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestTags_BackspaceRemovesLastOnlyWhenBufferEmpty(t *testing.T) {
	w := widgets.NewTags(tagsField(), widgets.Context{Value: []string{"a", "b"}})

	w.SetBuffer("x")
	w.Backspace()
	if diff := cmp.Diff([]string{"a", "b"}, w.Tags()); diff != "" {
		t.Fatalf("backspace with text in the buffer must not touch tags (-want +got):\n%s", diff)
	}

	w.SetBuffer("")
	w.Backspace()
	if diff := cmp.Diff([]string{"a"}, w.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestTags_Suggestions(t *testing.T) {
	w := widgets.NewTags(tagsField(func(c *schema.FieldConfig) {
		c.Suggestions = []string{"golang", "gopher", "rust"}
	}), widgets.Context{Value: []string{"gopher"}})

	if got := w.Suggestions(); len(got) != 0 {
		t.Fatalf("no suggestions expected with empty buffer, got %v", got)
	}

	w.SetBuffer("GO")
	if diff := cmp.Diff([]string{"golang"}, w.Suggestions()); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}

	if !w.Choose("golang") {
		t.Fatalf("choosing a suggestion should commit it")
	}
	if diff := cmp.Diff([]string{"gopher", "golang"}, w.Tags()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestTags_CustomRejectedWhenSuggestionsBound(t *testing.T) {
	w := widgets.NewTags(tagsField(func(c *schema.FieldConfig) {
		c.AllowCustomTags = false
		c.Suggestions = []string{"golang"}
	}), widgets.Context{})

	w.SetBuffer("rust")
	if w.Enter() {
		t.Fatalf("free-typed tag should be rejected when custom tags are off")
	}
	w.SetBuffer("golang")
	if !w.Enter() {
		t.Fatalf("suggested tag should commit")
	}
}

func TestTags_EscapeClearsBuffer(t *testing.T) {
	w := widgets.NewTags(tagsField(func(c *schema.FieldConfig) {
		c.Suggestions = []string{"golang"}
	}), widgets.Context{})

	w.SetBuffer("go")
	if !w.Open() {
		t.Fatalf("suggestion list should open while typing a match")
	}
	w.Escape()
	if w.Buffer() != "" || w.Open() {
		t.Fatalf("escape should clear the buffer and close the list")
	}
}
