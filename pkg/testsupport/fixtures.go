// Package testsupport carries shared test fixtures: a representative form
// definition, an in-memory persistence store, and golden-file helpers.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/notedhq/go-formkit/pkg/schema"
)

// SampleForm returns a note-taking form exercising most field types. Tests
// mutate their own copy freely; each call builds a fresh value.
func SampleForm() schema.Form {
	titleMax := 100
	tagMax := 10
	return schema.Form{
		Title: "New Note",
		Table: "notes",
		Auto:  schema.AutoFields{UserID: true, CreatedAt: true, UpdatedAt: true},
		Fields: []schema.FieldConfig{
			{Key: "title", Type: schema.TypeText, Label: "Title", Required: true, MaxLength: &titleMax},
			{Key: "content", Type: schema.TypeTextarea, Label: "Content", Rows: 6},
			{Key: "tags", Type: schema.TypeTags, Label: "Tags", MaxTags: &tagMax, AllowCustomTags: true,
				Suggestions: []string{"idea", "reading", "followup"}},
			{Key: "links", Type: schema.TypeLinks, Label: "Links", AllowTitleEdit: true},
			{Key: "project", Type: schema.TypeProjectSelect, Label: "Project"},
		},
	}
}

// LoadForm parses a schema fixture from disk.
func LoadForm(t *testing.T, path string) schema.Form {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read form fixture: %v", err)
	}
	form, err := schema.Parse(data, path)
	if err != nil {
		t.Fatalf("parse form fixture: %v", err)
	}
	return form
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
