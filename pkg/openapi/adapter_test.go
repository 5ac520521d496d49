package openapi_test

import (
	"context"
	"testing"

	"github.com/notedhq/go-formkit/pkg/openapi"
	"github.com/notedhq/go-formkit/pkg/schema"
)

const notesSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "Notes API", "version": "1.0.0"},
  "paths": {
    "/notes": {
      "post": {
        "operationId": "createNote",
        "summary": "New Note",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["title"],
                "properties": {
                  "title": {"type": "string", "title": "Title", "maxLength": 100},
                  "content": {
                    "type": "string",
                    "x-formkit": {"type": "textarea", "rows": 6, "placeholder": "Write something"}
                  },
                  "contact": {"type": "string", "format": "email"},
                  "homepage": {"type": "string", "format": "uri"},
                  "due": {"type": "string", "format": "date"},
                  "hours": {"type": "number", "minimum": 0, "maximum": 24},
                  "done": {"type": "boolean"},
                  "priority": {"type": "string", "enum": ["low", "high"]},
                  "tags": {
                    "type": "array",
                    "maxItems": 10,
                    "items": {"type": "string"},
                    "x-formkit": {"suggestions": ["idea", "reading"]}
                  }
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func loadForm(t *testing.T) schema.Form {
	t.Helper()
	spec, err := openapi.LoadDocument(context.Background(), []byte(notesSpec))
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	f, err := openapi.FormFromOperation(context.Background(), spec, "createNote", "notes")
	if err != nil {
		t.Fatalf("form from operation: %v", err)
	}
	return f
}

func TestFormFromOperation_Basics(t *testing.T) {
	f := loadForm(t)

	if f.Title != "New Note" {
		t.Fatalf("title mismatch: %q", f.Title)
	}
	if f.Table != "notes" {
		t.Fatalf("table mismatch: %q", f.Table)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("derived form should validate: %v", err)
	}
}

func TestFormFromOperation_TypeInference(t *testing.T) {
	f := loadForm(t)

	cases := map[string]schema.FieldType{
		"title":    schema.TypeText,
		"content":  schema.TypeTextarea,
		"contact":  schema.TypeEmail,
		"homepage": schema.TypeURL,
		"due":      schema.TypeDate,
		"hours":    schema.TypeNumber,
		"done":     schema.TypeCheckbox,
		"priority": schema.TypeSelect,
		"tags":     schema.TypeTags,
	}
	for key, want := range cases {
		field, ok := f.Field(key)
		if !ok {
			t.Fatalf("field %q missing", key)
		}
		if field.Type != want {
			t.Fatalf("field %q type mismatch: got %q want %q", key, field.Type, want)
		}
	}
}

func TestFormFromOperation_Constraints(t *testing.T) {
	f := loadForm(t)

	title, _ := f.Field("title")
	if !title.Required {
		t.Fatalf("title should be required")
	}
	if title.MaxLength == nil || *title.MaxLength != 100 {
		t.Fatalf("title maxLength mismatch: %#v", title.MaxLength)
	}
	if title.Label != "Title" {
		t.Fatalf("title label mismatch: %q", title.Label)
	}

	hours, _ := f.Field("hours")
	if hours.Min == nil || *hours.Min != 0 || hours.Max == nil || *hours.Max != 24 {
		t.Fatalf("hours range mismatch: %#v %#v", hours.Min, hours.Max)
	}

	priority, _ := f.Field("priority")
	if len(priority.Options) != 2 || priority.Options[0].Value != "low" {
		t.Fatalf("priority options mismatch: %#v", priority.Options)
	}

	tags, _ := f.Field("tags")
	if tags.MaxTags == nil || *tags.MaxTags != 10 {
		t.Fatalf("tags maxTags mismatch: %#v", tags.MaxTags)
	}
	if len(tags.Suggestions) != 2 {
		t.Fatalf("tags suggestions mismatch: %#v", tags.Suggestions)
	}

	content, _ := f.Field("content")
	if content.Rows != 6 || content.Placeholder != "Write something" {
		t.Fatalf("extension overrides lost: %#v", content)
	}
}

func TestFormFromOperation_UnknownOperation(t *testing.T) {
	spec, err := openapi.LoadDocument(context.Background(), []byte(notesSpec))
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if _, err := openapi.FormFromOperation(context.Background(), spec, "deleteNote", "notes"); err == nil {
		t.Fatalf("expected unknown operation error")
	}
}
