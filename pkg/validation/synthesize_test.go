package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/notedhq/go-formkit/pkg/schema"
	"github.com/notedhq/go-formkit/pkg/validation"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestValidate_RequiredUsesLabel(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "title", Type: schema.TypeText, Label: "Note Title", Required: true},
		{Key: "content", Type: schema.TypeTextarea},
	})

	res := v.Validate(map[string]any{"title": "", "content": ""})
	if res.OK {
		t.Fatalf("expected failure")
	}
	if got := res.Errors["title"]; got != "Note Title is required" {
		t.Fatalf("message mismatch: %q", got)
	}
	if _, ok := res.Errors["content"]; ok {
		t.Fatalf("empty optional field must not error: %#v", res.Errors)
	}
}

func TestValidate_RequiredFallsBackToKey(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "title", Type: schema.TypeText, Required: true},
	})
	res := v.Validate(map[string]any{})
	if got := res.Errors["title"]; got != "title is required" {
		t.Fatalf("message mismatch: %q", got)
	}
}

func TestValidate_EmptyOptionalSkipsRules(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "email", Type: schema.TypeEmail, MinLength: intp(5)},
	})
	res := v.Validate(map[string]any{"email": ""})
	if !res.OK {
		t.Fatalf("empty optional field must pass: %#v", res.Errors)
	}
}

func TestValidate_FirstViolationWins(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "code", Type: schema.TypeText, Label: "Code", MaxLength: intp(3), Pattern: "^[0-9]+$"},
	})
	res := v.Validate(map[string]any{"code": "abcdef"})
	if got := res.Errors["code"]; got != "Code must be at most 3 characters" {
		t.Fatalf("expected the maxLength message first, got %q", got)
	}
}

func TestValidate_TextRules(t *testing.T) {
	cases := []struct {
		name  string
		field schema.FieldConfig
		value any
		want  string
	}{
		{"max length", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeText, MaxLength: intp(3)}, "abcd", "T must be at most 3 characters"},
		{"min length", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeText, MinLength: intp(3)}, "ab", "T must be at least 3 characters"},
		{"bad email", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeEmail}, "not-an-email", "T must be a valid email address"},
		{"good email", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeEmail}, "a@b.test", ""},
		{"bad url", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeURL}, "nope", "T must be a valid URL"},
		{"good url", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeURL}, "https://b.test", ""},
		{"pattern", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeText, Pattern: "^[a-z]+$"}, "ABC", "T has an invalid format"},
		{"invalid pattern skipped", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeText, Pattern: "("}, "anything", ""},
		{"non-string", schema.FieldConfig{Key: "t", Label: "T", Type: schema.TypeText}, 42, "T must be text"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := validation.Synthesize([]schema.FieldConfig{tc.field})
			res := v.Validate(map[string]any{"t": tc.value})
			got := res.Errors["t"]
			if got != tc.want {
				t.Fatalf("error mismatch: got %q want %q", got, tc.want)
			}
			if (tc.want == "") != res.OK {
				t.Fatalf("OK mismatch: %v with errors %#v", res.OK, res.Errors)
			}
		})
	}
}

func TestValidate_RequiredArray(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "tags", Type: schema.TypeTags, Label: "Tags", Required: true},
	})

	if res := v.Validate(map[string]any{"tags": []string{}}); res.OK || res.Errors["tags"] != "Tags is required" {
		t.Fatalf("empty required array must fail: %#v", res)
	}
	if res := v.Validate(map[string]any{"tags": []string{"go"}}); !res.OK {
		t.Fatalf("non-empty array should pass: %#v", res.Errors)
	}
}

func TestValidate_MaxTags(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "tags", Type: schema.TypeTags, Label: "Tags", MaxTags: intp(2)},
	})
	res := v.Validate(map[string]any{"tags": []string{"a", "b", "c"}})
	if got := res.Errors["tags"]; got != "Tags accepts at most 2 tags" {
		t.Fatalf("message mismatch: %q", got)
	}
}

func TestValidate_LinkURLs(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "links", Type: schema.TypeLinks, Label: "Links"},
	})

	bad := v.Validate(map[string]any{"links": []schema.Link{{URL: "https://ok.test"}, {URL: "garbage"}}})
	if bad.OK {
		t.Fatalf("invalid link URL must fail")
	}
	if _, ok := bad.Errors["links"]; !ok {
		t.Fatalf("error keyed to links field expected: %#v", bad.Errors)
	}

	good := v.Validate(map[string]any{"links": []schema.Link{{URL: "https://ok.test"}}})
	if !good.OK {
		t.Fatalf("valid links should pass: %#v", good.Errors)
	}
}

func TestValidate_LinksFromDecodedJSON(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "links", Type: schema.TypeLinks, Label: "Links"},
	})
	res := v.Validate(map[string]any{"links": []any{
		map[string]any{"url": "https://ok.test", "title": "OK"},
	}})
	if !res.OK {
		t.Fatalf("decoded link maps should normalize: %#v", res.Errors)
	}
	want := []schema.Link{{URL: "https://ok.test", Title: "OK"}}
	if diff := cmp.Diff(want, res.Data["links"]); diff != "" {
		t.Fatalf("normalized links mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NumberRange(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "hours", Type: schema.TypeNumber, Label: "Hours", Min: floatp(0), Max: floatp(24)},
	})

	if res := v.Validate(map[string]any{"hours": -1.0}); res.Errors["hours"] != "Hours must be at least 0" {
		t.Fatalf("min message mismatch: %#v", res.Errors)
	}
	if res := v.Validate(map[string]any{"hours": 25.0}); res.Errors["hours"] != "Hours must be at most 24" {
		t.Fatalf("max message mismatch: %#v", res.Errors)
	}
	if res := v.Validate(map[string]any{"hours": nil}); !res.OK {
		t.Fatalf("missing optional number should pass: %#v", res.Errors)
	}
	if res := v.Validate(map[string]any{"hours": "12"}); !res.OK {
		t.Fatalf("numeric string should coerce: %#v", res.Errors)
	}
}

func TestValidate_RequiredCheckboxEnforcesNothing(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "agree", Type: schema.TypeCheckbox, Label: "Agree", Required: true},
	})
	res := v.Validate(map[string]any{"agree": false})
	if !res.OK {
		t.Fatalf("unchecked required checkbox must still pass: %#v", res.Errors)
	}
}

func TestValidate_NonListLinkValueRejected(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "links", Type: schema.TypeLinks, Label: "Links"},
	})
	res := v.Validate(map[string]any{"links": "not a list"})
	if res.OK {
		t.Fatalf("expected failure")
	}
	if got := res.Errors["links"]; got != "Links must be a list of links" {
		t.Fatalf("type message mismatch: %q", got)
	}
}

func TestCheck_SingleField(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "title", Type: schema.TypeText, Label: "Title", Required: true},
	})

	if msg, known := v.Check("title", ""); !known || msg != "Title is required" {
		t.Fatalf("check mismatch: %q known=%v", msg, known)
	}
	if msg, known := v.Check("title", "hello"); !known || msg != "" {
		t.Fatalf("passing value reported error: %q known=%v", msg, known)
	}
	if _, known := v.Check("ghost", "x"); known {
		t.Fatalf("undeclared key must report unknown")
	}
}

func TestValidate_UnknownTypeValidatesAsText(t *testing.T) {
	v := validation.Synthesize([]schema.FieldConfig{
		{Key: "weird", Type: "hologram", Label: "Weird", Required: true},
	})
	if res := v.Validate(map[string]any{"weird": ""}); res.Errors["weird"] != "Weird is required" {
		t.Fatalf("unknown types should validate as text: %#v", res.Errors)
	}
	if res := v.Validate(map[string]any{"weird": "x"}); !res.OK {
		t.Fatalf("unknown type with value should pass: %#v", res.Errors)
	}
}
