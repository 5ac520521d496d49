// Package openapi derives form schemas from OpenAPI 3 documents, so services
// that already publish an API contract can serve forms without writing a
// second schema by hand.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/notedhq/go-formkit/pkg/schema"
)

// extensionKey is the vendor extension fields may carry to override the
// inferred field type and widget hints.
const extensionKey = "x-formkit"

var errNoRequestBody = errors.New("openapi: operation has no JSON request body")

// LoadDocument parses and validates an OpenAPI 3 payload.
func LoadDocument(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return spec, nil
}

// FormFromOperation builds a form from the JSON request body of the named
// operation. table names the storage target; the form title falls back to the
// operation summary.
func FormFromOperation(ctx context.Context, spec *openapi3.T, operationID, table string) (schema.Form, error) {
	if err := ctx.Err(); err != nil {
		return schema.Form{}, err
	}
	if spec == nil {
		return schema.Form{}, errors.New("openapi: document is required")
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return schema.Form{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	body := requestSchema(operation)
	if body == nil {
		return schema.Form{}, fmt.Errorf("%w: %s", errNoRequestBody, operationID)
	}

	f := schema.Form{
		Title:       operation.Summary,
		Description: operation.Description,
		Table:       table,
		Fields:      fieldsFromSchema(body),
	}
	if err := f.Validate(); err != nil {
		return schema.Form{}, fmt.Errorf("openapi: derived form for %s: %w", operationID, err)
	}
	return f, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	for contentType, media := range operation.RequestBody.Value.Content {
		if !strings.HasPrefix(contentType, "application/json") {
			continue
		}
		if media.Schema != nil && media.Schema.Value != nil {
			return media.Schema.Value
		}
	}
	return nil
}

// fieldsFromSchema maps object properties to field configs in sorted key
// order, since the underlying property map carries no ordering.
func fieldsFromSchema(body *openapi3.Schema) []schema.FieldConfig {
	required := make(map[string]bool, len(body.Required))
	for _, key := range body.Required {
		required[key] = true
	}

	keys := make([]string, 0, len(body.Properties))
	for key := range body.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]schema.FieldConfig, 0, len(keys))
	for _, key := range keys {
		ref := body.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		field := fieldFromProperty(key, ref.Value)
		field.Required = required[key]
		fields = append(fields, field)
	}
	return fields
}

func fieldFromProperty(key string, prop *openapi3.Schema) schema.FieldConfig {
	field := schema.FieldConfig{
		Key:         key,
		Label:       prop.Title,
		Description: prop.Description,
		Type:        inferType(prop),
	}

	switch field.Type {
	case schema.TypeText, schema.TypeEmail, schema.TypeURL, schema.TypeTextarea:
		if prop.MaxLength != nil {
			limit := int(*prop.MaxLength)
			field.MaxLength = &limit
		}
		if prop.MinLength > 0 {
			limit := int(prop.MinLength)
			field.MinLength = &limit
		}
		field.Pattern = prop.Pattern
	case schema.TypeNumber:
		field.Min = prop.Min
		field.Max = prop.Max
	case schema.TypeSelect:
		field.Options = optionsFromEnum(enumSource(prop))
		field.Multiple = prop.Type.Is(openapi3.TypeArray)
	case schema.TypeTags:
		if prop.MaxItems != nil {
			limit := int(*prop.MaxItems)
			field.MaxTags = &limit
		}
		field.AllowCustomTags = true
	}

	applyExtension(&field, prop.Extensions)
	return field
}

// inferType picks the closest field type from the property's type, format,
// and enum. The extension can still override the result.
func inferType(prop *openapi3.Schema) schema.FieldType {
	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		return schema.TypeCheckbox
	case prop.Type.Is(openapi3.TypeNumber), prop.Type.Is(openapi3.TypeInteger):
		return schema.TypeNumber
	case prop.Type.Is(openapi3.TypeArray):
		if items := itemsSchema(prop); items != nil && len(items.Enum) > 0 {
			return schema.TypeSelect
		}
		return schema.TypeTags
	}

	if len(prop.Enum) > 0 {
		return schema.TypeSelect
	}
	switch prop.Format {
	case "email":
		return schema.TypeEmail
	case "uri", "url":
		return schema.TypeURL
	case "date", "date-time":
		return schema.TypeDate
	}
	return schema.TypeText
}

func itemsSchema(prop *openapi3.Schema) *openapi3.Schema {
	if prop.Items == nil {
		return nil
	}
	return prop.Items.Value
}

func enumSource(prop *openapi3.Schema) []any {
	if prop.Type.Is(openapi3.TypeArray) {
		if items := itemsSchema(prop); items != nil {
			return items.Enum
		}
		return nil
	}
	return prop.Enum
}

func optionsFromEnum(enum []any) []schema.Option {
	out := make([]schema.Option, 0, len(enum))
	for _, entry := range enum {
		value := fmt.Sprint(entry)
		out = append(out, schema.Option{Label: value, Value: value})
	}
	return out
}

// applyExtension overlays the x-formkit vendor extension: an object with
// optional type, suggestions, rows, and placeholder members.
func applyExtension(field *schema.FieldConfig, extensions map[string]any) {
	raw, ok := extensions[extensionKey]
	if !ok {
		return
	}
	ext, ok := raw.(map[string]any)
	if !ok {
		return
	}

	if t, ok := ext["type"].(string); ok && schema.FieldType(t).Known() {
		field.Type = schema.FieldType(t)
	}
	if placeholder, ok := ext["placeholder"].(string); ok {
		field.Placeholder = placeholder
	}
	if rows, ok := ext["rows"].(float64); ok {
		field.Rows = int(rows)
	}
	if suggestions, ok := ext["suggestions"].([]any); ok {
		for _, entry := range suggestions {
			if s, ok := entry.(string); ok {
				field.Suggestions = append(field.Suggestions, s)
			}
		}
	}
	if allowCustom, ok := ext["allowCustom"].(bool); ok {
		field.AllowCustom = allowCustom
	}
}
