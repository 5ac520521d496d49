package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a form definition from JSON or YAML. JSON is attempted first
// so YAML's permissiveness never reinterprets a JSON payload; the parsed form
// is validated before it is returned.
func Parse(data []byte, source string) (Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Form{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var form Form
	if err := json.Unmarshal(data, &form); err != nil {
		if err := yaml.Unmarshal(data, &form); err != nil {
			return Form{}, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
		}
	}

	if err := form.Validate(); err != nil {
		return Form{}, fmt.Errorf("schema: file %s: %w", source, err)
	}
	return form, nil
}

// LoadFS walks fsys and parses every JSON/YAML form definition it finds,
// keyed by table name. Duplicate tables across files are rejected.
func LoadFS(fsys fs.FS) (map[string]Form, error) {
	forms := make(map[string]Form)
	if fsys == nil {
		return forms, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isFormFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		form, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := forms[form.Table]; exists {
			return fmt.Errorf("schema: duplicate form for table %q (file %s)", form.Table, path)
		}
		forms[form.Table] = form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return forms, nil
}

func isFormFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
