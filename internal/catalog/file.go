package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.yaml.in/yaml/v3"
)

// ReadFile loads a catalog from a JSON or YAML file. An empty file is an empty catalog.
func ReadFile(path string) ([]RoleRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return []RoleRecord{}, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Decode parses catalog data. The document is either a list of roles or
// a mapping with the list under the "roles" key.
func Decode(data []byte) ([]RoleRecord, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if raw == nil {
		return []RoleRecord{}, nil
	}

	if doc, ok := raw.(map[string]any); ok {
		items, found := doc["roles"]
		if !found {
			return nil, errors.New("catalog document has no roles list")
		}
		raw = items
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("catalog must be a list of roles, got %T", raw)
	}

	var roles []RoleRecord
	if err := mapstructure.Decode(items, &roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}

	for idx, role := range roles {
		if strings.TrimSpace(role.Role) == "" {
			return nil, fmt.Errorf("role at index %d has no name", idx)
		}
	}

	if roles == nil {
		roles = []RoleRecord{}
	}

	return roles, nil
}
