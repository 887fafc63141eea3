package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToJSON serializes the metadata to JSON bytes.
func (m *Metadata) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ToJSONIndent serializes the metadata to indented JSON bytes.
func (m *Metadata) ToJSONIndent() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// ParseJSON parses metadata from JSON bytes.
func ParseJSON(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.normalize()
	return &m, nil
}

// ParseYAML parses metadata from YAML bytes.
func ParseYAML(data []byte) (*Metadata, error) {
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.normalize()
	return &m, nil
}

// Load reads metadata from a file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func Load(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m *Metadata
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = ParseYAML(data)
	default:
		m, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// SaveToJSON saves the metadata to a JSON file with indentation.
func (m *Metadata) SaveToJSON(path string) error {
	data, err := m.ToJSONIndent()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
