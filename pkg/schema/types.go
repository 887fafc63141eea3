// Package schema describes the table and column metadata that completion
// combines with a resolved cursor context.
//
// Metadata is supplied by the caller (from a live connection, a cached
// snapshot, or a file). Nothing in this module fetches it.
package schema

import (
	"sort"
	"strings"
)

// TableKind distinguishes tables from views.
type TableKind string

const (
	KindTable TableKind = "table"
	KindView  TableKind = "view"
)

// Metadata is the schema snapshot for one logical connection.
type Metadata struct {
	Tables []Table `json:"tables" yaml:"tables"`

	// ColumnsByTable is keyed by lower-cased table name.
	ColumnsByTable map[string][]Column `json:"columnsByTable" yaml:"columnsByTable"`
}

// Table is a table or view reference.
type Table struct {
	Name string    `json:"name" yaml:"name"`
	Kind TableKind `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Column is a column of a table.
type Column struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
}

// IsView reports whether the table is a view.
func (t Table) IsView() bool {
	return t.Kind == KindView
}

// Table returns the table with the given name (case-insensitive), or nil.
func (m *Metadata) Table(name string) *Table {
	if m == nil {
		return nil
	}
	for i := range m.Tables {
		if strings.EqualFold(m.Tables[i].Name, name) {
			return &m.Tables[i]
		}
	}
	return nil
}

// Columns returns the columns of the named table (case-insensitive).
func (m *Metadata) Columns(table string) []Column {
	if m == nil || m.ColumnsByTable == nil {
		return nil
	}
	return m.ColumnsByTable[strings.ToLower(table)]
}

// TableNames returns lower-cased table names, sorted.
func (m *Metadata) TableNames() []string {
	if m == nil {
		return nil
	}
	seen := make(map[string]bool, len(m.Tables))
	names := make([]string, 0, len(m.Tables))
	for _, t := range m.Tables {
		key := strings.ToLower(t.Name)
		if !seen[key] {
			seen[key] = true
			names = append(names, key)
		}
	}
	sort.Strings(names)
	return names
}
