package schema

import "strings"

// NewMetadata creates an empty metadata snapshot.
func NewMetadata() *Metadata {
	return &Metadata{
		Tables:         make([]Table, 0),
		ColumnsByTable: make(map[string][]Column),
	}
}

// AddTable adds a table and returns the metadata for chaining.
// Adding an existing name (case-insensitive) is a no-op.
func (m *Metadata) AddTable(name string) *Metadata {
	return m.add(name, KindTable)
}

// AddView adds a view and returns the metadata for chaining.
func (m *Metadata) AddView(name string) *Metadata {
	return m.add(name, KindView)
}

func (m *Metadata) add(name string, kind TableKind) *Metadata {
	if m.Table(name) == nil {
		m.Tables = append(m.Tables, Table{Name: name, Kind: kind})
	}
	return m
}

// AddColumn appends a column to a table, registering the table if needed.
func (m *Metadata) AddColumn(table, name, typ string) *Metadata {
	if m.Table(table) == nil {
		m.AddTable(table)
	}
	if m.ColumnsByTable == nil {
		m.ColumnsByTable = make(map[string][]Column)
	}
	key := strings.ToLower(table)
	m.ColumnsByTable[key] = append(m.ColumnsByTable[key], Column{Name: name, Type: typ})
	return m
}

// normalize lower-cases column map keys and defaults table kinds, so
// metadata decoded from files matches the lookup contract.
func (m *Metadata) normalize() {
	for i := range m.Tables {
		if m.Tables[i].Kind == "" {
			m.Tables[i].Kind = KindTable
		}
	}
	if m.ColumnsByTable == nil {
		m.ColumnsByTable = make(map[string][]Column)
		return
	}
	for key, cols := range m.ColumnsByTable {
		lower := strings.ToLower(key)
		if lower != key {
			delete(m.ColumnsByTable, key)
			m.ColumnsByTable[lower] = append(m.ColumnsByTable[lower], cols...)
		}
	}
}
