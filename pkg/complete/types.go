// Package complete resolves what kind of identifier is expected at a cursor
// position in a SQL buffer and turns that into completion suggestions.
package complete

import (
	"strings"

	"github.com/tentacle-scylla/sqlcontext/pkg/schema"
	"github.com/tentacle-scylla/sqlcontext/pkg/types"
)

// ContextKind identifies what kind of identifier the cursor expects.
type ContextKind string

const (
	ContextUnknown          ContextKind = "unknown"           // Nothing actionable
	ContextTables           ContextKind = "tables"            // After FROM, JOIN, INTO, UPDATE
	ContextColumns          ContextKind = "columns"           // After SELECT, WHERE, ON, ...
	ContextQualifiedColumns ContextKind = "qualified_columns" // After table. or inside INSERT/UPDATE column positions
)

// Context is the result of resolving a cursor position.
type Context struct {
	Kind ContextKind `json:"kind"`

	// Tables lists the canonical names in scope for ContextColumns. Nil when
	// no FROM/JOIN scope has been established.
	Tables []string `json:"tables,omitempty"`

	// Table is the target table for ContextQualifiedColumns.
	Table string `json:"table,omitempty"`
}

// Unknown returns a context with nothing to suggest.
func Unknown() Context {
	return Context{Kind: ContextUnknown}
}

// Tables returns a table-reference context.
func Tables() Context {
	return Context{Kind: ContextTables}
}

// Columns returns a column context scoped to tables. With no tables the
// scope is left nil.
func Columns(tables ...string) Context {
	if len(tables) == 0 {
		return Context{Kind: ContextColumns}
	}
	return Context{Kind: ContextColumns, Tables: tables}
}

// QualifiedColumns returns a context expecting a column of table.
func QualifiedColumns(table string) Context {
	return Context{Kind: ContextQualifiedColumns, Table: table}
}

// String renders the context for logs and CLI output.
func (c Context) String() string {
	switch c.Kind {
	case ContextColumns:
		if len(c.Tables) == 0 {
			return string(c.Kind)
		}
		return string(c.Kind) + "(" + strings.Join(c.Tables, ", ") + ")"
	case ContextQualifiedColumns:
		return string(c.Kind) + "(" + c.Table + ")"
	default:
		return string(c.Kind)
	}
}

// DetectedContext contains the result of analyzing the cursor position.
type DetectedContext struct {
	// Context is the resolved completion context
	Context Context `json:"context"`

	// Prefix is the partial identifier being typed (for filtering)
	Prefix string `json:"prefix"`

	// TokenStart is the start offset of the partial identifier
	TokenStart int `json:"tokenStart"`

	// TokenEnd is the cursor offset
	TokenEnd int `json:"tokenEnd"`

	// Statement is the kind of statement the cursor sits in
	Statement types.StatementType `json:"statement"`
}

// CompletionKind identifies the type of completion item.
type CompletionKind string

const (
	KindKeyword CompletionKind = "keyword"
	KindTable   CompletionKind = "table"
	KindView    CompletionKind = "view"
	KindColumn  CompletionKind = "column"
)

// GroupKind identifies what type of grouping this is.
type GroupKind string

const (
	GroupKindCategory GroupKind = "category" // Tables/views/columns/keywords
	GroupKindSource   GroupKind = "source"   // Columns by source table
)

// CompletionGroup represents a group that completion items can belong to.
// Items can belong to multiple groups (e.g., a column can be in both
// "cat:columns" and "src:users").
type CompletionGroup struct {
	// ID is a unique identifier for the group (e.g., "cat:tables", "src:users")
	ID string `json:"id"`

	// Kind identifies what type of grouping this is
	Kind GroupKind `json:"kind"`

	// Label is the display text for the group
	Label string `json:"label"`

	// Priority controls ordering of groups (lower = first)
	Priority int `json:"priority,omitempty"`
}

// CompletionItem represents a single completion suggestion.
type CompletionItem struct {
	// Label is the display text shown in the completion list
	Label string `json:"label"`

	// Kind identifies the type of completion (keyword, table, column, etc.)
	Kind CompletionKind `json:"kind"`

	// Detail provides additional info (e.g., column type, source table)
	Detail string `json:"detail,omitempty"`

	// InsertText is the text to insert (defaults to Label)
	InsertText string `json:"insertText,omitempty"`

	// SortPriority controls ordering (lower = higher priority)
	SortPriority int `json:"sortPriority,omitempty"`

	// FilterText is used for filtering (defaults to Label if empty)
	FilterText string `json:"filterText,omitempty"`

	// Groups contains IDs of groups this item belongs to.
	Groups []string `json:"groups,omitempty"`
}

// GetInsertText returns the text to insert, defaulting to Label.
func (c *CompletionItem) GetInsertText() string {
	if c.InsertText != "" {
		return c.InsertText
	}
	return c.Label
}

// CompletionResult contains completions along with group definitions.
type CompletionResult struct {
	// Groups contains all group definitions referenced by items.
	Groups []CompletionGroup `json:"groups"`

	// Items contains the completion suggestions.
	Items []CompletionItem `json:"items"`

	// Context is the resolved cursor context the items were built from.
	Context Context `json:"context"`

	// Prefix is the partial identifier the items were filtered by.
	Prefix string `json:"prefix"`
}

// CompletionContext contains all information needed to generate completions.
type CompletionContext struct {
	// Query is the full SQL buffer
	Query string

	// Position is the cursor byte offset in Query
	Position int

	// Metadata is the schema snapshot for the active connection. Optional.
	Metadata *schema.Metadata
}

// CompletionOptions configures completion behavior.
type CompletionOptions struct {
	// MaxItems limits the number of returned completions (0 = unlimited)
	MaxItems int

	// IncludeKeywords adds SQL keywords when the context is unknown
	IncludeKeywords bool
}

// DefaultOptions returns the default completion options.
func DefaultOptions() *CompletionOptions {
	return &CompletionOptions{
		MaxItems:        50,
		IncludeKeywords: true,
	}
}
