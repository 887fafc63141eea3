// Package sqlcontext classifies the cursor position in a partially typed
// SQL buffer so an editor knows whether tables, columns, or a specific
// table's columns are expected there.
//
// This is a convenience package that re-exports the main types and functions
// from the sub-packages. For more control, import the sub-packages directly:
//
//   - github.com/tentacle-scylla/sqlcontext/pkg/tokenize - Lossless SQL tokenizer
//   - github.com/tentacle-scylla/sqlcontext/pkg/complete - Context resolution and completions
//   - github.com/tentacle-scylla/sqlcontext/pkg/schema   - Schema metadata
//   - github.com/tentacle-scylla/sqlcontext/pkg/types    - Positions and statement types
package sqlcontext

import (
	"github.com/tentacle-scylla/sqlcontext/pkg/complete"
	"github.com/tentacle-scylla/sqlcontext/pkg/schema"
	"github.com/tentacle-scylla/sqlcontext/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcontext/pkg/types"
)

// Re-export types
type (
	// Token is a lexical unit of a SQL buffer
	Token = tokenize.Token

	// TokenKind classifies a token
	TokenKind = tokenize.Kind

	// Context describes what the cursor position expects
	Context = complete.Context

	// ContextKind identifies the kind of Context
	ContextKind = complete.ContextKind

	// DetectedContext is a Context plus the partial word and statement kind
	DetectedContext = complete.DetectedContext

	// AliasMap maps aliases to table names
	AliasMap = complete.AliasMap

	// CompletionItem represents a single completion suggestion
	CompletionItem = complete.CompletionItem

	// CompletionContext contains all information needed to generate completions
	CompletionContext = complete.CompletionContext

	// CompletionOptions configures completion behavior
	CompletionOptions = complete.CompletionOptions

	// Metadata is a schema snapshot
	Metadata = schema.Metadata

	// Table represents a table or view in the schema
	Table = schema.Table

	// Column represents a column in a table
	Column = schema.Column

	// Position is a line/column location
	Position = types.Position

	// StatementType represents the type of SQL statement
	StatementType = types.StatementType
)

// Re-export context kind constants
const (
	ContextUnknown          = complete.ContextUnknown
	ContextTables           = complete.ContextTables
	ContextColumns          = complete.ContextColumns
	ContextQualifiedColumns = complete.ContextQualifiedColumns
)

// ResolveContext determines what kind of identifier is expected at the
// byte offset cursor in text.
func ResolveContext(text string, cursor int) Context {
	return complete.ResolveContext(text, cursor)
}

// Detect resolves the context along with the partial word at the cursor.
func Detect(text string, cursor int) *DetectedContext {
	return complete.Detect(text, cursor)
}

// WordAtCursor returns the partial identifier ending at cursor.
func WordAtCursor(text string, cursor int) string {
	return complete.WordAtCursor(text, cursor)
}

// Tokenize splits text into tokens
func Tokenize(text string) []Token {
	return tokenize.Tokenize(text)
}

// TokenizeUpTo tokenizes the text before cursor
func TokenizeUpTo(text string, cursor int) []Token {
	return tokenize.TokenizeUpTo(text, cursor)
}

// GetCompletions returns completion items for the given context
func GetCompletions(ctx *CompletionContext) []CompletionItem {
	return complete.GetCompletions(ctx)
}

// NewMetadata creates an empty schema snapshot
func NewMetadata() *Metadata {
	return schema.NewMetadata()
}

// LoadSchema reads schema metadata from a JSON or YAML file
func LoadSchema(path string) (*Metadata, error) {
	return schema.Load(path)
}
