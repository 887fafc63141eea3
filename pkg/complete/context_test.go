package complete

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/tentacle-scylla/sqlcontext/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcontext/pkg/types"
)

// cursorMarker marks the cursor inside a fixture query.
const cursorMarker = "|"

// ContextFixture represents a single context resolution case
type ContextFixture struct {
	Name     string `yaml:"name"`
	Query    string `yaml:"query"`
	Position *int   `yaml:"position,omitempty"`

	Expect struct {
		Kind   string   `yaml:"kind"`
		Tables []string `yaml:"tables,omitempty"`
		Table  string   `yaml:"table,omitempty"`
	} `yaml:"expect"`
}

// query returns the fixture text with the marker removed and the cursor.
func (f *ContextFixture) query() (string, int) {
	if idx := strings.Index(f.Query, cursorMarker); idx >= 0 {
		return strings.Replace(f.Query, cursorMarker, "", 1), idx
	}
	if f.Position != nil {
		return f.Query, *f.Position
	}
	return f.Query, len(f.Query)
}

func loadContextFixtures(t *testing.T) []ContextFixture {
	t.Helper()

	data, err := os.ReadFile("testdata/context_fixtures.yaml")
	if err != nil {
		t.Fatalf("Failed to load fixtures: %v", err)
	}

	var ff struct {
		Tests []ContextFixture `yaml:"tests"`
	}
	if err := yaml.Unmarshal(data, &ff); err != nil {
		t.Fatalf("Failed to parse fixtures: %v", err)
	}
	return ff.Tests
}

func TestContextFixtures(t *testing.T) {
	for _, f := range loadContextFixtures(t) {
		t.Run(f.Name, func(t *testing.T) {
			query, pos := f.query()
			got := ResolveContext(query, pos)

			t.Logf("Query: %q (pos %d) -> %s", query, pos, got)

			want := Context{
				Kind:   ContextKind(f.Expect.Kind),
				Tables: f.Expect.Tables,
				Table:  f.Expect.Table,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ResolveContext mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveContextScopeIsNilWhenEmpty(t *testing.T) {
	for _, query := range []string{"SELECT ", "SELECT * FROM (SELECT ", "SELECT count("} {
		got := ResolveContext(query, len(query))
		if got.Kind != ContextColumns {
			t.Fatalf("ResolveContext(%q).Kind = %s, want columns", query, got.Kind)
		}
		if got.Tables != nil {
			t.Errorf("ResolveContext(%q).Tables = %#v, want nil", query, got.Tables)
		}
	}
}

func TestResolveContextSubqueryTablesStayInScope(t *testing.T) {
	query := "SELECT a FROM (SELECT b FROM t) WHERE "
	got := ResolveContext(query, len(query))
	if diff := cmp.Diff(Columns("t"), got); diff != "" {
		t.Errorf("ResolveContext mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveContextCursorBounds(t *testing.T) {
	query := "SELECT * FROM users WHERE "

	if got := ResolveContext(query, -10); got.Kind != ContextUnknown {
		t.Errorf("negative cursor = %s, want unknown", got)
	}
	if got := ResolveContext(query, 1000); got.Kind != ContextColumns {
		t.Errorf("cursor past end = %s, want columns", got)
	}
	// Cursor right after FROM: text after the cursor does not change the
	// classification.
	if got := ResolveContext(query, 14); got.Kind != ContextTables {
		t.Errorf("cursor after FROM = %s, want tables", got)
	}
}

// Heuristic alias binding may add spurious names but must never drop a
// table that a FROM or JOIN clause references.
func TestAliasHeuristicNeverNarrowsScope(t *testing.T) {
	queries := []string{
		"SELECT a b, c d FROM users x JOIN orders y ON ",
		"SELECT price AS p FROM products WHERE ",
		"SELECT * FROM users u JOIN orders ON u.id = orders.uid JOIN items i ON ",
		"SELECT first last FROM users WHERE ",
	}
	required := [][]string{
		{"users", "orders"},
		{"products"},
		{"users", "orders", "items"},
		{"users"},
	}

	for i, query := range queries {
		got := ResolveContext(query, len(query))
		for _, table := range required[i] {
			found := false
			for _, have := range got.Tables {
				if have == table {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("ResolveContext(%q).Tables = %v, missing %q", query, got.Tables, table)
			}
		}
	}
}

func TestStatementTokens(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"stops at next statement", "SELECT u.| FROM users u; SELECT * FROM orders o", []string{"SELECT", "u", ".", "FROM", "users", "u"}},
		{"starts after previous statement", "DELETE FROM a; SELECT | FROM b", []string{"SELECT", "FROM", "b"}},
		{"cursor inside a word", "SELECT * FROM us|ers u", []string{"SELECT", "*", "FROM", "users", "u"}},
		{"cursor right after semicolon", "SELECT 1;| SELECT 2", []string{"SELECT", "2"}},
		{"cursor inside string", "SELECT 'a|;b' FROM t; x", []string{"SELECT", "FROM", "t"}},
		{"empty", "|", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ContextFixture{Query: tt.query}
			query, pos := f.query()

			var got []string
			for _, tok := range statementTokens(query, tokenize.TokenizeUpTo(query, pos), pos) {
				got = append(got, tok.Text)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("statementTokens(%q, %d) mismatch (-want +got):\n%s", query, pos, diff)
			}
		})
	}
}

func TestExtractAliasesKeepsTableBinding(t *testing.T) {
	toks := tokenize.Significant(tokenize.Tokenize("FROM users u WHERE u.id IN (SELECT uid u FROM orders)"))
	if got := ExtractAliases(toks).Resolve("u"); got != "users" {
		t.Errorf("Resolve(u) = %q, want users", got)
	}

	// A later FROM binding still replaces an earlier one.
	toks = tokenize.Significant(tokenize.Tokenize("SELECT uid u FROM users u"))
	if got := ExtractAliases(toks).Resolve("u"); got != "users" {
		t.Errorf("Resolve(u) = %q, want users", got)
	}
}

func TestExtractAliases(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  AliasMap
	}{
		{"implicit", "FROM users u", AliasMap{"u": "users"}},
		{"explicit", "FROM users AS u", AliasMap{"u": "users"}},
		{"case folded", "FROM Users AS U", AliasMap{"u": "users"}},
		{"quoted", "FROM `Users` `U`", AliasMap{"u": "users"}},
		{"stopper words", "FROM users WHERE", AliasMap{}},
		{"quoted stopper", "FROM users `where`", AliasMap{}},
		{"self alias ignored", "FROM users users", AliasMap{}},
		{"join", "FROM a x JOIN b AS y ON x.id = y.id", AliasMap{"x": "a", "y": "b"}},
		{"column alias", "SELECT price p", AliasMap{"p": "price"}},
		{"dangling AS", "FROM users AS", AliasMap{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAliases(tokenize.Significant(tokenize.Tokenize(tt.query)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractAliases(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestAliasMapResolve(t *testing.T) {
	m := AliasMap{"u": "users"}
	if got := m.Resolve("U"); got != "users" {
		t.Errorf("Resolve(U) = %q, want users", got)
	}
	if got := m.Resolve("Orders"); got != "orders" {
		t.Errorf("Resolve(Orders) = %q, want orders", got)
	}

	var empty AliasMap
	if got := empty.Resolve("x"); got != "x" {
		t.Errorf("nil map Resolve(x) = %q, want x", got)
	}
}

func TestExtractScope(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"SELECT 1", nil},
		{"FROM users", []string{"users"}},
		{"FROM users JOIN users", []string{"users"}},
		{"FROM a LEFT JOIN b RIGHT OUTER JOIN c", []string{"a", "b", "c"}},
		{"FROM a, b AS y, c z WHERE", []string{"a", "b", "c"}},
		{"FROM db.schema.t", []string{"t"}},
		{"FROM (SELECT 1) x", nil},
		{"FROM", nil},
	}

	for _, tt := range tests {
		toks := tokenize.Significant(tokenize.Tokenize(tt.query))
		got := ExtractScope(toks, ExtractAliases(toks))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ExtractScope(%q) mismatch (-want +got):\n%s", tt.query, diff)
		}
	}
}

func TestExtractScopeFoldsAliasTargets(t *testing.T) {
	toks := tokenize.Significant(tokenize.Tokenize("FROM users"))
	got := ExtractScope(toks, AliasMap{"o": "orders", "u": "users"})
	if diff := cmp.Diff([]string{"users", "orders"}, got); diff != "" {
		t.Errorf("ExtractScope mismatch (-want +got):\n%s", diff)
	}
}

func TestWordAtCursor(t *testing.T) {
	tests := []struct {
		text   string
		cursor int
		want   string
	}{
		{"", 0, ""},
		{"SELECT na", 9, "na"},
		{"SELECT u.na", 11, "na"},
		{"SELECT u.", 9, ""},
		{"SELECT user_id2", 15, "user_id2"},
		{"SELECT name FROM", 9, "na"},
		{"SELECT ", 7, ""},
		{"abc", 99, "abc"},
		{"abc", -1, ""},
		{"x(éa", 5, "a"},
	}

	for _, tt := range tests {
		if got := WordAtCursor(tt.text, tt.cursor); got != tt.want {
			t.Errorf("WordAtCursor(%q, %d) = %q, want %q", tt.text, tt.cursor, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		position  int
		wantKind  ContextKind
		prefix    string
		start     int
		statement types.StatementType
	}{
		{"empty", "", 0, ContextUnknown, "", 0, types.StatementUnknown},
		{"partial table", "SELECT * FROM us", 16, ContextTables, "us", 14, types.StatementSelect},
		{"update", "UPDATE users SET na", 19, ContextQualifiedColumns, "na", 17, types.StatementUpdate},
		{"insert", "INSERT INTO t (", 15, ContextQualifiedColumns, "", 15, types.StatementInsert},
		{"second statement", "DELETE FROM a; SELECT ", 22, ContextColumns, "", 22, types.StatementSelect},
		{"create", "CREATE TABLE x", 14, ContextUnknown, "x", 13, types.StatementCreateTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detect(tt.query, tt.position)
			if d.Context.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", d.Context.Kind, tt.wantKind)
			}
			if d.Prefix != tt.prefix {
				t.Errorf("Prefix = %q, want %q", d.Prefix, tt.prefix)
			}
			if d.TokenStart != tt.start || d.TokenEnd != tt.position {
				t.Errorf("Token range = [%d,%d), want [%d,%d)", d.TokenStart, d.TokenEnd, tt.start, tt.position)
			}
			if d.Statement != tt.statement {
				t.Errorf("Statement = %s, want %s", d.Statement, tt.statement)
			}
		})
	}
}

func TestContextString(t *testing.T) {
	tests := []struct {
		ctx  Context
		want string
	}{
		{Unknown(), "unknown"},
		{Tables(), "tables"},
		{Columns(), "columns"},
		{Columns("a", "b"), "columns(a, b)"},
		{QualifiedColumns("users"), "qualified_columns(users)"},
	}
	for _, tt := range tests {
		if got := tt.ctx.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

// Inputs that stress the scanner and resolver; nothing here may panic.
func TestResolveContextNeverPanics(t *testing.T) {
	inputs := []string{
		")))))) SELECT ",
		"(((((( FROM ",
		"SELECT ) ( ) FROM ",
		".",
		"..",
		"AS AS AS",
		"INTO",
		"UPDATE SET",
		"SET",
		"BY",
		"'",
		"`",
		"/*",
		";;;",
		"\xff\xfe",
		"SELECT * FROM users u WHERE u.id = 'x\\' AND u.",
	}

	for _, input := range inputs {
		for cursor := 0; cursor <= len(input); cursor++ {
			_ = ResolveContext(input, cursor)
			_ = Detect(input, cursor)
		}
	}
}
