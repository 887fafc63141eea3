package complete

import (
	"sort"
	"strings"

	"github.com/tentacle-scylla/sqlcontext/pkg/tokenize"
)

// AliasMap maps a lower-cased alias to the canonical table name it stands
// for. It is rebuilt on every call; nothing is cached.
type AliasMap map[string]string

// Resolve returns the table bound to name, or name itself (lower-cased)
// when it is not an alias.
func (m AliasMap) Resolve(name string) string {
	key := strings.ToLower(name)
	if table, ok := m[key]; ok {
		return table
	}
	return key
}

// Tables returns the distinct alias targets, sorted.
func (m AliasMap) Tables() []string {
	seen := make(map[string]bool, len(m))
	tables := make([]string, 0, len(m))
	for _, table := range m {
		if !seen[table] {
			seen[table] = true
			tables = append(tables, table)
		}
	}
	sort.Strings(tables)
	return tables
}

// aliasStoppers are words that may follow a table name without being an
// alias for it.
var aliasStoppers = map[string]bool{
	"ON": true, "WHERE": true, "SET": true, "JOIN": true,
	"LEFT": true, "RIGHT": true, "INNER": true, "OUTER": true, "CROSS": true, "FULL": true,
	"ORDER": true, "GROUP": true, "HAVING": true, "LIMIT": true,
}

// ExtractAliases binds aliases found in tokens. Two forms are recognized:
// "name AS alias" and "name alias". The second is a heuristic; any two
// adjacent identifiers bind, so it can produce spurious entries (column
// aliases, for one). A binding whose table follows FROM or JOIN is never
// replaced by one whose table does not, so spurious entries only widen a
// scope and never drop a real table from it.
func ExtractAliases(tokens []tokenize.Token) AliasMap {
	aliases := make(AliasMap)
	refs := tableRefs(tokens)
	fromRef := make(map[string]bool)

	for i := 0; i+1 < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != tokenize.KindIdentifier {
			continue
		}

		var alias tokenize.Token
		next := tokens[i+1]
		switch {
		case next.Is("AS") && i+2 < len(tokens) && tokens[i+2].Kind == tokenize.KindIdentifier:
			alias = tokens[i+2]
		case next.Kind == tokenize.KindIdentifier && !aliasStoppers[strings.ToUpper(next.Name())]:
			alias = next
		default:
			continue
		}

		a, t := canonical(alias), canonical(tok)
		if a == "" || t == "" || a == t {
			continue
		}
		if fromRef[a] && !refs[i] {
			continue
		}
		aliases[a] = t
		fromRef[a] = refs[i]
	}
	return aliases
}

// tableRefs returns the indexes of the table names referenced by FROM or
// JOIN clauses in tokens. For a dotted name the last segment is recorded.
func tableRefs(tokens []tokenize.Token) map[int]bool {
	refs := make(map[int]bool)
	for i, tok := range tokens {
		if !tok.Is("FROM") && !tok.Is("JOIN") {
			continue
		}

		j := i + 1
		for j < len(tokens) && tokens[j].IsJoinQualifier() {
			j++
		}

		// FROM a [AS] x, b [AS] y, ...
		for j < len(tokens) && tokens[j].Kind == tokenize.KindIdentifier {
			j = qualifiedEnd(tokens, j)
			refs[j] = true
			j++

			if j < len(tokens) && tokens[j].Is("AS") {
				j++
			}
			if j < len(tokens) && tokens[j].Kind == tokenize.KindIdentifier {
				j++
			}
			if j >= len(tokens) || tokens[j].Kind != tokenize.KindComma {
				break
			}
			j++
		}
	}
	return refs
}

// ExtractScope collects the canonical names of every table referenced by a
// FROM or JOIN clause in tokens, then adds every alias target. Names are
// de-duplicated and keep first-seen order. The result is nil when nothing
// is in scope.
func ExtractScope(tokens []tokenize.Token, aliases AliasMap) []string {
	refs := tableRefs(tokens)
	indexes := make([]int, 0, len(refs))
	for i := range refs {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	var tables []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			tables = append(tables, name)
		}
	}

	for _, i := range indexes {
		add(canonical(tokens[i]))
	}
	for _, table := range aliases.Tables() {
		add(table)
	}
	return tables
}
