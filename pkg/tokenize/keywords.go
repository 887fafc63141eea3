package tokenize

import (
	"sort"
	"strings"
)

// keywords is the reserved-word vocabulary. It covers the clause keywords
// the context resolver inspects plus the literals and operators that would
// otherwise be mistaken for identifiers. It is not a complete SQL keyword
// list.
var keywords = map[string]struct{}{
	// Clauses
	"SELECT": {}, "FROM": {}, "WHERE": {}, "ORDER": {}, "GROUP": {}, "BY": {},
	"HAVING": {}, "ON": {}, "AS": {}, "INTO": {}, "UPDATE": {}, "SET": {},
	"INSERT": {}, "VALUES": {}, "LIMIT": {}, "OFFSET": {},

	// Joins
	"JOIN": {}, "LEFT": {}, "RIGHT": {}, "INNER": {}, "OUTER": {}, "CROSS": {}, "FULL": {},

	// Literals and operators
	"NULL": {}, "TRUE": {}, "FALSE": {}, "AND": {}, "OR": {}, "NOT": {}, "IN": {},
	"LIKE": {}, "BETWEEN": {}, "IS": {}, "DISTINCT": {}, "ASC": {}, "DESC": {},
	"CASE": {}, "WHEN": {}, "THEN": {}, "ELSE": {}, "END": {},

	// Set operations
	"UNION": {}, "EXCEPT": {}, "INTERSECT": {},

	// DDL
	"CREATE": {}, "ALTER": {}, "DROP": {}, "TABLE": {}, "INDEX": {}, "VIEW": {},
}

// IsKeyword reports whether word is a reserved word (case-insensitive).
func IsKeyword(word string) bool {
	_, ok := keywords[strings.ToUpper(word)]
	return ok
}

// Keywords returns the reserved words in alphabetical order.
func Keywords() []string {
	result := make([]string, 0, len(keywords))
	for kw := range keywords {
		result = append(result, kw)
	}
	sort.Strings(result)
	return result
}

// JoinQualifiers are the keywords that may precede or stand in for JOIN.
var JoinQualifiers = []string{"LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "FULL"}

// IsJoinQualifier reports whether the token is one of JoinQualifiers.
func (t Token) IsJoinQualifier() bool {
	if t.Kind != KindKeyword {
		return false
	}
	for _, q := range JoinQualifiers {
		if t.Normalized == q {
			return true
		}
	}
	return false
}
