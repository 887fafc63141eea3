package complete

import (
	"strings"

	"github.com/tentacle-scylla/sqlcontext/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcontext/pkg/types"
)

// ResolveContext determines what kind of identifier is expected at cursor.
//
// Classification only looks at the text before the cursor. Table scope and
// alias bindings are read from the whole statement containing the cursor
// (statements are separated by ';'), so "SELECT u.| FROM users u" resolves
// u to users. Comments and string literals are invisible, including one the
// cursor sits in. The function is pure and never fails: input it cannot
// make sense of yields ContextUnknown or an unscoped ContextColumns.
func ResolveContext(text string, cursor int) Context {
	c, _ := resolve(text, clampCursor(cursor, len(text)))
	return c
}

// Detect resolves the context at cursor along with the partial word being
// typed and the kind of the surrounding statement.
func Detect(text string, cursor int) *DetectedContext {
	cursor = clampCursor(cursor, len(text))
	prefix := WordAtCursor(text, cursor)
	c, stmt := resolve(text, cursor)

	return &DetectedContext{
		Context:    c,
		Prefix:     prefix,
		TokenStart: cursor - len(prefix),
		TokenEnd:   cursor,
		Statement:  statementType(stmt),
	}
}

// resolve returns the context at cursor and the significant tokens of the
// statement containing it.
func resolve(text string, cursor int) (Context, []tokenize.Token) {
	raw := tokenize.TokenizeUpTo(text, cursor)
	stmt := statementTokens(text, raw, cursor)
	return classify(currentStatement(tokenize.Significant(raw)), stmt), stmt
}

// classify applies the clause rules to sig, the significant tokens of the
// current statement before the cursor. stmt supplies aliases and scope.
func classify(sig, stmt []tokenize.Token) Context {
	if len(sig) == 0 {
		return Unknown()
	}

	aliases := ExtractAliases(stmt)
	if qualifier, ok := dotQualifier(sig); ok {
		return QualifiedColumns(aliases.Resolve(qualifier))
	}

	idx := lastContextKeyword(sig)
	if idx < 0 {
		return Unknown()
	}

	switch kw := sig[idx]; kw.Normalized {
	case "FROM", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "FULL":
		return Tables()

	case "SELECT", "WHERE", "HAVING", "ON", "BY":
		return Columns(ExtractScope(stmt, aliases)...)

	case "SET":
		if u := enclosingUpdate(sig, idx); u >= 0 {
			if table := tableAfter(sig, u, ""); table != "" {
				return QualifiedColumns(table)
			}
		}
		return Columns(ExtractScope(stmt, aliases)...)

	case "INTO":
		return resolveInto(sig, idx)

	case "UPDATE":
		return resolveUpdate(sig, idx)
	}

	return Unknown()
}

// statementTokens returns the significant tokens of the ';'-separated
// statement containing cursor. The prefix tokens are reused up to the last
// one, which the cursor may have cut short; scanning resumes there and
// stops at the first ';' at or after the cursor.
func statementTokens(text string, raw []tokenize.Token, cursor int) []tokenize.Token {
	head, resume := raw, cursor
	if n := len(raw); n > 0 {
		head, resume = raw[:n-1], raw[n-1].Offset
	}
	tail := tokenize.TokenizeFrom(text, resume, func(tok tokenize.Token) bool {
		return tok.Offset >= cursor && isSemicolon(tok)
	})

	all := make([]tokenize.Token, 0, len(head)+len(tail))
	all = append(append(all, head...), tail...)
	return statementAt(tokenize.Significant(all), cursor)
}

// lastContextKeyword scans backward for the nearest clause keyword outside
// any parenthesized group. Depth never goes below zero, so an unclosed '('
// before the cursor is treated as top level from then on.
func lastContextKeyword(sig []tokenize.Token) int {
	depth := 0
	for i := len(sig) - 1; i >= 0; i-- {
		tok := sig[i]
		switch tok.Kind {
		case tokenize.KindRightParen:
			depth++
		case tokenize.KindLeftParen:
			if depth > 0 {
				depth--
			}
		case tokenize.KindKeyword:
			if depth == 0 && isContextKeyword(sig, i) {
				return i
			}
		}
	}
	return -1
}

func isContextKeyword(sig []tokenize.Token, i int) bool {
	switch sig[i].Normalized {
	case "FROM", "JOIN", "LEFT", "RIGHT", "INNER", "OUTER", "CROSS", "FULL",
		"SELECT", "WHERE", "HAVING", "ON", "SET", "INTO", "UPDATE":
		return true
	case "BY":
		return i > 0 && (sig[i-1].Is("ORDER") || sig[i-1].Is("GROUP"))
	}
	return false
}

// dotQualifier reports the identifier directly before a trailing dot.
func dotQualifier(sig []tokenize.Token) (string, bool) {
	n := len(sig)
	if n < 2 || sig[n-1].Kind != tokenize.KindDot {
		return "", false
	}
	word := sig[n-2]
	if word.Kind != tokenize.KindIdentifier || word.End() != sig[n-1].Offset {
		return "", false
	}
	return canonical(word), true
}

// resolveInto handles INSERT INTO. Inside an unclosed parenthesis the
// target table's columns are expected; otherwise the user is still naming
// the table.
func resolveInto(sig []tokenize.Token, idx int) Context {
	depth := 0
	for _, tok := range sig[idx+1:] {
		switch tok.Kind {
		case tokenize.KindLeftParen:
			depth++
		case tokenize.KindRightParen:
			if depth > 0 {
				depth--
			}
		}
	}

	if depth == 0 {
		return Tables()
	}
	if table := tableAfter(sig, idx, "TABLE"); table != "" {
		return QualifiedColumns(table)
	}
	return Unknown()
}

// resolveUpdate handles UPDATE. Once SET has been typed the target table's
// columns are expected.
func resolveUpdate(sig []tokenize.Token, idx int) Context {
	for _, tok := range sig[idx+1:] {
		if tok.Is("SET") {
			if table := tableAfter(sig, idx, ""); table != "" {
				return QualifiedColumns(table)
			}
			break
		}
	}
	return Tables()
}

// enclosingUpdate returns the index of the UPDATE keyword owning the SET
// at idx, or -1.
func enclosingUpdate(sig []tokenize.Token, idx int) int {
	depth := 0
	for i := idx - 1; i >= 0; i-- {
		tok := sig[i]
		switch {
		case tok.Kind == tokenize.KindRightParen:
			depth++
		case tok.Kind == tokenize.KindLeftParen:
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.Is("UPDATE"):
			return i
		case depth == 0 && (tok.Is("SELECT") || tok.Is("INTO")):
			return -1
		}
	}
	return -1
}

// tableAfter returns the table named directly after the keyword at idx.
// One occurrence of the noise keyword may be skipped; any other keyword or
// an opening parenthesis ends the search. Dotted names yield their last
// segment.
func tableAfter(sig []tokenize.Token, idx int, noise string) string {
	skipped := false
	for j := idx + 1; j < len(sig); j++ {
		tok := sig[j]
		switch tok.Kind {
		case tokenize.KindKeyword:
			if noise != "" && !skipped && tok.Is(noise) {
				skipped = true
				continue
			}
			return ""
		case tokenize.KindLeftParen:
			return ""
		case tokenize.KindIdentifier:
			return canonical(sig[qualifiedEnd(sig, j)])
		}
	}
	return ""
}

// qualifiedEnd follows a dotted name (schema.table) starting at j and
// returns the index of its last segment.
func qualifiedEnd(toks []tokenize.Token, j int) int {
	for j+2 < len(toks) && toks[j+1].Kind == tokenize.KindDot && toks[j+2].Kind == tokenize.KindIdentifier {
		j += 2
	}
	return j
}

// currentStatement trims sig to the tokens after the last ';'.
func currentStatement(sig []tokenize.Token) []tokenize.Token {
	for i := len(sig) - 1; i >= 0; i-- {
		if isSemicolon(sig[i]) {
			return sig[i+1:]
		}
	}
	return sig
}

// statementAt returns the tokens of the ';'-separated statement containing
// cursor.
func statementAt(sig []tokenize.Token, cursor int) []tokenize.Token {
	start, end := 0, len(sig)
	for i, tok := range sig {
		if !isSemicolon(tok) {
			continue
		}
		if tok.Offset < cursor {
			start = i + 1
		} else {
			end = i
			break
		}
	}
	return sig[start:end]
}

func statementType(sig []tokenize.Token) types.StatementType {
	var words []string
	for _, tok := range sig {
		if !tok.IsWord() {
			break
		}
		words = append(words, tok.Name())
		if len(words) == 2 {
			break
		}
	}
	return types.ClassifyStatement(words...)
}

func isSemicolon(tok tokenize.Token) bool {
	return tok.Kind == tokenize.KindOther && tok.Text == ";"
}

// canonical is the lower-cased, unquoted name of a token.
func canonical(tok tokenize.Token) string {
	return strings.ToLower(tok.Name())
}

func clampCursor(cursor, n int) int {
	if cursor < 0 {
		return 0
	}
	if cursor > n {
		return n
	}
	return cursor
}
