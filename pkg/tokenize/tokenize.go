// Package tokenize splits SQL text into classified, positioned spans.
//
// The scanner is lossless: concatenating the Text of every returned token
// reproduces the input exactly. It never fails; unterminated strings and
// comments simply run to the end of the input, and any character no other
// rule recognizes becomes a single KindOther token so the scan always
// advances.
package tokenize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies the lexical class of a token.
type Kind string

const (
	KindKeyword    Kind = "keyword"
	KindIdentifier Kind = "identifier"
	KindDot        Kind = "dot"
	KindString     Kind = "string"
	KindComment    Kind = "comment"
	KindWhitespace Kind = "whitespace"
	KindLeftParen  Kind = "left_paren"
	KindRightParen Kind = "right_paren"
	KindComma      Kind = "comma"
	KindOther      Kind = "other"
)

// Token is a single classified span of the scanned text.
type Token struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`

	// Normalized is the upper-cased keyword. Empty for every other kind.
	Normalized string `json:"normalized,omitempty"`
}

// End returns the offset one past the token's last byte.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Is reports whether the token is the given keyword (case-insensitive).
func (t Token) Is(keyword string) bool {
	return t.Kind == KindKeyword && t.Normalized == strings.ToUpper(keyword)
}

// IsWord reports whether the token is an identifier or a keyword.
func (t Token) IsWord() bool {
	return t.Kind == KindIdentifier || t.Kind == KindKeyword
}

// Name returns the token text with one layer of matching backtick or
// double-quote characters removed.
//
//	`users`  -> users
//	"Users"  -> Users
//	users    -> users
func (t Token) Name() string {
	return Unquote(t.Text)
}

// Unquote strips exactly one layer of matching backtick or double-quote
// characters from s.
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	q := s[0]
	if (q == '`' || q == '"') && s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}
	return s
}

// Tokenize scans text into tokens. Rules are tried in a fixed order at each
// position and the first match wins: line comment, block comment,
// single-quoted string, double-quoted string, backtick identifier, bare
// word, structural punctuation, whitespace, and finally a single character.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	s := &scanner{input: text}
	tokens := make([]Token, 0, len(text)/4+1)
	for s.pos < len(s.input) {
		tokens = append(tokens, s.next())
	}
	return tokens
}

// TokenizeUpTo tokenizes the text preceding cursor. Nothing at or after the
// cursor is inspected. The cursor is clamped to the bounds of text.
func TokenizeUpTo(text string, cursor int) []Token {
	return Tokenize(text[:clamp(cursor, len(text))])
}

// TokenizeFrom scans text starting at offset start and stops after the
// first token for which stop returns true. A nil stop scans to the end.
// Offsets are relative to text. The result agrees with Tokenize only when
// start falls on one of its token boundaries.
func TokenizeFrom(text string, start int, stop func(Token) bool) []Token {
	s := &scanner{input: text, pos: clamp(start, len(text))}
	var tokens []Token
	for s.pos < len(s.input) {
		tok := s.next()
		tokens = append(tokens, tok)
		if stop != nil && stop(tok) {
			break
		}
	}
	return tokens
}

// Significant returns the tokens that are not comments, string literals,
// or whitespace.
func Significant(tokens []Token) []Token {
	result := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case KindComment, KindString, KindWhitespace:
			continue
		}
		result = append(result, tok)
	}
	return result
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

type scanner struct {
	input string
	pos   int
}

// next scans one token starting at s.pos. Every path consumes at least one
// byte.
func (s *scanner) next() Token {
	start := s.pos
	rest := s.input[start:]
	c := rest[0]

	switch {
	case strings.HasPrefix(rest, "--"):
		end := strings.IndexByte(rest, '\n')
		if end < 0 {
			end = len(rest)
		}
		return s.emit(KindComment, start+end)

	case strings.HasPrefix(rest, "/*"):
		end := strings.Index(rest[2:], "*/")
		if end < 0 {
			return s.emit(KindComment, len(s.input))
		}
		return s.emit(KindComment, start+2+end+2)

	case c == '\'' || c == '"':
		return s.emit(KindString, s.scanQuoted(c, true))

	case c == '`':
		return s.emit(KindIdentifier, s.scanQuoted(c, false))

	case isWordStart(c):
		end := start + 1
		for end < len(s.input) && isWordByte(s.input[end]) {
			end++
		}
		word := s.input[start:end]
		if IsKeyword(word) {
			tok := s.emit(KindKeyword, end)
			tok.Normalized = strings.ToUpper(word)
			return tok
		}
		return s.emit(KindIdentifier, end)

	case c == '.':
		return s.emit(KindDot, start+1)
	case c == '(':
		return s.emit(KindLeftParen, start+1)
	case c == ')':
		return s.emit(KindRightParen, start+1)
	case c == ',':
		return s.emit(KindComma, start+1)
	}

	r, size := utf8.DecodeRuneInString(rest)
	if !unicode.IsSpace(r) {
		// size is 1 for invalid UTF-8, so this always advances.
		return s.emit(KindOther, start+size)
	}

	end := start + size
	for end < len(s.input) {
		r, size = utf8.DecodeRuneInString(s.input[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += size
	}
	return s.emit(KindWhitespace, end)
}

// scanQuoted returns the end offset of the quoted literal opening at s.pos.
// With escapes enabled a backslash consumes the following byte. An
// unterminated literal runs to the end of input.
func (s *scanner) scanQuoted(quote byte, escapes bool) int {
	i := s.pos + 1
	for i < len(s.input) {
		switch s.input[i] {
		case '\\':
			if escapes {
				i += 2
				continue
			}
		case quote:
			return i + 1
		}
		i++
	}
	return len(s.input)
}

func (s *scanner) emit(kind Kind, end int) Token {
	if end > len(s.input) {
		end = len(s.input)
	}
	tok := Token{Kind: kind, Text: s.input[s.pos:end], Offset: s.pos}
	s.pos = end
	return tok
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordByte(c byte) bool {
	return isWordStart(c) || (c >= '0' && c <= '9')
}

// IsWordByte reports whether c can appear in a bare identifier.
func IsWordByte(c byte) bool {
	return isWordByte(c)
}
