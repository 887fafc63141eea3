package complete

import "github.com/tentacle-scylla/sqlcontext/pkg/tokenize"

// WordAtCursor returns the partial identifier ending at cursor: the run of
// letters, digits, and underscores immediately before it. It works on raw
// characters rather than tokens, so a word is captured even mid-typing.
func WordAtCursor(text string, cursor int) string {
	cursor = clampCursor(cursor, len(text))
	start := cursor
	for start > 0 && tokenize.IsWordByte(text[start-1]) {
		start--
	}
	return text[start:cursor]
}
