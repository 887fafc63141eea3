package types

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Position is a line/column location in a buffer.
type Position struct {
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 0-based byte column
}

// String returns "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// OffsetOf converts a position to a byte offset in text. Lines past the end
// clamp to the end of text; columns past the end of a line clamp to the
// line's end.
func OffsetOf(text string, pos Position) int {
	if pos.Line < 1 {
		return 0
	}

	offset := 0
	for line := 1; line < pos.Line; line++ {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return len(text)
		}
		offset += nl + 1
	}

	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - offset
	}

	col := pos.Column
	if col < 0 {
		col = 0
	}
	if col > lineEnd {
		col = lineEnd
	}
	return offset + col
}

// PositionOf converts a byte offset in text to a position. The offset is
// clamped to the bounds of text.
func PositionOf(text string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	before := text[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - (strings.LastIndexByte(before, '\n') + 1)
	return Position{Line: line, Column: col}
}

// ByteOffsetFromUTF16 converts an offset counted in UTF-16 code units, as
// most editors report cursors, into a byte offset in text. An offset that
// falls inside a surrogate pair rounds down to the start of the rune.
func ByteOffsetFromUTF16(text string, units int) int {
	if units <= 0 {
		return 0
	}

	n := 0
	for i, r := range text {
		w := utf16.RuneLen(r)
		if n+w > units {
			return i
		}
		n += w
	}
	return len(text)
}

// UTF16Offset converts a byte offset in text to UTF-16 code units.
func UTF16Offset(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	n := 0
	for i := 0; i < offset; {
		r, size := utf8.DecodeRuneInString(text[i:])
		if i+size > offset {
			break
		}
		n += utf16.RuneLen(r)
		i += size
	}
	return n
}
