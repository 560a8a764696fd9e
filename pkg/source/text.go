// Package source holds decoded source text and maps byte offsets to
// line/column positions.
package source

import (
	"sort"
	"unicode/utf8"
)

// Text is an immutable, UTF-8 validated source buffer with a precomputed
// line table.
type Text struct {
	content string
	lines   []LineInfo
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For the last line without a trailing newline it equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of text).
	EndOffset int
}

// Load decodes raw bytes into a Text.
// It fails with *EncodingError when raw is not valid UTF-8.
// The input slice is copied and may be reused by the caller.
func Load(raw []byte) (*Text, error) {
	if !utf8.Valid(raw) {
		return nil, &EncodingError{Offset: firstInvalid(raw)}
	}
	return FromString(string(raw)), nil
}

// FromString wraps already-decoded text.
func FromString(s string) *Text {
	return &Text{
		content: s,
		lines:   buildLines(s),
	}
}

func firstInvalid(raw []byte) int {
	for offset := 0; offset < len(raw); {
		r, size := utf8.DecodeRune(raw[offset:])
		if r == utf8.RuneError && size <= 1 {
			return offset
		}
		offset += size
	}
	return len(raw)
}

// buildLines handles both LF and CRLF line endings.
func buildLines(content string) []LineInfo {
	lines := make([]LineInfo, 0, 1+len(content)/32)
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		if content[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// Len returns the length of the text in bytes.
func (t *Text) Len() int {
	return len(t.content)
}

// String returns the whole text.
func (t *Text) String() string {
	return t.content
}

// Bytes returns a copy of the text.
func (t *Text) Bytes() []byte {
	return []byte(t.content)
}

// LineCount returns the number of lines. Empty text has one (empty) line.
func (t *Text) LineCount() int {
	return len(t.lines)
}

// Lines returns a copy of the line table.
func (t *Text) Lines() []LineInfo {
	out := make([]LineInfo, len(t.lines))
	copy(out, t.lines)
	return out
}

// Slice returns the exact substring [start, end).
func (t *Text) Slice(start, end int) (string, error) {
	if start < 0 || start > end || end > len(t.content) {
		return "", &OutOfRangeError{Start: start, End: end, Length: len(t.content)}
	}
	return t.content[start:end], nil
}

// SpanText returns the text covered by span.
func (t *Text) SpanText(span Span) (string, error) {
	return t.Slice(span.Start, span.End)
}

// LineColumnAt converts a byte offset to a 1-based line and a 1-based
// column counted in characters. Offset Len() is valid and denotes the
// position after the last character.
func (t *Text) LineColumnAt(offset int) (Position, error) {
	if offset < 0 || offset > len(t.content) {
		return Position{}, &OutOfRangeError{Start: offset, End: offset, Length: len(t.content)}
	}

	// First line whose end is past the offset; the final line absorbs Len().
	lineIdx := sort.Search(len(t.lines), func(i int) bool {
		return t.lines[i].EndOffset > offset
	})
	if lineIdx >= len(t.lines) {
		lineIdx = len(t.lines) - 1
	}

	line := t.lines[lineIdx]
	column := utf8.RuneCountInString(t.content[line.StartOffset:offset]) + 1

	return Position{Line: lineIdx + 1, Column: column}, nil
}

// Offset converts a 1-based position back to a byte offset.
// The column may point one past the last character of the line.
func (t *Text) Offset(pos Position) (int, error) {
	if pos.Line < 1 || pos.Line > len(t.lines) || pos.Column < 1 {
		return 0, &OutOfRangeError{Start: -1, End: -1, Length: len(t.content)}
	}

	line := t.lines[pos.Line-1]
	offset := line.StartOffset
	for col := 1; col < pos.Column; col++ {
		if offset >= line.NewlineStart {
			return 0, &OutOfRangeError{Start: offset, End: offset, Length: len(t.content)}
		}
		_, size := utf8.DecodeRuneInString(t.content[offset:])
		offset += size
	}

	return offset, nil
}

// LineContent returns the content of a 1-based line, excluding the newline.
func (t *Text) LineContent(line int) (string, error) {
	if line < 1 || line > len(t.lines) {
		return "", &OutOfRangeError{Start: line, End: line, Length: len(t.lines)}
	}
	info := t.lines[line-1]
	return t.content[info.StartOffset:info.NewlineStart], nil
}

// Location converts a span to start and end positions.
func (t *Text) Location(span Span) (Location, error) {
	start, err := t.LineColumnAt(span.Start)
	if err != nil {
		return Location{}, err
	}
	end, err := t.LineColumnAt(span.End)
	if err != nil {
		return Location{}, err
	}
	return Location{Span: span, Start: start, End: end}, nil
}
