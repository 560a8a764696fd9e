package source_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/syntree/pkg/source"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	text, err := source.Load([]byte("class A {}\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if text.String() != "class A {}\n" {
		t.Errorf("unexpected content %q", text.String())
	}
	if text.Len() != 11 {
		t.Errorf("expected length 11, got %d", text.Len())
	}
}

func TestLoad_CopiesInput(t *testing.T) {
	t.Parallel()

	raw := []byte("abc")
	text, err := source.Load(raw)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	raw[0] = 'x'
	if text.String() != "abc" {
		t.Errorf("text changed with input buffer: %q", text.String())
	}
}

func TestLoad_InvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := source.Load([]byte{'a', 'b', 0xff, 'c'})
	if err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}

	var encErr *source.EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected *EncodingError, got %T", err)
	}
	if encErr.Offset != 2 {
		t.Errorf("expected offset 2, got %d", encErr.Offset)
	}
	if !errors.Is(err, source.ErrEncoding) {
		t.Error("expected errors.Is(err, ErrEncoding)")
	}
}

func TestLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []source.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []source.LineInfo{{StartOffset: 0, NewlineStart: 0, EndOffset: 0}},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "multiple lines CRLF",
			content: "line1\r\nline2\r\n",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 12, EndOffset: 14},
				{StartOffset: 14, NewlineStart: 14, EndOffset: 14},
			},
		},
		{
			name:    "blank CRLF line",
			content: "\r\nx",
			expected: []source.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 3, EndOffset: 3},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lines := source.FromString(testCase.content).Lines()
			if len(lines) != len(testCase.expected) {
				t.Fatalf("expected %d lines, got %d: %+v", len(testCase.expected), len(lines), lines)
			}
			for i := range lines {
				if lines[i] != testCase.expected[i] {
					t.Errorf("line %d: expected %+v, got %+v", i, testCase.expected[i], lines[i])
				}
			}
		})
	}
}

func TestLineColumnAt(t *testing.T) {
	t.Parallel()

	text := source.FromString("ab\ncd\r\nef")

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3}, // the newline itself
		{3, 2, 1},
		{5, 2, 3}, // '\r'
		{7, 3, 1},
		{8, 3, 2},
		{9, 3, 3}, // end of text
	}

	for _, testCase := range tests {
		pos, err := text.LineColumnAt(testCase.offset)
		if err != nil {
			t.Errorf("offset %d: unexpected error %v", testCase.offset, err)
			continue
		}
		if pos.Line != testCase.line || pos.Column != testCase.column {
			t.Errorf("offset %d: expected %d:%d, got %s", testCase.offset, testCase.line, testCase.column, pos)
		}
	}
}

func TestLineColumnAt_CountsCharacters(t *testing.T) {
	t.Parallel()

	// "// 解析" – each CJK character is three bytes.
	text := source.FromString("// 解析\nx")

	pos, err := text.LineColumnAt(len("// 解析"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Line != 1 || pos.Column != 6 {
		t.Errorf("expected 1:6, got %s", pos)
	}

	pos, err = text.LineColumnAt(len("// 解析\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos.Line != 2 || pos.Column != 1 {
		t.Errorf("expected 2:1, got %s", pos)
	}
}

func TestLineColumnAt_OutOfRange(t *testing.T) {
	t.Parallel()

	text := source.FromString("abc")

	for _, offset := range []int{-1, 4, 100} {
		_, err := text.LineColumnAt(offset)
		if !errors.Is(err, source.ErrOutOfRange) {
			t.Errorf("offset %d: expected ErrOutOfRange, got %v", offset, err)
		}
	}
}

func TestSlice(t *testing.T) {
	t.Parallel()

	text := source.FromString("using System;")

	got, err := text.Slice(6, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "System" {
		t.Errorf("expected %q, got %q", "System", got)
	}

	empty, err := text.Slice(13, 13)
	if err != nil || empty != "" {
		t.Errorf("expected empty slice at end, got %q, %v", empty, err)
	}
}

func TestSlice_InvalidBounds(t *testing.T) {
	t.Parallel()

	text := source.FromString("abc")

	tests := []struct {
		name       string
		start, end int
	}{
		{"start after end", 2, 1},
		{"end past length", 0, 4},
		{"negative start", -1, 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := text.Slice(testCase.start, testCase.end)
			var rangeErr *source.OutOfRangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected *OutOfRangeError, got %v", err)
			}
			if rangeErr.Length != 3 {
				t.Errorf("expected length 3, got %d", rangeErr.Length)
			}
		})
	}
}

func TestOffset_RoundTrip(t *testing.T) {
	t.Parallel()

	text := source.FromString("int x;\n// 解析\r\nreturn;")

	for offset := 0; offset <= text.Len(); offset++ {
		pos, err := text.LineColumnAt(offset)
		if err != nil {
			t.Fatalf("offset %d: %v", offset, err)
		}
		back, err := text.Offset(pos)
		if err != nil {
			// Offsets inside a multi-byte character or a CRLF pair have no
			// distinct position of their own.
			continue
		}
		got, err := text.LineColumnAt(back)
		if err != nil || got != pos {
			t.Errorf("offset %d: position %s maps back to %s", offset, pos, got)
		}
	}
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	text := source.FromString("first\r\nsecond\n")

	tests := []struct {
		line     int
		expected string
	}{
		{1, "first"},
		{2, "second"},
		{3, ""},
	}
	for _, testCase := range tests {
		got, err := text.LineContent(testCase.line)
		if err != nil {
			t.Errorf("line %d: unexpected error %v", testCase.line, err)
			continue
		}
		if got != testCase.expected {
			t.Errorf("line %d: expected %q, got %q", testCase.line, testCase.expected, got)
		}
	}

	if _, err := text.LineContent(4); !errors.Is(err, source.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for line 4, got %v", err)
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	text := source.FromString("a\nbcd\n")

	loc, err := text.Location(source.NewSpan(2, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Start != (source.Position{Line: 2, Column: 1}) || loc.End != (source.Position{Line: 2, Column: 4}) {
		t.Errorf("unexpected location %s", loc)
	}
	if !loc.IsSingleLine() {
		t.Error("expected single-line location")
	}
}
