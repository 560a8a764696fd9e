package source

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	ErrEncoding   = errors.New("invalid encoding")
	ErrOutOfRange = errors.New("out of range")
)

// EncodingError reports input that is not valid UTF-8.
type EncodingError struct {
	// Offset is the byte index of the first invalid sequence.
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence at byte %d", e.Offset)
}

// Is reports whether target is ErrEncoding.
func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// OutOfRangeError reports an offset or range outside the text.
type OutOfRangeError struct {
	Start  int
	End    int
	Length int
}

func (e *OutOfRangeError) Error() string {
	if e.Start == e.End {
		return fmt.Sprintf("offset %d out of range [0, %d]", e.Start, e.Length)
	}
	return fmt.Sprintf("range [%d, %d) out of range [0, %d]", e.Start, e.End, e.Length)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
